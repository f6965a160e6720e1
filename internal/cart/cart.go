// Package cart is the POS order aggregator: an in-memory collection of line
// items keyed by product id with derived subtotal/tax/total. Every mutation
// snapshots to the local store so the cart survives a terminal restart.
package cart

import (
	"errors"
	"log"

	"github.com/mesa-pos/terminal/internal/localstore"
	"github.com/shopspring/decimal"
)

const (
	snapshotKey       = "pos-cart"
	defaultTableLabel = "Table 01"
)

// DefaultTaxRate is applied when the caller passes no explicit rate.
var DefaultTaxRate = decimal.NewFromFloat(0.05)

// ErrEmptyCart is returned by Checkout on a cart with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// Line is one product entry. At most one line exists per product id and
// quantity is always >= 1; a decrement to zero removes the line.
type Line struct {
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int64
	Notes       string
}

// Cart is the order state container. It is confined to the terminal's event
// goroutine; only the inbox is shared with the websocket feed.
type Cart struct {
	storage localstore.Store

	lines        []Line
	tableLabel   string
	customerName string
	tip          decimal.Decimal
}

// New creates a Cart backed by the given snapshot store and restores any
// persisted state. A structurally invalid snapshot yields an empty cart.
func New(storage localstore.Store) *Cart {
	c := &Cart{
		storage:    storage,
		tableLabel: defaultTableLabel,
		tip:        decimal.Zero,
	}
	c.restore()
	return c
}

// AddItem merges quantity into an existing line for the product, or appends
// a new line. Existing lines keep their position. Product ids are positive
// backend identifiers; a non-positive id is a no-op so the in-memory cart
// never holds a line its own snapshot would refuse to rehydrate.
func (c *Cart) AddItem(productID int64, name string, unitPrice decimal.Decimal, quantity int64) {
	if productID < 1 {
		return
	}
	if quantity <= 0 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity += quantity
			c.persist()
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID:   productID,
		ProductName: name,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	})
	c.persist()
}

// RemoveItem deletes the line for the product. Unknown ids are a no-op.
func (c *Cart) RemoveItem(productID int64) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.persist()
			return
		}
	}
}

// SetQuantity sets the line's quantity. A quantity <= 0 removes the line.
// Unknown ids are a silent no-op: the quantity controls on the POS screen
// only ever target lines that exist, and refetch races make erroring here
// worse than ignoring it.
func (c *Cart) SetQuantity(productID, quantity int64) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			c.persist()
			return
		}
	}
}

// UpdateNotes sets free-text notes on an existing line. No-op if absent.
func (c *Cart) UpdateNotes(productID int64, notes string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Notes = notes
			c.persist()
			return
		}
	}
}

// Clear empties the lines and resets tip and customer name. The table label
// is kept: the next order is usually for the same physical table.
func (c *Cart) Clear() {
	c.lines = nil
	c.tip = decimal.Zero
	c.customerName = ""
	c.persist()
}

func (c *Cart) SetTableLabel(label string) {
	c.tableLabel = label
	c.persist()
}

func (c *Cart) SetCustomerName(name string) {
	c.customerName = name
	c.persist()
}

// SetTip stores the tip amount, clamping negative input to zero.
func (c *Cart) SetTip(amount decimal.Decimal) {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	c.tip = amount
	c.persist()
}

func (c *Cart) TableLabel() string   { return c.tableLabel }
func (c *Cart) CustomerName() string { return c.customerName }
func (c *Cart) Tip() decimal.Decimal { return c.tip }

// Lines returns a copy of the line items in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// ItemCount is the sum of quantities across all lines.
func (c *Cart) ItemCount() int64 {
	var n int64
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal is Σ(unit price × quantity). No rounding is applied while
// accumulating; rounding happens only at display time.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return sum
}

// TaxAmount is subtotal × rate.
func (c *Cart) TaxAmount(rate decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Mul(rate)
}

// Total is subtotal + tax + tip.
func (c *Cart) Total(rate decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Add(c.TaxAmount(rate)).Add(c.tip)
}

func (c *Cart) persist() {
	b, err := marshalSnapshot(c)
	if err != nil {
		log.Printf("ERROR: snapshot cart: %v", err)
		return
	}
	if err := c.storage.Set(snapshotKey, string(b)); err != nil {
		log.Printf("ERROR: persist cart: %v", err)
	}
}

func (c *Cart) restore() {
	raw, ok := c.storage.Get(snapshotKey)
	if !ok {
		return
	}
	if err := unmarshalSnapshot(c, []byte(raw)); err != nil {
		log.Printf("WARN: discarding cart snapshot: %v", err)
		c.lines = nil
		c.tableLabel = defaultTableLabel
		c.customerName = ""
		c.tip = decimal.Zero
	}
}
