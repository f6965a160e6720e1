package cart

import "github.com/shopspring/decimal"

// ReceiptLine is a display-ready line with amounts rounded to 2 digits.
type ReceiptLine struct {
	ProductName string
	Quantity    int64
	UnitPrice   string
	LineTotal   string
	Notes       string
}

// Receipt is the display view of the cart. This is the only place amounts
// are rounded; all accumulation upstream stays at full precision.
type Receipt struct {
	TableLabel   string
	CustomerName string
	Lines        []ReceiptLine
	Subtotal     string
	Tax          string
	Tip          string
	Total        string
}

// BuildReceipt renders the cart at the given tax rate.
func (c *Cart) BuildReceipt(rate decimal.Decimal) Receipt {
	r := Receipt{
		TableLabel:   c.tableLabel,
		CustomerName: c.customerName,
		Lines:        make([]ReceiptLine, 0, len(c.lines)),
		Subtotal:     c.Subtotal().StringFixed(2),
		Tax:          c.TaxAmount(rate).StringFixed(2),
		Tip:          c.tip.StringFixed(2),
		Total:        c.Total(rate).StringFixed(2),
	}
	for _, l := range c.lines {
		qty := decimal.NewFromInt(l.Quantity)
		r.Lines = append(r.Lines, ReceiptLine{
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice.StringFixed(2),
			LineTotal:   l.UnitPrice.Mul(qty).StringFixed(2),
			Notes:       l.Notes,
		})
	}
	return r
}
