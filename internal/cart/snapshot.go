package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// snapshotSchema guards against rehydrating snapshots written by an
// incompatible build. Bump when the shape changes.
const snapshotSchema = 1

type snapshotLine struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int64  `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

type snapshot struct {
	Schema       int            `json:"schema"`
	Items        []snapshotLine `json:"items"`
	TableLabel   string         `json:"tableLabel"`
	CustomerName string         `json:"customerName,omitempty"`
	Tip          string         `json:"tip"`
}

func marshalSnapshot(c *Cart) ([]byte, error) {
	snap := snapshot{
		Schema:       snapshotSchema,
		Items:        make([]snapshotLine, 0, len(c.lines)),
		TableLabel:   c.tableLabel,
		CustomerName: c.customerName,
		Tip:          c.tip.String(),
	}
	for _, l := range c.lines {
		snap.Items = append(snap.Items, snapshotLine{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice.String(),
			Quantity:    l.Quantity,
			Notes:       l.Notes,
		})
	}
	return json.Marshal(snap)
}

// unmarshalSnapshot validates and applies a stored snapshot. Any shape
// mismatch is an error; the caller falls back to an empty cart.
func unmarshalSnapshot(c *Cart, data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	if snap.Schema != snapshotSchema {
		return fmt.Errorf("unsupported snapshot schema %d", snap.Schema)
	}

	tip := decimal.Zero
	if snap.Tip != "" {
		parsed, err := decimal.NewFromString(snap.Tip)
		if err != nil {
			return fmt.Errorf("parse tip: %w", err)
		}
		tip = parsed
	}

	lines := make([]Line, 0, len(snap.Items))
	seen := make(map[int64]bool, len(snap.Items))
	for i, item := range snap.Items {
		if item.ProductID < 1 || item.Quantity < 1 {
			return fmt.Errorf("item[%d]: invalid line", i)
		}
		if seen[item.ProductID] {
			return errors.New("duplicate product id in snapshot")
		}
		seen[item.ProductID] = true
		price, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return fmt.Errorf("item[%d]: parse unit price: %w", i, err)
		}
		lines = append(lines, Line{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   price,
			Quantity:    item.Quantity,
			Notes:       item.Notes,
		})
	}

	c.lines = lines
	c.tip = tip
	c.customerName = snap.CustomerName
	if snap.TableLabel != "" {
		c.tableLabel = snap.TableLabel
	}
	return nil
}
