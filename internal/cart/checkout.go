package cart

import (
	"context"
	"fmt"

	"github.com/mesa-pos/terminal/internal/api"
)

// OrderSubmitter is the slice of the orders API needed for checkout.
// Satisfied by *api.OrdersAPI; narrow interface for testability.
type OrderSubmitter interface {
	Create(ctx context.Context, req api.CreateOrderRequest) (*api.Order, error)
}

// Checkout submits the cart as an order. An empty cart is rejected locally
// and never reaches the backend. On success the lines, tip, and customer
// name are cleared; the table label persists for the next order.
func (c *Cart) Checkout(ctx context.Context, orders OrderSubmitter, paymentMethod string) (*api.Order, error) {
	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}

	req := api.CreateOrderRequest{
		TableNumber:   c.tableLabel,
		CustomerName:  c.customerName,
		Items:         make([]api.OrderItem, 0, len(c.lines)),
		PaymentMethod: paymentMethod,
		Tip:           c.tip.InexactFloat64(),
	}
	for _, l := range c.lines {
		req.Items = append(req.Items, api.OrderItem{
			RecipeID: l.ProductID,
			Quantity: l.Quantity,
			Notes:    l.Notes,
		})
	}

	order, err := orders.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}

	c.Clear()
	return order, nil
}
