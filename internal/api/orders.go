package api

import "context"

// OrdersAPI covers the POS product catalog and order submission.
type OrdersAPI struct {
	c *Client
}

func (c *Client) Orders() *OrdersAPI { return &OrdersAPI{c: c} }

// Product is one sellable catalog entry shown on the POS screen.
type Product struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
	ImageURL  string  `json:"imageUrl,omitempty"`
}

type OrderItem struct {
	RecipeID int64  `json:"recipeId" validate:"required"`
	Quantity int64  `json:"quantity" validate:"gt=0"`
	Notes    string `json:"notes,omitempty"`
}

type CreateOrderRequest struct {
	TableNumber   string      `json:"tableNumber" validate:"required"`
	CustomerName  string      `json:"customerName,omitempty"`
	Items         []OrderItem `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string      `json:"paymentMethod" validate:"required,oneof=CASH CARD QR"`
	Tip           float64     `json:"tip,omitempty" validate:"gte=0"`
}

type Order struct {
	ID          int64       `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	TableNumber string      `json:"tableNumber"`
	Items       []OrderItem `json:"items"`
	Subtotal    float64     `json:"subtotal"`
	Tax         float64     `json:"tax"`
	Tip         float64     `json:"tip"`
	Total       float64     `json:"total"`
	Status      string      `json:"status"`
}

// Products fetches the sellable catalog.
func (a *OrdersAPI) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := a.c.get(ctx, "/orders/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create submits an order. The payload is validated locally first so an
// empty cart or a zero quantity never reaches the backend.
func (a *OrdersAPI) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if err := a.c.validate.Struct(req); err != nil {
		return nil, err
	}
	var out Order
	if err := a.c.post(ctx, "/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
