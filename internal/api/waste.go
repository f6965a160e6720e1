package api

import (
	"context"
	"fmt"
)

// WasteAPI covers the waste log endpoints.
type WasteAPI struct {
	c *Client
}

func (c *Client) Waste() *WasteAPI { return &WasteAPI{c: c} }

type WasteLog struct {
	ID           int64   `json:"id"`
	IngredientID int64   `json:"ingredientId"`
	Quantity     float64 `json:"quantity"`
	Reason       string  `json:"reason"`
	LoggedBy     string  `json:"loggedBy"`
	LoggedAt     string  `json:"loggedAt"`
}

type WasteLogInput struct {
	IngredientID int64   `json:"ingredientId" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"gt=0"`
	Reason       string  `json:"reason" validate:"required"`
}

func (a *WasteAPI) List(ctx context.Context) ([]WasteLog, error) {
	var out []WasteLog
	if err := a.c.get(ctx, "/waste-logs", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *WasteAPI) Create(ctx context.Context, in WasteLogInput) (*WasteLog, error) {
	if err := a.c.validate.Struct(in); err != nil {
		return nil, err
	}
	var out WasteLog
	if err := a.c.post(ctx, "/waste-logs", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *WasteAPI) Delete(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/waste-logs/%d", id))
}
