package api

import (
	"context"
	"fmt"
	"io"
)

// IngredientsAPI covers /ingredients endpoints.
type IngredientsAPI struct {
	c *Client
}

func (c *Client) Ingredients() *IngredientsAPI { return &IngredientsAPI{c: c} }

type Ingredient struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	CurrentStock float64 `json:"currentStock"`
	MinimumStock float64 `json:"minimumStock"`
	CostPerUnit  float64 `json:"costPerUnit"`
	ImageURL     string  `json:"imageUrl,omitempty"`
}

type IngredientInput struct {
	Name         string  `json:"name" validate:"required"`
	Unit         string  `json:"unit" validate:"required"`
	CurrentStock float64 `json:"currentStock" validate:"gte=0"`
	MinimumStock float64 `json:"minimumStock" validate:"gte=0"`
	CostPerUnit  float64 `json:"costPerUnit" validate:"gte=0"`
}

// StockCountEntry is one line of a physical stock count submission.
type StockCountEntry struct {
	IngredientID  int64   `json:"ingredientId" validate:"required"`
	PhysicalCount float64 `json:"physicalCount" validate:"gte=0"`
}

func (a *IngredientsAPI) List(ctx context.Context) ([]Ingredient, error) {
	var out []Ingredient
	if err := a.c.get(ctx, "/ingredients", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *IngredientsAPI) Get(ctx context.Context, id int64) (*Ingredient, error) {
	var out Ingredient
	if err := a.c.get(ctx, fmt.Sprintf("/ingredients/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *IngredientsAPI) Create(ctx context.Context, in IngredientInput) (*Ingredient, error) {
	if err := a.c.validate.Struct(in); err != nil {
		return nil, err
	}
	var out Ingredient
	if err := a.c.post(ctx, "/ingredients", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *IngredientsAPI) Update(ctx context.Context, id int64, in IngredientInput) (*Ingredient, error) {
	if err := a.c.validate.Struct(in); err != nil {
		return nil, err
	}
	var out Ingredient
	if err := a.c.put(ctx, fmt.Sprintf("/ingredients/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *IngredientsAPI) Delete(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/ingredients/%d", id))
}

// LowStock returns ingredients at or below their minimum stock.
func (a *IngredientsAPI) LowStock(ctx context.Context) ([]Ingredient, error) {
	var out []Ingredient
	if err := a.c.get(ctx, "/ingredients/low-stock", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OutOfStock returns ingredients with zero stock.
func (a *IngredientsAPI) OutOfStock(ctx context.Context) ([]Ingredient, error) {
	var out []Ingredient
	if err := a.c.get(ctx, "/ingredients/out-of-stock", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdjustStockCounts submits a bulk physical-count adjustment.
func (a *IngredientsAPI) AdjustStockCounts(ctx context.Context, entries []StockCountEntry) error {
	wrapper := struct {
		Entries []StockCountEntry `validate:"required,min=1,dive"`
	}{Entries: entries}
	if err := a.c.validate.Struct(wrapper); err != nil {
		return err
	}
	return a.c.post(ctx, "/ingredients/stock-count", entries, nil)
}

// UploadImage creates or updates an ingredient with an attached image via
// multipart form: an "ingredient" JSON part plus an optional "image" part.
func (a *IngredientsAPI) UploadImage(ctx context.Context, id int64, in IngredientInput, image io.Reader, filename string) (*Ingredient, error) {
	if err := a.c.validate.Struct(in); err != nil {
		return nil, err
	}
	var out Ingredient
	path := fmt.Sprintf("/ingredients/%d/image", id)
	if err := a.c.doMultipart(ctx, "PUT", path, "ingredient", in, image, filename, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
