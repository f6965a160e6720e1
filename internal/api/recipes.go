package api

import (
	"context"
	"fmt"
	"io"
)

// RecipesAPI covers /recipes endpoints, including the nested ingredient list
// and the sell/can-sell/cost sub-resources.
type RecipesAPI struct {
	c *Client
}

func (c *Client) Recipes() *RecipesAPI { return &RecipesAPI{c: c} }

type Recipe struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	SellPrice   float64 `json:"sellPrice"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Available   bool    `json:"available"`
}

type RecipeInput struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	SellPrice   float64 `json:"sellPrice" validate:"gte=0"`
	Description string  `json:"description"`
}

// RecipeIngredient links an ingredient and quantity to a recipe.
type RecipeIngredient struct {
	IngredientID int64   `json:"ingredientId" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"gt=0"`
}

// RecipeCost is the computed ingredient cost of one serving.
type RecipeCost struct {
	RecipeID int64   `json:"recipeId"`
	Cost     float64 `json:"cost"`
}

// CanSellResult reports whether stock covers the requested servings.
type CanSellResult struct {
	RecipeID int64 `json:"recipeId"`
	CanSell  bool  `json:"canSell"`
	Servings int64 `json:"servings"`
}

func (a *RecipesAPI) List(ctx context.Context) ([]Recipe, error) {
	var out []Recipe
	if err := a.c.get(ctx, "/recipes", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *RecipesAPI) Get(ctx context.Context, id int64) (*Recipe, error) {
	var out Recipe
	if err := a.c.get(ctx, fmt.Sprintf("/recipes/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *RecipesAPI) Create(ctx context.Context, in RecipeInput) (*Recipe, error) {
	if err := a.c.validate.Struct(in); err != nil {
		return nil, err
	}
	var out Recipe
	if err := a.c.post(ctx, "/recipes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *RecipesAPI) Update(ctx context.Context, id int64, in RecipeInput) (*Recipe, error) {
	if err := a.c.validate.Struct(in); err != nil {
		return nil, err
	}
	var out Recipe
	if err := a.c.put(ctx, fmt.Sprintf("/recipes/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *RecipesAPI) Delete(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/recipes/%d", id))
}

func (a *RecipesAPI) Ingredients(ctx context.Context, recipeID int64) ([]RecipeIngredient, error) {
	var out []RecipeIngredient
	if err := a.c.get(ctx, fmt.Sprintf("/recipes/%d/ingredients", recipeID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *RecipesAPI) AddIngredient(ctx context.Context, recipeID int64, ri RecipeIngredient) error {
	if err := a.c.validate.Struct(ri); err != nil {
		return err
	}
	return a.c.post(ctx, fmt.Sprintf("/recipes/%d/ingredients", recipeID), ri, nil)
}

func (a *RecipesAPI) RemoveIngredient(ctx context.Context, recipeID, ingredientID int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/recipes/%d/ingredients/%d", recipeID, ingredientID))
}

// Sell deducts one serving's worth of ingredients from stock.
func (a *RecipesAPI) Sell(ctx context.Context, recipeID int64, quantity int64) error {
	body := map[string]int64{"quantity": quantity}
	return a.c.post(ctx, fmt.Sprintf("/recipes/%d/sell", recipeID), body, nil)
}

func (a *RecipesAPI) CanSell(ctx context.Context, recipeID int64) (*CanSellResult, error) {
	var out CanSellResult
	if err := a.c.get(ctx, fmt.Sprintf("/recipes/%d/can-sell", recipeID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *RecipesAPI) Cost(ctx context.Context, recipeID int64) (*RecipeCost, error) {
	var out RecipeCost
	if err := a.c.get(ctx, fmt.Sprintf("/recipes/%d/cost", recipeID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadImage updates a recipe with an attached image via multipart form:
// a "recipe" JSON part plus an optional "image" part.
func (a *RecipesAPI) UploadImage(ctx context.Context, id int64, in RecipeInput, image io.Reader, filename string) (*Recipe, error) {
	if err := a.c.validate.Struct(in); err != nil {
		return nil, err
	}
	var out Recipe
	path := fmt.Sprintf("/recipes/%d/image", id)
	if err := a.c.doMultipart(ctx, "PUT", path, "recipe", in, image, filename, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
