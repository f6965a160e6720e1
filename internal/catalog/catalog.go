// Package catalog is the read-side data layer for the POS and inventory
// screens. Fetches go through the explicit query cache with a defined
// staleness window per resource; mutations invalidate by key prefix.
package catalog

import (
	"context"
	"time"

	"github.com/mesa-pos/terminal/internal/api"
	"github.com/mesa-pos/terminal/internal/cache"
)

// Staleness windows. The product catalog changes rarely during service;
// stock levels move with every order.
const (
	productsTTL    = 5 * time.Minute
	ingredientsTTL = 30 * time.Second
)

// ProductSource is the slice of the orders API the catalog reads.
type ProductSource interface {
	Products(ctx context.Context) ([]api.Product, error)
}

// IngredientSource is the slice of the ingredients API the catalog reads.
type IngredientSource interface {
	List(ctx context.Context) ([]api.Ingredient, error)
	LowStock(ctx context.Context) ([]api.Ingredient, error)
}

// Service caches catalog reads.
type Service struct {
	cache       *cache.Cache
	products    ProductSource
	ingredients IngredientSource
}

func NewService(c *cache.Cache, products ProductSource, ingredients IngredientSource) *Service {
	return &Service{cache: c, products: products, ingredients: ingredients}
}

// Products returns the sellable catalog, served from cache within its
// staleness window.
func (s *Service) Products(ctx context.Context) ([]api.Product, error) {
	v, err := s.cache.Get(ctx, "orders/products", productsTTL, func(ctx context.Context) (any, error) {
		return s.products.Products(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]api.Product), nil
}

// Ingredients returns the full ingredient list.
func (s *Service) Ingredients(ctx context.Context) ([]api.Ingredient, error) {
	v, err := s.cache.Get(ctx, "ingredients/all", ingredientsTTL, func(ctx context.Context) (any, error) {
		return s.ingredients.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]api.Ingredient), nil
}

// LowStock returns ingredients at or below minimum stock.
func (s *Service) LowStock(ctx context.Context) ([]api.Ingredient, error) {
	v, err := s.cache.Get(ctx, "ingredients/low-stock", ingredientsTTL, func(ctx context.Context) (any, error) {
		return s.ingredients.LowStock(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]api.Ingredient), nil
}

// InvalidateIngredients flushes every cached ingredient view. Call after
// stock counts, waste logs, or ingredient edits.
func (s *Service) InvalidateIngredients() {
	s.cache.InvalidatePrefix("ingredients/")
}

// InvalidateProducts flushes the product catalog. Call after recipe edits.
func (s *Service) InvalidateProducts() {
	s.cache.Invalidate("orders/products")
}
