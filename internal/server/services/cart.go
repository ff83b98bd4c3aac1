package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/carts"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/products"
)

// CartService manages carts. Every mutation returns the whole cart with
// product snapshots attached.
type CartService struct {
	carts    carts.Repository
	products products.Repository
}

func NewCartService(c carts.Repository, p products.Repository) *CartService {
	return &CartService{carts: c, products: p}
}

// Get returns the user's cart.
func (s *CartService) Get(ctx context.Context, userID int64) ([]models.LineItem, error) {
	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]models.LineItem, 0, len(lines))
	for _, l := range lines {
		item := models.LineItem{ItemID: l.ID, ProductID: l.ProductID, Quantity: l.Quantity}
		p, err := s.products.Get(ctx, l.ProductID)
		switch {
		case err == nil:
			item.Product = p
		case !errors.Is(err, common.ErrorNotFound):
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Add sets the quantity of productID in the cart. The product must exist and
// quantity must be positive.
func (s *CartService) Add(ctx context.Context, userID, productID int64, quantity int) ([]models.LineItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", common.ErrorValidation)
	}
	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, fmt.Errorf("product %d: %w", productID, err)
	}
	if err := s.carts.Upsert(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Update changes a line's quantity; 0 removes the line.
func (s *CartService) Update(ctx context.Context, userID, itemID int64, quantity int) ([]models.LineItem, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", common.ErrorValidation)
	}
	if err := s.carts.SetQuantity(ctx, userID, itemID, quantity); err != nil {
		return nil, fmt.Errorf("cart item %d: %w", itemID, err)
	}
	return s.Get(ctx, userID)
}

func (s *CartService) Remove(ctx context.Context, userID, itemID int64) ([]models.LineItem, error) {
	if err := s.carts.Delete(ctx, userID, itemID); err != nil {
		return nil, fmt.Errorf("cart item %d: %w", itemID, err)
	}
	return s.Get(ctx, userID)
}
