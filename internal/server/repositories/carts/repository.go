// Package carts stores the per-user carts of the development API server.
package carts

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/server/models"
)

// Repository keeps one cart per user. Lines are returned in insertion order.
// Operations on a line that is not in the user's cart return
// common.ErrorNotFound.
type Repository interface {
	Lines(ctx context.Context, userID int64) ([]models.CartLine, error)
	// Upsert sets the quantity of productID, adding a line if the product
	// is not in the cart yet.
	Upsert(ctx context.Context, userID, productID int64, quantity int) error
	// SetQuantity changes a line's quantity; 0 removes the line.
	SetQuantity(ctx context.Context, userID, lineID int64, quantity int) error
	Delete(ctx context.Context, userID, lineID int64) error
}
