// Package products is the read-only catalogue of the development API server.
package products

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/models"
)

// Filter narrows a listing. Page and PageSize are already normalized by the
// caller: both are at least 1.
type Filter struct {
	Search     string
	CategoryID int64
	Sort       models.ProductSort
	Page       int
	PageSize   int
}

type Repository interface {
	// List returns one page of matching products and the number of matches
	// across all pages.
	List(ctx context.Context, f Filter) ([]models.Product, int, error)
	// Get returns common.ErrorNotFound for an unknown id.
	Get(ctx context.Context, id int64) (*models.Product, error)
}
