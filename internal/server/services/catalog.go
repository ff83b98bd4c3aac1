package services

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/products"
)

// Paging limits of product listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type CatalogService struct {
	products products.Repository
}

func NewCatalogService(r products.Repository) *CatalogService {
	return &CatalogService{products: r}
}

// List returns one page of products. Missing or out-of-range paging falls
// back to page 1 and DefaultPageSize; the page size is capped at MaxPageSize.
func (s *CatalogService) List(ctx context.Context, q models.ProductQuery) (models.ProductPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	size = min(size, MaxPageSize)

	items, total, err := s.products.List(ctx, products.Filter{
		Search:     q.Search,
		CategoryID: q.CategoryID,
		Sort:       q.Sort,
		Page:       page,
		PageSize:   size,
	})
	if err != nil {
		return models.ProductPage{}, err
	}

	return models.ProductPage{Items: items, Page: page, PageSize: size, Total: total}, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.products.Get(ctx, id)
}
