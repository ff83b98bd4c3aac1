package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/products"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ListPaging(t *testing.T) {
	ctx := context.Background()
	s := NewCatalogService(products.NewMemoryRepository(products.DemoCatalogue()))

	tests := []struct {
		name         string
		q            models.ProductQuery
		wantPage     int
		wantPageSize int
		wantItems    int
	}{
		{name: "defaults", q: models.ProductQuery{}, wantPage: 1, wantPageSize: DefaultPageSize, wantItems: 12},
		{name: "explicit", q: models.ProductQuery{Page: 2, PageSize: 5}, wantPage: 2, wantPageSize: 5, wantItems: 5},
		{name: "negative values", q: models.ProductQuery{Page: -1, PageSize: -3}, wantPage: 1, wantPageSize: DefaultPageSize, wantItems: 12},
		{name: "capped page size", q: models.ProductQuery{PageSize: 1000}, wantPage: 1, wantPageSize: MaxPageSize, wantItems: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.List(ctx, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantPageSize, page.PageSize)
			assert.Len(t, page.Items, tt.wantItems)
			assert.Equal(t, 12, page.Total)
		})
	}
}

func TestCatalogService_ListFilters(t *testing.T) {
	ctx := context.Background()
	s := NewCatalogService(products.NewMemoryRepository(products.DemoCatalogue()))

	page, err := s.List(ctx, models.ProductQuery{CategoryID: products.CategoryBracelets, Sort: models.SortPriceDesc})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, int64(10), page.Items[0].ID)
	assert.Equal(t, 3, page.Total)

	page, err = s.List(ctx, models.ProductQuery{Search: "no such thing"})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestCatalogService_Get(t *testing.T) {
	ctx := context.Background()
	s := NewCatalogService(products.NewMemoryRepository(products.DemoCatalogue()))

	p, err := s.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Pearl Pendant", p.Name)

	_, err = s.Get(ctx, 404)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
