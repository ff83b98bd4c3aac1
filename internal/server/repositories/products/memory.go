package products

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/models"
)

type MemoryRepository struct {
	items []models.Product
	byID  map[int64]int
}

// NewMemoryRepository serves the given products in id order.
func NewMemoryRepository(items []models.Product) *MemoryRepository {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b models.Product) int { return cmp.Compare(a.ID, b.ID) })

	byID := make(map[int64]int, len(sorted))
	for i, p := range sorted {
		byID[p.ID] = i
	}
	return &MemoryRepository{items: sorted, byID: byID}
}

func (r *MemoryRepository) List(ctx context.Context, f Filter) ([]models.Product, int, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var matched []models.Product
	for _, p := range r.items {
		if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		matched = append(matched, p)
	}

	switch f.Sort {
	case models.SortPriceAsc:
		slices.SortStableFunc(matched, func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) })
	case models.SortPriceDesc:
		slices.SortStableFunc(matched, func(a, b models.Product) int { return cmp.Compare(b.Price, a.Price) })
	}

	total := len(matched)
	start := min((f.Page-1)*f.PageSize, total)
	end := min(start+f.PageSize, total)

	page := make([]models.Product, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (*models.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p := r.items[i]
	return &p, nil
}
