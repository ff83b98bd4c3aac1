package carts

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	carts  map[int64][]models.CartLine
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[int64][]models.CartLine)}
}

func (r *MemoryRepository) Lines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.carts[userID]), nil
}

func (r *MemoryRepository) Upsert(ctx context.Context, userID, productID int64, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			return nil
		}
	}

	r.nextID++
	r.carts[userID] = append(lines, models.CartLine{ID: r.nextID, ProductID: productID, Quantity: quantity})
	return nil
}

func (r *MemoryRepository) SetQuantity(ctx context.Context, userID, lineID int64, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.carts[userID]
	i := slices.IndexFunc(lines, func(l models.CartLine) bool { return l.ID == lineID })
	if i < 0 {
		return common.ErrorNotFound
	}

	if quantity == 0 {
		r.carts[userID] = slices.Delete(lines, i, i+1)
		return nil
	}
	lines[i].Quantity = quantity
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, lineID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.carts[userID]
	i := slices.IndexFunc(lines, func(l models.CartLine) bool { return l.ID == lineID })
	if i < 0 {
		return common.ErrorNotFound
	}
	r.carts[userID] = slices.Delete(lines, i, i+1)
	return nil
}
