package guestcart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/models"
)

// MutateFunc computes a new guest cart from the stored one. changed=false
// skips the write.
type MutateFunc func(items []models.LineItem) (next []models.LineItem, changed bool)

type Repository struct {
	store  metadata.Repository
	logger logging.Logger
}

func NewRepository(store metadata.Repository, logger logging.Logger) *Repository {
	return &Repository{store: store, logger: logger.With("module", "guest_cart")}
}

func decode(data []byte) []models.LineItem {
	items := common.DecodeOrDefault[[]models.LineItem](data, nil)
	if items == nil {
		return []models.LineItem{}
	}
	return items
}

// Read returns the stored guest cart, or an empty one.
func (r *Repository) Read(ctx context.Context) []models.LineItem {
	data, err := r.store.Get(ctx, common.GuestCartKey)
	if err != nil {
		r.logger.Warn(ctx, "guest cart unreadable, using empty cart", "error", err)
		return []models.LineItem{}
	}
	return decode(data)
}

// Write replaces the stored guest cart with items.
func (r *Repository) Write(ctx context.Context, items []models.LineItem) error {
	data, err := encode(items)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, common.GuestCartKey, data)
}

// Clear removes the guest cart.
func (r *Repository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, common.GuestCartKey)
}

// Update applies fn to the stored cart and writes the result in one storage
// transaction. It returns the cart fn produced and whether it was written.
func (r *Repository) Update(ctx context.Context, fn MutateFunc) ([]models.LineItem, bool, error) {
	var (
		result  []models.LineItem
		changed bool
	)

	err := r.store.Update(ctx, common.GuestCartKey, func(current []byte) ([]byte, error) {
		result, changed = fn(decode(current))
		if !changed {
			return nil, metadata.ErrUnchanged
		}
		return encode(result)
	})
	if err != nil {
		return nil, false, err
	}

	return result, changed, nil
}

func encode(items []models.LineItem) ([]byte, error) {
	if items == nil {
		items = []models.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode guest cart: %w", err)
	}
	return data, nil
}
