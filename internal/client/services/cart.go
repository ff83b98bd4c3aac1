package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/repositories/guestcart"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/models"
)

// AuthState tells the cart which store to use. It is consulted on every
// operation.
type AuthState interface {
	IsAuthenticated() bool
}

// CartClient is the part of the API client the cart needs.
type CartClient interface {
	GetCart(ctx context.Context) ([]models.LineItem, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) ([]models.LineItem, error)
	UpdateCartItem(ctx context.Context, itemID int64, quantity int) ([]models.LineItem, error)
	RemoveCartItem(ctx context.Context, itemID int64) ([]models.LineItem, error)
}

// GuestStore is the local cart used while the session is anonymous.
type GuestStore interface {
	Read(ctx context.Context) []models.LineItem
	Clear(ctx context.Context) error
	Update(ctx context.Context, fn guestcart.MutateFunc) ([]models.LineItem, bool, error)
}

// CartItemRef identifies a line item. Authenticated carts address items by
// ItemID, guest carts by ProductID. Ids are positive, so zero means absent;
// an operation whose ref lacks the id the session needs does nothing.
type CartItemRef struct {
	ItemID    int64
	ProductID int64
}

// CartState is a snapshot of the cart.
type CartState struct {
	Items   []models.LineItem
	Loading bool
	Error   string
}

// CartService owns the cart of the running client.
type CartService struct {
	client CartClient
	guest  GuestStore
	auth   AuthState
	logger logging.Logger

	mu      sync.RWMutex
	items   []models.LineItem
	loading bool
	errMsg  string
}

func NewCartService(c CartClient, guest GuestStore, auth AuthState, logger logging.Logger) *CartService {
	return &CartService{
		client: c,
		guest:  guest,
		auth:   auth,
		logger: logger.With("module", "cart"),
		items:  []models.LineItem{},
	}
}

func (s *CartService) start() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *CartService) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *CartService) setItems(items []models.LineItem) {
	s.mu.Lock()
	s.items = models.CloneItems(items)
	s.mu.Unlock()
}

// fail records err; the items are left as they are.
func (s *CartService) fail(ctx context.Context, op string, err error, fallback string) {
	s.logger.Warn(ctx, "cart operation failed", "op", op, "error", err)
	s.mu.Lock()
	s.errMsg = ErrorMessage(err, fallback)
	s.mu.Unlock()
}

// Load replaces the items with the cart of the current session. A failed
// remote load keeps the previous items.
func (s *CartService) Load(ctx context.Context) {
	s.start()
	defer s.finish()

	if !s.auth.IsAuthenticated() {
		s.setItems(s.guest.Read(ctx))
		return
	}

	items, err := s.client.GetCart(ctx)
	if err != nil {
		s.fail(ctx, "load", err, MsgLoadCartFailed)
		return
	}
	s.setItems(items)
}

// AddOrUpdate sets the quantity of productID, adding it when absent.
// Quantities below 1 are raised to 1.
func (s *CartService) AddOrUpdate(ctx context.Context, productID int64, quantity int) {
	quantity = max(quantity, 1)

	s.start()
	defer s.finish()

	if s.auth.IsAuthenticated() {
		items, err := s.client.AddCartItem(ctx, productID, quantity)
		if err != nil {
			s.fail(ctx, "add", err, MsgAddItemFailed)
			return
		}
		s.setItems(items)
		return
	}

	items, _, err := s.guest.Update(ctx, func(items []models.LineItem) ([]models.LineItem, bool) {
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity = quantity
				return items, true
			}
		}
		return append(items, models.LineItem{ProductID: productID, Quantity: quantity}), true
	})
	if err != nil {
		s.fail(ctx, "add", err, MsgAddItemFailed)
		return
	}
	s.setItems(items)
}

// UpdateQuantity sets the quantity of the referenced item. Negative
// quantities become 0; in a guest cart 0 removes the item. A ref without the
// key the current session needs is ignored, as is a guest product that is not
// in the cart.
func (s *CartService) UpdateQuantity(ctx context.Context, ref CartItemRef, quantity int) {
	quantity = max(quantity, 0)

	s.start()
	defer s.finish()

	if s.auth.IsAuthenticated() {
		if ref.ItemID == 0 {
			return
		}
		items, err := s.client.UpdateCartItem(ctx, ref.ItemID, quantity)
		if err != nil {
			s.fail(ctx, "update", err, MsgUpdateItemFailed)
			return
		}
		s.setItems(items)
		return
	}

	if ref.ProductID == 0 {
		return
	}
	items, changed, err := s.guest.Update(ctx, func(items []models.LineItem) ([]models.LineItem, bool) {
		for i := range items {
			if items[i].ProductID != ref.ProductID {
				continue
			}
			if quantity <= 0 {
				return withoutProduct(items, ref.ProductID), true
			}
			items[i].Quantity = quantity
			return items, true
		}
		return nil, false
	})
	if err != nil {
		s.fail(ctx, "update", err, MsgUpdateItemFailed)
		return
	}
	if changed {
		s.setItems(items)
	}
}

// Remove deletes the referenced item. A ref without the key the current
// session needs is ignored.
func (s *CartService) Remove(ctx context.Context, ref CartItemRef) {
	s.start()
	defer s.finish()

	if s.auth.IsAuthenticated() {
		if ref.ItemID == 0 {
			return
		}
		items, err := s.client.RemoveCartItem(ctx, ref.ItemID)
		if err != nil {
			s.fail(ctx, "remove", err, MsgRemoveItemFailed)
			return
		}
		s.setItems(items)
		return
	}

	if ref.ProductID == 0 {
		return
	}
	items, _, err := s.guest.Update(ctx, func(items []models.LineItem) ([]models.LineItem, bool) {
		return withoutProduct(items, ref.ProductID), true
	})
	if err != nil {
		s.fail(ctx, "remove", err, MsgRemoveItemFailed)
		return
	}
	s.setItems(items)
}

// ClearGuestCart deletes the persisted guest cart. The in-memory items are
// not touched.
func (s *CartService) ClearGuestCart(ctx context.Context) error {
	return s.guest.Clear(ctx)
}

// Items returns a copy of the current items.
func (s *CartService) Items() []models.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneItems(s.items)
}

// ItemCount is the sum of all quantities.
func (s *CartService) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.ItemCount(s.items)
}

// TotalPrice sums quantity × price over items with a product snapshot.
func (s *CartService) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.TotalPrice(s.items)
}

func (s *CartService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *CartService) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *CartService) State() CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CartState{
		Items:   models.CloneItems(s.items),
		Loading: s.loading,
		Error:   s.errMsg,
	}
}

func withoutProduct(items []models.LineItem, productID int64) []models.LineItem {
	out := make([]models.LineItem, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}
