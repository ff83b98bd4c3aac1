package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/guestcart"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuestCart(t *testing.T) (*CartService, *fakeClient, *guestcart.Repository, *authFlag) {
	t.Helper()
	fc := newFakeClient()
	guest := guestcart.NewRepository(newMetadata(t), logging.Discard())
	auth := &authFlag{}
	return NewCartService(fc, guest, auth, logging.Discard()), fc, guest, auth
}

func TestLoad_GuestReadsStorageWithoutNetwork(t *testing.T) {
	cart, fc, guest, _ := newGuestCart(t)
	ctx := context.Background()
	stored := []models.LineItem{{ProductID: 7, Quantity: 2}, {ProductID: 3, Quantity: 1}}
	require.NoError(t, guest.Write(ctx, stored))

	cart.Load(ctx)

	assert.Equal(t, stored, cart.Items())
	assert.Empty(t, fc.Calls())
	assert.False(t, cart.Loading())
	assert.Empty(t, cart.Error())
}

func TestLoad_GuestUnparseableIsEmpty(t *testing.T) {
	fc := newFakeClient()
	meta := newMetadata(t)
	ctx := context.Background()
	require.NoError(t, meta.Set(ctx, common.GuestCartKey, []byte("{not json")))

	cart := NewCartService(fc, guestcart.NewRepository(meta, logging.Discard()), &authFlag{}, logging.Discard())
	cart.Load(ctx)

	assert.Empty(t, cart.Items())
	assert.Empty(t, cart.Error())
	assert.Empty(t, fc.Calls())
}

func TestLoad_Authenticated(t *testing.T) {
	cart, fc, _, auth := newGuestCart(t)
	auth.Set(true)
	fc.cart = []models.LineItem{{ItemID: 11, ProductID: 7, Quantity: 2}}

	cart.Load(context.Background())

	assert.Equal(t, fc.cart, cart.Items())
	assert.Equal(t, []string{"get_cart"}, fc.Calls())
}

func TestLoad_FailureKeepsItems(t *testing.T) {
	cart, fc, _, auth := newGuestCart(t)
	ctx := context.Background()
	auth.Set(true)
	fc.cart = []models.LineItem{{ItemID: 11, ProductID: 7, Quantity: 2}}
	cart.Load(ctx)

	fc.cartErr = &client.APIError{Status: http.StatusInternalServerError}
	cart.Load(ctx)

	assert.Equal(t, fc.cart, cart.Items())
	assert.Equal(t, "request failed with status code 500", cart.Error())
	assert.False(t, cart.Loading())

	fc.cartErr = &client.APIError{Status: http.StatusBadRequest, Message: "cart is locked"}
	cart.Load(ctx)
	assert.Equal(t, "cart is locked", cart.Error())
}

func TestAddOrUpdate_GuestFloorsQuantity(t *testing.T) {
	cart, fc, guest, _ := newGuestCart(t)
	ctx := context.Background()

	cart.AddOrUpdate(ctx, 7, 0)
	cart.AddOrUpdate(ctx, 8, -4)

	want := []models.LineItem{{ProductID: 7, Quantity: 1}, {ProductID: 8, Quantity: 1}}
	assert.Equal(t, want, cart.Items())
	assert.Equal(t, want, guest.Read(ctx))
	assert.Empty(t, fc.Calls())
}

func TestAddOrUpdate_GuestOverwritesExisting(t *testing.T) {
	cart, _, guest, _ := newGuestCart(t)
	ctx := context.Background()

	cart.AddOrUpdate(ctx, 7, 3)
	cart.AddOrUpdate(ctx, 7, 3)

	want := []models.LineItem{{ProductID: 7, Quantity: 3}}
	assert.Equal(t, want, cart.Items())
	assert.Equal(t, want, guest.Read(ctx))

	cart.AddOrUpdate(ctx, 7, 5)
	assert.Equal(t, []models.LineItem{{ProductID: 7, Quantity: 5}}, cart.Items())
}

func TestAddOrUpdate_Authenticated(t *testing.T) {
	cart, fc, guest, auth := newGuestCart(t)
	ctx := context.Background()
	auth.Set(true)
	fc.cart = []models.LineItem{{ItemID: 1, ProductID: 7, Quantity: 1, Product: &models.Product{ID: 7, Price: 10}}}

	cart.AddOrUpdate(ctx, 7, 0)

	assert.Equal(t, 1, fc.lastQty)
	assert.Equal(t, fc.cart, cart.Items())
	assert.Empty(t, guest.Read(ctx))
}

func TestAddOrUpdate_AuthenticatedFailure(t *testing.T) {
	cart, fc, _, auth := newGuestCart(t)
	auth.Set(true)
	fc.cartErr = errors.New("")

	cart.AddOrUpdate(context.Background(), 7, 1)

	assert.Equal(t, MsgAddItemFailed, cart.Error())
	assert.Empty(t, cart.Items())
}

func TestUpdateQuantity_GuestZeroRemoves(t *testing.T) {
	cart, _, guest, _ := newGuestCart(t)
	ctx := context.Background()
	cart.AddOrUpdate(ctx, 7, 2)
	cart.AddOrUpdate(ctx, 9, 1)

	cart.UpdateQuantity(ctx, CartItemRef{ProductID: 7}, 0)

	want := []models.LineItem{{ProductID: 9, Quantity: 1}}
	assert.Equal(t, want, cart.Items())
	assert.Equal(t, want, guest.Read(ctx))

	cart.UpdateQuantity(ctx, CartItemRef{ProductID: 9}, -3)
	assert.Empty(t, cart.Items())
	assert.Empty(t, guest.Read(ctx))
}

func TestUpdateQuantity_GuestSetsQuantity(t *testing.T) {
	cart, _, guest, _ := newGuestCart(t)
	ctx := context.Background()
	cart.AddOrUpdate(ctx, 7, 2)

	cart.UpdateQuantity(ctx, CartItemRef{ProductID: 7}, 6)

	want := []models.LineItem{{ProductID: 7, Quantity: 6}}
	assert.Equal(t, want, cart.Items())
	assert.Equal(t, want, guest.Read(ctx))
}

func TestUpdateQuantity_GuestMissingProductIsNoop(t *testing.T) {
	cart, _, guest, _ := newGuestCart(t)
	ctx := context.Background()
	cart.AddOrUpdate(ctx, 7, 2)

	cart.UpdateQuantity(ctx, CartItemRef{ProductID: 99}, 4)
	cart.UpdateQuantity(ctx, CartItemRef{ItemID: 5}, 4)

	want := []models.LineItem{{ProductID: 7, Quantity: 2}}
	assert.Equal(t, want, cart.Items())
	assert.Equal(t, want, guest.Read(ctx))
	assert.Empty(t, cart.Error())
}

func TestUpdateQuantity_Authenticated(t *testing.T) {
	cart, fc, _, auth := newGuestCart(t)
	ctx := context.Background()
	auth.Set(true)

	cart.UpdateQuantity(ctx, CartItemRef{ProductID: 7}, 3)
	assert.Empty(t, fc.Calls())

	fc.cart = []models.LineItem{}
	cart.UpdateQuantity(ctx, CartItemRef{ItemID: 11, ProductID: 7}, -1)
	assert.Equal(t, []string{"update_cart_item"}, fc.Calls())
	assert.EqualValues(t, 11, fc.lastItemID)
	assert.Equal(t, 0, fc.lastQty)
	assert.Empty(t, cart.Items())

	fc.cartErr = &client.APIError{Status: http.StatusNotFound, Message: "item not found"}
	cart.UpdateQuantity(ctx, CartItemRef{ItemID: 12}, 1)
	assert.Equal(t, "item not found", cart.Error())
}

func TestRemove_GuestWithoutProductIDIsNoop(t *testing.T) {
	cart, fc, guest, _ := newGuestCart(t)
	ctx := context.Background()
	cart.AddOrUpdate(ctx, 7, 2)
	before := cart.Items()

	cart.Remove(ctx, CartItemRef{ItemID: 5})

	assert.Equal(t, before, cart.Items())
	assert.Equal(t, before, guest.Read(ctx))
	assert.Empty(t, fc.Calls())
	assert.Empty(t, cart.Error())
}

func TestAuthenticatedRefWithoutItemIDIsNoop(t *testing.T) {
	cart, fc, _, auth := newGuestCart(t)
	ctx := context.Background()
	auth.Set(true)
	fc.cart = []models.LineItem{{ItemID: 3, ProductID: 8, Quantity: 2}}
	cart.Load(ctx)
	calls := len(fc.Calls())

	cart.UpdateQuantity(ctx, CartItemRef{ProductID: 8}, 5)
	cart.Remove(ctx, CartItemRef{})

	assert.Len(t, fc.Calls(), calls)
	assert.Equal(t, fc.cart, cart.Items())
	assert.Empty(t, cart.Error())
}

func TestRemove_Guest(t *testing.T) {
	cart, _, guest, _ := newGuestCart(t)
	ctx := context.Background()
	cart.AddOrUpdate(ctx, 7, 2)
	cart.AddOrUpdate(ctx, 8, 1)

	cart.Remove(ctx, CartItemRef{ProductID: 7})

	want := []models.LineItem{{ProductID: 8, Quantity: 1}}
	assert.Equal(t, want, cart.Items())
	assert.Equal(t, want, guest.Read(ctx))

	// absent product still rewrites the same list
	cart.Remove(ctx, CartItemRef{ProductID: 42})
	assert.Equal(t, want, guest.Read(ctx))
}

func TestRemove_Authenticated(t *testing.T) {
	cart, fc, _, auth := newGuestCart(t)
	ctx := context.Background()
	auth.Set(true)

	cart.Remove(ctx, CartItemRef{ProductID: 7})
	assert.Empty(t, fc.Calls())

	fc.cart = []models.LineItem{{ItemID: 2, ProductID: 8, Quantity: 1}}
	cart.Remove(ctx, CartItemRef{ItemID: 1})
	assert.Equal(t, []string{"remove_cart_item"}, fc.Calls())
	assert.EqualValues(t, 1, fc.lastItemID)
	assert.Equal(t, fc.cart, cart.Items())

	fc.cartErr = errors.New("remove failed")
	cart.Remove(ctx, CartItemRef{ItemID: 2})
	assert.Equal(t, "remove failed", cart.Error())
	assert.Equal(t, fc.cart, cart.Items())
}

func TestDerivedTotals(t *testing.T) {
	cart, fc, _, auth := newGuestCart(t)
	auth.Set(true)
	fc.cart = []models.LineItem{
		{ItemID: 1, ProductID: 1, Quantity: 2, Product: &models.Product{ID: 1, Price: 10}},
		{ItemID: 2, ProductID: 2, Quantity: 1},
	}

	cart.Load(context.Background())

	assert.Equal(t, 3, cart.ItemCount())
	assert.InDelta(t, 20.0, cart.TotalPrice(), 1e-9)
}

func TestSessionSwitchReplacesItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.cart.AddOrUpdate(ctx, 100, 1)
	guestItems := f.cart.Items()

	f.client.loginToken = "tok-ann"
	f.client.users["tok-ann"] = ann
	f.client.cart = []models.LineItem{
		{ItemID: 1, ProductID: 7, Quantity: 2, Product: &models.Product{ID: 7, Price: 5}},
	}
	require.NoError(t, f.session.Login(ctx, "ann@example.com", "pw"))
	f.cart.Load(ctx)
	assert.Equal(t, f.client.cart, f.cart.Items())

	f.session.Logout(ctx)
	f.cart.Load(ctx)

	assert.Equal(t, guestItems, f.cart.Items())
	assert.Equal(t, 1, f.cart.ItemCount())
	assert.Zero(t, f.cart.TotalPrice())
}

func TestCart_RoutingIsCheckedPerCall(t *testing.T) {
	cart, fc, guest, auth := newGuestCart(t)
	ctx := context.Background()

	cart.AddOrUpdate(ctx, 7, 1)
	assert.Empty(t, fc.Calls())

	auth.Set(true)
	fc.cart = []models.LineItem{{ItemID: 3, ProductID: 9, Quantity: 4}}
	cart.AddOrUpdate(ctx, 9, 4)
	assert.Equal(t, []string{"add_cart_item"}, fc.Calls())
	assert.Equal(t, []models.LineItem{{ProductID: 7, Quantity: 1}}, guest.Read(ctx))

	auth.Set(false)
	cart.AddOrUpdate(ctx, 8, 1)
	assert.Len(t, fc.Calls(), 1)
	assert.Equal(t, []models.LineItem{{ProductID: 7, Quantity: 1}, {ProductID: 8, Quantity: 1}}, guest.Read(ctx))
}

type failingGuest struct {
	items []models.LineItem
}

var errGuestStorage = errors.New("disk full")

func (g failingGuest) Read(context.Context) []models.LineItem { return g.items }
func (g failingGuest) Clear(context.Context) error { return errGuestStorage }
func (g failingGuest) Update(context.Context, guestcart.MutateFunc) ([]models.LineItem, bool, error) {
	return nil, false, errGuestStorage
}

func TestGuestStorageFailureKeepsItems(t *testing.T) {
	fc := newFakeClient()
	stored := []models.LineItem{{ProductID: 1, Quantity: 1}}
	cart := NewCartService(fc, failingGuest{items: stored}, &authFlag{}, logging.Discard())
	ctx := context.Background()
	cart.Load(ctx)

	cart.AddOrUpdate(ctx, 2, 1)
	assert.Equal(t, "disk full", cart.Error())
	assert.Equal(t, stored, cart.Items())

	cart.UpdateQuantity(ctx, CartItemRef{ProductID: 1}, 0)
	assert.Equal(t, "disk full", cart.Error())

	cart.Remove(ctx, CartItemRef{ProductID: 1})
	assert.Equal(t, "disk full", cart.Error())
	assert.Equal(t, stored, cart.Items())

	require.ErrorIs(t, cart.ClearGuestCart(ctx), errGuestStorage)
}

func TestCart_ErrorResetByNextOperation(t *testing.T) {
	cart, fc, _, auth := newGuestCart(t)
	ctx := context.Background()
	auth.Set(true)

	fc.cartErr = errors.New("offline")
	cart.Load(ctx)
	require.Equal(t, "offline", cart.Error())

	fc.cartErr = nil
	fc.cart = []models.LineItem{}
	cart.Load(ctx)
	assert.Empty(t, cart.Error())

	state := cart.State()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
	assert.Empty(t, state.Items)
}

func TestClearGuestCart(t *testing.T) {
	cart, _, guest, _ := newGuestCart(t)
	ctx := context.Background()
	cart.AddOrUpdate(ctx, 7, 1)

	require.NoError(t, cart.ClearGuestCart(ctx))

	assert.Empty(t, guest.Read(ctx))
	assert.Len(t, cart.Items(), 1)
}

func TestItems_ReturnsCopy(t *testing.T) {
	cart, fc, _, auth := newGuestCart(t)
	auth.Set(true)
	fc.cart = []models.LineItem{{ItemID: 1, ProductID: 1, Quantity: 1, Product: &models.Product{ID: 1, Price: 3}}}
	cart.Load(context.Background())

	items := cart.Items()
	items[0].Quantity = 100
	items[0].Product.Price = 1000

	assert.Equal(t, 1, cart.ItemCount())
	assert.InDelta(t, 3.0, cart.TotalPrice(), 1e-9)
}
