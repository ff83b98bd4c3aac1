package services

import (
	"context"
	"database/sql"
	"net/http"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/guestcart"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

var _ client.Client = (*fakeClient)(nil)

// fakeClient is an in-memory client.Client. Me answers from users keyed by
// the current bearer token and with 401 for unknown tokens.
type fakeClient struct {
	mu    sync.Mutex
	token string
	calls []string

	loginToken  string
	loginErr    error
	registerErr error
	users       map[string]*models.User
	onLogin     func()
	// onUnauthorized is called with the rejected token, the way the HTTP
	// client reports a 401.
	onUnauthorized func(ctx context.Context, token string)

	cart       []models.LineItem
	cartErr    error
	lastQty    int
	lastItemID int64

	page       models.ProductPage
	pageErr    error
	lastQuery  models.ProductQuery
	product    *models.Product
	productErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{users: map[string]*models.User{}}
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) CurrentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeClient) SetToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.record("login")
	if f.onLogin != nil {
		f.onLogin()
	}
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeClient) Register(ctx context.Context, email, password, name string) error {
	f.record("register")
	return f.registerErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	f.record("me")
	f.mu.Lock()
	token := f.token
	u, ok := f.users[token]
	hook := f.onUnauthorized
	f.mu.Unlock()

	if !ok {
		if hook != nil && token != "" {
			hook(ctx, token)
		}
		return nil, &client.APIError{Status: http.StatusUnauthorized, Message: "invalid token"}
	}
	cp := *u
	return &cp, nil
}

func (f *fakeClient) cartResponse() ([]models.LineItem, error) {
	if f.cartErr != nil {
		return nil, f.cartErr
	}
	return models.CloneItems(f.cart), nil
}

func (f *fakeClient) GetCart(ctx context.Context) ([]models.LineItem, error) {
	f.record("get_cart")
	return f.cartResponse()
}

func (f *fakeClient) AddCartItem(ctx context.Context, productID int64, quantity int) ([]models.LineItem, error) {
	f.record("add_cart_item")
	f.lastQty = quantity
	return f.cartResponse()
}

func (f *fakeClient) UpdateCartItem(ctx context.Context, itemID int64, quantity int) ([]models.LineItem, error) {
	f.record("update_cart_item")
	f.lastItemID, f.lastQty = itemID, quantity
	return f.cartResponse()
}

func (f *fakeClient) RemoveCartItem(ctx context.Context, itemID int64) ([]models.LineItem, error) {
	f.record("remove_cart_item")
	f.lastItemID = itemID
	return f.cartResponse()
}

func (f *fakeClient) ListProducts(ctx context.Context, q models.ProductQuery) (models.ProductPage, error) {
	f.record("list_products")
	f.lastQuery = q
	return f.page, f.pageErr
}

func (f *fakeClient) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	f.record("get_product")
	return f.product, f.productErr
}

type authFlag struct {
	mu sync.Mutex
	on bool
}

func (a *authFlag) Set(on bool) {
	a.mu.Lock()
	a.on = on
	a.mu.Unlock()
}

func (a *authFlag) IsAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.on
}

func newMetadata(t *testing.T) *metadata.SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return metadata.NewSQLiteRepository(db)
}

type fixture struct {
	client  *fakeClient
	meta    *metadata.SQLiteRepository
	creds   *credentials.Store
	guest   *guestcart.Repository
	session *SessionService
	cart    *CartService
}

func newFixture(t *testing.T, opts ...SessionOption) *fixture {
	t.Helper()
	fc := newFakeClient()
	meta := newMetadata(t)
	creds := credentials.NewStore(meta)
	guest := guestcart.NewRepository(meta, logging.Discard())
	session := NewSessionService(fc, creds, logging.Discard(), opts...)
	return &fixture{
		client:  fc,
		meta:    meta,
		creds:   creds,
		guest:   guest,
		session: session,
		cart:    NewCartService(fc, guest, session, logging.Discard()),
	}
}
