package client

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/models"
)

// Client is the storefront API boundary used by the session and cart
// services. Cart mutations return the whole cart as normalized by
// models.DecodeCartResponse.
type Client interface {
	// SetToken sets the default bearer credential; "" clears it.
	SetToken(token string)

	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password, name string) error
	Me(ctx context.Context) (*models.User, error)

	GetCart(ctx context.Context) ([]models.LineItem, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) ([]models.LineItem, error)
	UpdateCartItem(ctx context.Context, itemID int64, quantity int) ([]models.LineItem, error)
	RemoveCartItem(ctx context.Context, itemID int64) ([]models.LineItem, error)

	ListProducts(ctx context.Context, q models.ProductQuery) (models.ProductPage, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}
