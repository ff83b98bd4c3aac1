// Package services contains the business logic of the development API
// server: accounts and tokens (UserService), the catalogue (CatalogService)
// and per-user carts (CartService). Handlers translate the sentinel errors of
// internal/common into HTTP statuses.
package services
