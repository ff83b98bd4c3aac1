// Package common contains shared constants, sentinel errors and small helpers
// used by both the storefront client and the development API server.
package common

// Keys of the client-side key/value storage.
const (
	// AuthTokenKey holds the persisted bearer credential (plain string).
	AuthTokenKey = "auth_token"
	// GuestCartKey holds the serialized guest cart (JSON array of line items).
	GuestCartKey = "guest_cart"
)

// HTTP header names shared by the API client and the server.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)
