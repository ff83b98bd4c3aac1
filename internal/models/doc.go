// Package models defines the storefront wire types shared by the API client
// and the development server: users, products and cart line items, plus the
// decoders that normalize the variable-shaped responses of the cart and
// product endpoints.
package models
