// Package guestcart persists the cart of an anonymous shopper under the
// "guest_cart" key of the local metadata store.
//
// Reads never fail: a missing key, a storage error or a value that does not
// decode as a JSON array of line items all read as an empty cart. Writes
// store the full list; guest items carry no server identity and are keyed by
// product.
package guestcart
