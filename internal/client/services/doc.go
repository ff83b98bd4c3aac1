// Package services holds the client-side application state: the
// authentication session, the cart and the product catalogue.
//
// # Session and cart
//
// SessionService owns the bearer credential and the current user profile.
// CartService owns the single cart of the running client and picks its
// backing store on every call: the remote cart while the session is
// authenticated, the local guest cart otherwise. Switching sessions replaces
// the cart contents on the next Load; guest and server carts are never
// merged.
//
// # Errors
//
// Network-facing operations record a display message, available through
// Error(). Session operations also return the error; cart and catalogue
// operations never do. ErrorMessage derives the display message.
//
// # Concurrency
//
// All services are safe for concurrent use. No lock is held across a network
// call, so when two mutations overlap the response that arrives last wins.
package services
