// Package client contains the storefront API boundary and the bootstrap of
// the local client database.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): login,
//     registration and profile lookup, the remote cart, and the product
//     catalogue.
//  2. A concrete REST implementation (see HTTPClient) that injects the bearer
//     credential, tags requests with an X-Request-ID, optionally throttles
//     outgoing calls, and turns non-2xx answers into *APIError values.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite file and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. API failures are *APIError and
// match ErrUnauthorized / ErrNotFound with errors.Is. Undecodable success
// bodies wrap ErrBadResponse, except for cart and product listings, which
// are normalized to empty collections.
package client
