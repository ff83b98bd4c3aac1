// Package credentials persists the bearer credential under the "auth_token"
// key of the local metadata store.
package credentials
