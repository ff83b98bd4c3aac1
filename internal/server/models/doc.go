// Package models holds the server-side records of the development API. Wire
// types live in internal/models.
package models
