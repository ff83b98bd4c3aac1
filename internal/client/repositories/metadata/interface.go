package metadata

import (
	"context"
)

// UpdateFunc receives the current value of a key (nil when absent) and
// returns the value to store. Returning nil deletes the key; returning
// ErrUnchanged leaves the stored value as it is.
type UpdateFunc func(current []byte) ([]byte, error)

// Repository is the client-side key/value storage.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
