// Package metadata is the key-value table backing the local credential
// store: tokens, the cached identity, and the store's KDF salt.
package metadata

import (
	"context"
)

// Repository is a byte-valued key-value store.
// Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
