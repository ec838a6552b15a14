// Package metadata is the client's durable key/value store. It backs the
// persisted session record and any other small client-local settings.
package metadata

import (
	"context"
)

// Repository stores opaque byte values under string keys.
//
// Get returns (nil, nil) for a missing key; Delete of a missing key is not
// an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
