// Package metadata implements the raw key-value repositories that back the
// client's durable store. Values are opaque bytes; serialization and failure
// containment live one layer up, in the storage package.
//
// A Get for an absent key returns (nil, nil).
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// DeleteMany removes all keys as one unit where the backend supports it.
	DeleteMany(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
