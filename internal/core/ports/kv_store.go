package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when the key was never
// written or has been deleted.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the durable backend beneath the record store. Set must
// replace the value in a single atomic write.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
