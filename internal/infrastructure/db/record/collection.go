package record

import (
	"context"
	"fmt"

	"github.com/vyom/tryon-store/internal/pkg/metrics"
)

// Collection is a named, ordered sequence of records of type T. Every call
// goes to the backend; nothing is cached.
type Collection[T any] struct {
	store *Store
	name  string
}

// NewCollection binds a typed collection to s. T must be a struct type.
func NewCollection[T any](s *Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

func (c *Collection[T]) Name() string { return c.name }

// ReadAll returns every record in store order, or an empty slice when the
// collection has never been written. Malformed content fails with
// domain.ErrDataCorruption; no partial result is returned.
func (c *Collection[T]) ReadAll(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.load(ctx, c.name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}

	var records []T
	if err := decodeStrict(raw, &records); err != nil {
		return nil, c.store.corrupt(c.name, err)
	}
	for i := range records {
		if err := c.store.validate.Struct(records[i]); err != nil {
			return nil, c.store.corrupt(c.name, fmt.Errorf("record %d: %w", i, err))
		}
	}
	metrics.RecordStoreOperationsTotal.WithLabelValues(c.name, "read", "ok").Inc()
	return records, nil
}

// WriteAll replaces the whole collection with records in one backend write.
func (c *Collection[T]) WriteAll(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	for i := range records {
		if err := c.store.validate.Struct(records[i]); err != nil {
			metrics.RecordStoreOperationsTotal.WithLabelValues(c.name, "write", "invalid").Inc()
			return fmt.Errorf("write %s: record %d: %w: %v", c.name, i, ErrInvalidRecord, err)
		}
	}
	raw, err := marshal(records)
	if err != nil {
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	return c.store.save(ctx, c.name, raw)
}

// Update runs a read-modify-write cycle under the store lock. fn receives the
// current records and returns the replacement; an error from fn aborts
// without writing.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	records, err := c.ReadAll(ctx)
	if err != nil {
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	return c.WriteAll(ctx, next)
}

// Append is WriteAll(ReadAll() + [record]).
func (c *Collection[T]) Append(ctx context.Context, record T) error {
	return c.Update(ctx, func(records []T) ([]T, error) {
		return append(records, record), nil
	})
}

// Reset drops the collection. The next ReadAll returns an empty slice.
func (c *Collection[T]) Reset(ctx context.Context) error {
	if err := c.store.remove(ctx, c.name); err != nil {
		return err
	}
	c.store.log.Warn().Str("collection", c.name).Msg("collection reset, previous records discarded")
	return nil
}
