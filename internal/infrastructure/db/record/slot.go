package record

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vyom/tryon-store/internal/pkg/metrics"
)

// Slot holds at most one record of type T.
type Slot[T any] struct {
	store *Store
	name  string
}

func NewSlot[T any](s *Store, name string) *Slot[T] {
	return &Slot[T]{store: s, name: name}
}

// Load returns the stored record, or (nil, nil) when the slot is empty.
func (s *Slot[T]) Load(ctx context.Context) (*T, error) {
	raw, ok, err := s.store.load(ctx, s.name)
	if err != nil || !ok {
		return nil, err
	}

	var v T
	if err := decodeStrict(raw, &v); err != nil {
		return nil, s.store.corrupt(s.name, err)
	}
	if err := s.store.validate.Struct(v); err != nil {
		return nil, s.store.corrupt(s.name, err)
	}
	metrics.RecordStoreOperationsTotal.WithLabelValues(s.name, "read", "ok").Inc()
	return &v, nil
}

func (s *Slot[T]) Save(ctx context.Context, v T) error {
	if err := s.store.validate.Struct(v); err != nil {
		metrics.RecordStoreOperationsTotal.WithLabelValues(s.name, "write", "invalid").Inc()
		return fmt.Errorf("write %s: %w: %v", s.name, ErrInvalidRecord, err)
	}
	raw, err := marshal(v)
	if err != nil {
		return fmt.Errorf("write %s: %w", s.name, err)
	}
	return s.store.save(ctx, s.name, raw)
}

// Clear empties the slot. Clearing an empty slot is not an error.
func (s *Slot[T]) Clear(ctx context.Context) error {
	return s.store.remove(ctx, s.name)
}

func marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
