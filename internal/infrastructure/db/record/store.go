// Package record implements the record store: named collections of uniform
// records kept as JSON documents in a key-value backend, and the repositories
// built on top of it.
package record

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/vyom/tryon-store/internal/core/domain"
	"github.com/vyom/tryon-store/internal/core/ports"
	"github.com/vyom/tryon-store/internal/pkg/metrics"
)

// Persisted layout. Each name is stored under the configured key prefix.
const (
	CollectionUsers    = "users"
	CollectionProducts = "products"
	CollectionOrders   = "orders"
	SlotSession        = "current_session"
	SlotTryOnPhoto     = "saved_try_on_photo"
)

const DefaultKeyPrefix = "vyom_"

// ErrInvalidRecord is returned when a caller tries to write a record that
// would not pass the read-side schema check.
var ErrInvalidRecord = errors.New("invalid record")

// Store owns the serialized collections. Repositories are its only callers.
type Store struct {
	kv       ports.KeyValueStore
	prefix   string
	validate *validator.Validate
	log      zerolog.Logger

	// mu serialises read-modify-write cycles (Update). Single writes need no
	// lock since the backend replaces a value atomically.
	mu sync.Mutex
}

// NewStore creates a Store over kv. An empty prefix means DefaultKeyPrefix.
func NewStore(kv ports.KeyValueStore, prefix string, log zerolog.Logger) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{
		kv:       kv,
		prefix:   prefix,
		validate: validator.New(),
		log:      log,
	}
}

// Key returns the backend key for a collection or slot name.
func (s *Store) Key(name string) string {
	return s.prefix + name
}

// load returns the raw value and whether it exists. Backend failures are
// reported as corruption: the collection cannot be trusted.
func (s *Store) load(ctx context.Context, name string) ([]byte, bool, error) {
	raw, err := s.kv.Get(ctx, s.Key(name))
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return nil, false, nil
		}
		metrics.RecordStoreOperationsTotal.WithLabelValues(name, "read", "error").Inc()
		return nil, false, fmt.Errorf("read %s: %w: %w", name, domain.ErrDataCorruption, err)
	}
	return raw, true, nil
}

func (s *Store) save(ctx context.Context, name string, raw []byte) error {
	if err := s.kv.Set(ctx, s.Key(name), raw); err != nil {
		metrics.RecordStoreOperationsTotal.WithLabelValues(name, "write", "error").Inc()
		return fmt.Errorf("write %s: %w", name, err)
	}
	metrics.RecordStoreOperationsTotal.WithLabelValues(name, "write", "ok").Inc()
	return nil
}

func (s *Store) remove(ctx context.Context, name string) error {
	if err := s.kv.Delete(ctx, s.Key(name)); err != nil {
		metrics.RecordStoreOperationsTotal.WithLabelValues(name, "reset", "error").Inc()
		return fmt.Errorf("reset %s: %w", name, err)
	}
	metrics.RecordStoreOperationsTotal.WithLabelValues(name, "reset", "ok").Inc()
	return nil
}

// corrupt builds the DataCorruption error for name and counts it.
func (s *Store) corrupt(name string, cause error) error {
	metrics.RecordStoreOperationsTotal.WithLabelValues(name, "read", "corrupt").Inc()
	return fmt.Errorf("read %s: %w: %v", name, domain.ErrDataCorruption, cause)
}

// decodeStrict parses exactly one JSON value into v, rejecting unknown
// fields, trailing data, and a bare null.
func decodeStrict(raw []byte, v any) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errors.New("unexpected null document")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after document")
	}
	return nil
}
