// Package kv is the persistence substrate for the proof engine. It exposes a
// minimal key-value contract: atomic reads of single keys and all-or-nothing
// visibility of a batch of writes. Everything the engine persists goes through
// a Batch so each mutating operation commits as one unit.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"skillexify/pkg/platform/sentinel"
)

// Write is one staged key-value pair inside a batch.
type Write struct {
	Key   string
	Value []byte
}

// Store is implemented by every backend. Commit must apply all writes or none
// of them; partial application must never be observable.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Commit(ctx context.Context, writes []Write) error
}

// Batch overlays staged writes on top of a Store so an operation reads its own
// pending writes. Nothing reaches the store until Commit; discarding the batch
// on a validation failure leaves no trace.
type Batch struct {
	store  Store
	staged map[string]int // key -> index into writes
	writes []Write
}

func NewBatch(store Store) *Batch {
	return &Batch{store: store, staged: make(map[string]int)}
}

// Get returns the staged value for key if one exists, otherwise reads through
// to the store.
func (b *Batch) Get(ctx context.Context, key string) ([]byte, error) {
	if i, ok := b.staged[key]; ok {
		return b.writes[i].Value, nil
	}
	return b.store.Get(ctx, key)
}

// Set stages a write. A later Set on the same key replaces the earlier value
// while keeping its position in the write order.
func (b *Batch) Set(key string, value []byte) {
	if i, ok := b.staged[key]; ok {
		b.writes[i].Value = value
		return
	}
	b.staged[key] = len(b.writes)
	b.writes = append(b.writes, Write{Key: key, Value: value})
}

// GetJSON reads key and decodes it into v. sentinel.ErrNotFound passes
// through untouched so callers can load-or-default.
func (b *Batch) GetJSON(ctx context.Context, key string, v any) error {
	raw, err := b.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stages it under key.
func (b *Batch) SetJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	b.Set(key, raw)
	return nil
}

// Len reports how many distinct keys are staged.
func (b *Batch) Len() int { return len(b.writes) }

// Commit flushes the staged writes to the store in one atomic unit.
func (b *Batch) Commit(ctx context.Context) error {
	if len(b.writes) == 0 {
		return nil
	}
	return b.store.Commit(ctx, b.writes)
}

// IsNotFound reports whether err means the key does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound)
}
