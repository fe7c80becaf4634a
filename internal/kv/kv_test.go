package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillexify/pkg/platform/sentinel"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("commit makes all writes visible", func(t *testing.T) {
		err := store.Commit(ctx, []Write{
			{Key: "a", Value: []byte("1")},
			{Key: "b", Value: []byte("2")},
		})
		require.NoError(t, err)

		a, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), a)
		b, err := store.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), b)
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		require.NoError(t, store.Commit(ctx, []Write{{Key: "c", Value: []byte("orig")}}))
		v, err := store.Get(ctx, "c")
		require.NoError(t, err)
		v[0] = 'X'
		again, err := store.Get(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, []byte("orig"), again)
	})
}

func TestBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("reads its own staged writes", func(t *testing.T) {
		store := NewMemory()
		b := NewBatch(store)
		b.Set("k", []byte("staged"))

		got, err := b.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("staged"), got)

		// Nothing visible outside the batch before commit.
		_, err = store.Get(ctx, "k")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("uncommitted batch leaves no trace", func(t *testing.T) {
		store := NewMemory()
		b := NewBatch(store)
		b.Set("k", []byte("v"))

		assert.Equal(t, 0, store.Len())
	})

	t.Run("commit flushes in one unit", func(t *testing.T) {
		store := NewMemory()
		b := NewBatch(store)
		b.Set("x", []byte("1"))
		b.Set("y", []byte("2"))
		require.NoError(t, b.Commit(ctx))

		assert.Equal(t, 2, store.Len())
	})

	t.Run("re-set replaces staged value without duplicating the write", func(t *testing.T) {
		store := NewMemory()
		b := NewBatch(store)
		b.Set("k", []byte("first"))
		b.Set("k", []byte("second"))
		assert.Equal(t, 1, b.Len())

		require.NoError(t, b.Commit(ctx))
		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), got)
	})

	t.Run("json round trip", func(t *testing.T) {
		store := NewMemory()
		b := NewBatch(store)
		type rec struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}
		require.NoError(t, b.SetJSON("rec", rec{Name: "n", Count: 3}))

		var got rec
		require.NoError(t, b.GetJSON(ctx, "rec", &got))
		assert.Equal(t, rec{Name: "n", Count: 3}, got)
	})

	t.Run("overlay wins over committed state", func(t *testing.T) {
		store := NewMemory()
		require.NoError(t, store.Commit(ctx, []Write{{Key: "k", Value: []byte("old")}}))

		b := NewBatch(store)
		b.Set("k", []byte("new"))
		got, err := b.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), got)
	})
}
