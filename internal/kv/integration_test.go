//go:build integration

package kv_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillexify/internal/engine"
	"skillexify/internal/kv"
	"skillexify/pkg/testutil/containers"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStoreContract(t *testing.T, store kv.Store) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.True(t, kv.IsNotFound(err))
	})

	t.Run("commit then read", func(t *testing.T) {
		require.NoError(t, store.Commit(ctx, []kv.Write{
			{Key: "a", Value: []byte("one")},
			{Key: "b", Value: []byte("two")},
		}))

		got, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("one"), got)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Commit(ctx, []kv.Write{{Key: "a", Value: []byte("updated")}}))
		got, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("updated"), got)
	})

	t.Run("batch over live store", func(t *testing.T) {
		b := kv.NewBatch(store)
		b.Set("c", []byte("staged"))
		_, err := store.Get(ctx, "c")
		assert.True(t, kv.IsNotFound(err), "staged write must stay invisible")

		require.NoError(t, b.Commit(ctx))
		got, err := store.Get(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, []byte("staged"), got)
	})
}

func TestRedisStore(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	require.NoError(t, rc.FlushAll(context.Background()))
	testStoreContract(t, kv.NewRedis(rc.Client))
}

func TestPostgresStore(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := kv.OpenPostgres(ctx, pc.DSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	testStoreContract(t, store)
}

// The engine behaves identically over every backend; run one full command
// cycle against each real store.
func TestEngineOverBackends(t *testing.T) {
	ctx := context.Background()

	run := func(t *testing.T, store kv.Store) {
		e := engine.New(store, testLogger())
		_, err := e.Init(ctx, "deployer", "")
		require.NoError(t, err)

		res, err := e.Execute(ctx, "alice", engine.SubmitProof{
			Platform:  "GitHub",
			Username:  "alice-gh",
			SkillData: `{"repos":12}`,
			ProofHash: "abcdefghijklmnopqrstuvwxyz012345",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(35), res.(engine.ProofStored).ScoreGained)

		got, err := e.Query(ctx, engine.ReputationQuery{User: "alice"})
		require.NoError(t, err)
		assert.NotNil(t, got)
	}

	t.Run("redis", func(t *testing.T) {
		rc := containers.NewRedisContainer(t)
		require.NoError(t, rc.FlushAll(ctx))
		run(t, kv.NewRedis(rc.Client))
	})

	t.Run("postgres", func(t *testing.T) {
		pc := containers.NewPostgresContainer(t)
		store, err := kv.OpenPostgres(ctx, pc.DSN)
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		run(t, store)
	})
}
