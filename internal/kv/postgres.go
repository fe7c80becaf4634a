package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"skillexify/pkg/platform/sentinel"
)

// Postgres is a Store backed by a single key-value table. Batches commit
// inside one SQL transaction, which gives the all-or-nothing visibility the
// engine relies on.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects with the lib/pq driver and ensures the schema exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	store := &Postgres{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewPostgres wraps an existing connection pool. The caller owns the pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS engine_state (
			key   TEXT PRIMARY KEY,
			value BYTEA NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create engine_state: %w", err)
	}
	return nil
}

// EnsureSchema creates the backing table if missing. Exposed for pools passed
// in via NewPostgres.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	return p.ensureSchema(ctx)
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT value FROM engine_state WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get %s: %w", key, err)
	}
	return value, nil
}

func (p *Postgres) Commit(ctx context.Context, writes []Write) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres begin: %w", err)
	}
	for _, w := range writes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO engine_state (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
			w.Key, w.Value); err != nil {
			tx.Rollback()
			return fmt.Errorf("postgres set %s: %w", w.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres commit: %w", err)
	}
	return nil
}

// Close releases the underlying pool.
func (p *Postgres) Close() error { return p.db.Close() }
