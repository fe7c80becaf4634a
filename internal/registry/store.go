package registry

import (
	"context"

	"skillexify/internal/kv"
)

const configKey = "config"

// Store reads and writes the singleton config through an operation's batch.
type Store struct {
	b *kv.Batch
}

func NewStore(b *kv.Batch) Store {
	return Store{b: b}
}

// Load returns the config, or sentinel.ErrNotFound before initialization.
func (s Store) Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := s.b.GetJSON(ctx, configKey, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (s Store) Save(cfg Config) error {
	return s.b.SetJSON(configKey, cfg)
}

// Exists reports whether the engine has been initialized.
func (s Store) Exists(ctx context.Context) (bool, error) {
	if _, err := s.b.Get(ctx, configKey); err != nil {
		if kv.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
