package stats

import (
	"context"

	"skillexify/internal/kv"
)

const statsKeyPrefix = "stats:"

// Store gives typed access to per-platform stats records.
type Store struct {
	b *kv.Batch
}

func NewStore(b *kv.Batch) Store {
	return Store{b: b}
}

// Find returns the platform's stats, or sentinel.ErrNotFound when no proof
// has been recorded for it yet.
func (s Store) Find(ctx context.Context, platform string) (PlatformStats, error) {
	var ps PlatformStats
	if err := s.b.GetJSON(ctx, statsKeyPrefix+platform, &ps); err != nil {
		return PlatformStats{}, err
	}
	return ps, nil
}

// FindOrNew loads a platform's stats or returns the zero record lazily.
func (s Store) FindOrNew(ctx context.Context, platform string) (PlatformStats, error) {
	ps, err := s.Find(ctx, platform)
	if err != nil {
		if kv.IsNotFound(err) {
			return New(platform), nil
		}
		return PlatformStats{}, err
	}
	return ps, nil
}

func (s Store) Save(ps PlatformStats) error {
	return s.b.SetJSON(statsKeyPrefix+ps.Platform, ps)
}
