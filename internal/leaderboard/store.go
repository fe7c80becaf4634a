package leaderboard

import (
	"context"
	"slices"

	"skillexify/internal/identity"
	"skillexify/internal/kv"
)

const (
	globalKey         = "board:global"
	platformKeyPrefix = "board:platform:"
)

// Store gives typed access to the membership lists.
type Store struct {
	b *kv.Batch
}

func NewStore(b *kv.Batch) Store {
	return Store{b: b}
}

// InitGlobal writes the empty global list at engine initialization.
func (s Store) InitGlobal() error {
	return s.b.SetJSON(globalKey, []identity.Address{})
}

// Track registers user on the platform list and the global list, each only on
// first sight.
func (s Store) Track(ctx context.Context, platform string, user identity.Address) error {
	members, err := s.members(ctx, platformKeyPrefix+platform)
	if err != nil {
		return err
	}
	if !slices.Contains(members, user) {
		if err := s.b.SetJSON(platformKeyPrefix+platform, append(members, user)); err != nil {
			return err
		}
	}

	global, err := s.members(ctx, globalKey)
	if err != nil {
		return err
	}
	if !slices.Contains(global, user) {
		if err := s.b.SetJSON(globalKey, append(global, user)); err != nil {
			return err
		}
	}
	return nil
}

// Members returns the platform's membership list, or the global list when
// platform is empty. Lists are in first-seen order.
func (s Store) Members(ctx context.Context, platform string) ([]identity.Address, error) {
	key := globalKey
	if platform != "" {
		key = platformKeyPrefix + platform
	}
	return s.members(ctx, key)
}

func (s Store) members(ctx context.Context, key string) ([]identity.Address, error) {
	var members []identity.Address
	if err := s.b.GetJSON(ctx, key, &members); err != nil {
		if kv.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return members, nil
}
