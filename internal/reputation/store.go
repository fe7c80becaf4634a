package reputation

import (
	"context"
	"time"

	"skillexify/internal/identity"
	"skillexify/internal/kv"
)

const repKeyPrefix = "rep:"

// Store gives typed access to reputation records through an operation's batch.
type Store struct {
	b *kv.Batch
}

func NewStore(b *kv.Batch) Store {
	return Store{b: b}
}

// Find returns the user's reputation, or sentinel.ErrNotFound when the user
// has no history.
func (s Store) Find(ctx context.Context, user identity.Address) (UserReputation, error) {
	var rep UserReputation
	if err := s.b.GetJSON(ctx, repKeyPrefix+string(user), &rep); err != nil {
		return UserReputation{}, err
	}
	return rep, nil
}

// FindOrNew loads the user's reputation or returns the unpersisted zero-value
// template for first-time users.
func (s Store) FindOrNew(ctx context.Context, user identity.Address, now time.Time) (UserReputation, error) {
	rep, err := s.Find(ctx, user)
	if err != nil {
		if kv.IsNotFound(err) {
			return New(user, now), nil
		}
		return UserReputation{}, err
	}
	return rep, nil
}

func (s Store) Save(rep UserReputation) error {
	return s.b.SetJSON(repKeyPrefix+string(rep.User), rep)
}
