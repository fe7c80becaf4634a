package badge

import (
	"context"

	"skillexify/internal/identity"
	"skillexify/internal/kv"
)

const (
	badgeKeyPrefix = "badge:"
	indexKeyPrefix = "idx:badges:"
)

// Store gives typed access to badge records and the per-owner badge index.
type Store struct {
	b *kv.Batch
}

func NewStore(b *kv.Batch) Store {
	return Store{b: b}
}

func (s Store) Save(badge SkillBadge) error {
	return s.b.SetJSON(badgeKeyPrefix+badge.TokenID, badge)
}

func (s Store) Find(ctx context.Context, tokenID string) (SkillBadge, error) {
	var badge SkillBadge
	if err := s.b.GetJSON(ctx, badgeKeyPrefix+tokenID, &badge); err != nil {
		return SkillBadge{}, err
	}
	return badge, nil
}

// AppendIndex is unconditional: re-minting the same triple appends the token
// id again.
func (s Store) AppendIndex(ctx context.Context, owner identity.Address, tokenID string) error {
	ids, err := s.index(ctx, owner)
	if err != nil {
		return err
	}
	return s.b.SetJSON(indexKeyPrefix+string(owner), append(ids, tokenID))
}

// ListByOwner resolves every index entry, skipping ids whose record is
// missing. Duplicate index entries yield duplicate results.
func (s Store) ListByOwner(ctx context.Context, owner identity.Address) ([]SkillBadge, error) {
	ids, err := s.index(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]SkillBadge, 0, len(ids))
	for _, id := range ids {
		badge, err := s.Find(ctx, id)
		if err != nil {
			if kv.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		out = append(out, badge)
	}
	return out, nil
}

func (s Store) index(ctx context.Context, owner identity.Address) ([]string, error) {
	var ids []string
	if err := s.b.GetJSON(ctx, indexKeyPrefix+string(owner), &ids); err != nil {
		if kv.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return ids, nil
}
