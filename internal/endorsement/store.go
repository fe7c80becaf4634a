package endorsement

import (
	"context"

	"skillexify/internal/identity"
	"skillexify/internal/kv"
)

const (
	endorsementKeyPrefix = "endorsement:"
	indexKeyPrefix       = "idx:endorsements:"
)

// Store gives typed access to endorsement records and the per-endorsee index.
type Store struct {
	b *kv.Batch
}

func NewStore(b *kv.Batch) Store {
	return Store{b: b}
}

func (s Store) Save(e Endorsement) error {
	return s.b.SetJSON(endorsementKeyPrefix+e.ID, e)
}

func (s Store) Find(ctx context.Context, id string) (Endorsement, error) {
	var e Endorsement
	if err := s.b.GetJSON(ctx, endorsementKeyPrefix+id, &e); err != nil {
		return Endorsement{}, err
	}
	return e, nil
}

// AppendIndex adds id to the endorsee's index. The endorser side is not
// indexed; only received endorsements are listable.
func (s Store) AppendIndex(ctx context.Context, endorsee identity.Address, id string) error {
	ids, err := s.index(ctx, endorsee)
	if err != nil {
		return err
	}
	return s.b.SetJSON(indexKeyPrefix+string(endorsee), append(ids, id))
}

// ListByUser resolves the endorsements received by user, optionally filtered
// by skill. Missing referenced records are skipped.
func (s Store) ListByUser(ctx context.Context, user identity.Address, skill string) ([]Endorsement, error) {
	ids, err := s.index(ctx, user)
	if err != nil {
		return nil, err
	}
	out := make([]Endorsement, 0, len(ids))
	for _, id := range ids {
		e, err := s.Find(ctx, id)
		if err != nil {
			if kv.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		if skill == "" || e.Skill == skill {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s Store) index(ctx context.Context, user identity.Address) ([]string, error) {
	var ids []string
	if err := s.b.GetJSON(ctx, indexKeyPrefix+string(user), &ids); err != nil {
		if kv.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return ids, nil
}
