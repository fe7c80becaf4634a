package proof

import (
	"context"

	"skillexify/internal/identity"
	"skillexify/internal/kv"
)

const (
	proofKeyPrefix = "proof:"
	indexKeyPrefix = "idx:proofs:"
)

// Store gives typed access to proof records and the per-user proof index
// through an operation's batch.
type Store struct {
	b *kv.Batch
}

func NewStore(b *kv.Batch) Store {
	return Store{b: b}
}

func (s Store) Save(p SkillProof) error {
	return s.b.SetJSON(proofKeyPrefix+p.ID, p)
}

func (s Store) Find(ctx context.Context, id string) (SkillProof, error) {
	var p SkillProof
	if err := s.b.GetJSON(ctx, proofKeyPrefix+id, &p); err != nil {
		return SkillProof{}, err
	}
	return p, nil
}

// AppendIndex adds id to user's proof index, creating the index on first use.
func (s Store) AppendIndex(ctx context.Context, user identity.Address, id string) error {
	ids, err := s.index(ctx, user)
	if err != nil {
		return err
	}
	return s.b.SetJSON(indexKeyPrefix+string(user), append(ids, id))
}

// ListByUser resolves every proof referenced by user's index, optionally
// filtered to one platform. Ids whose record is missing are skipped rather
// than surfaced; the index may reference data this engine cannot load.
func (s Store) ListByUser(ctx context.Context, user identity.Address, platform string) ([]SkillProof, error) {
	ids, err := s.index(ctx, user)
	if err != nil {
		return nil, err
	}
	proofs := make([]SkillProof, 0, len(ids))
	for _, id := range ids {
		p, err := s.Find(ctx, id)
		if err != nil {
			if kv.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		if platform == "" || p.Platform == platform {
			proofs = append(proofs, p)
		}
	}
	return proofs, nil
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
