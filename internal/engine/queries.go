package engine

import (
	"context"

	"skillexify/internal/badge"
	"skillexify/internal/endorsement"
	"skillexify/internal/identity"
	"skillexify/internal/kv"
	"skillexify/internal/leaderboard"
	"skillexify/internal/proof"
	"skillexify/internal/registry"
	"skillexify/internal/reputation"
	"skillexify/internal/stats"
	"skillexify/pkg/domainerrors"
)

// Query is the closed set of read-only operations. Queries never write; the
// batch is used purely as a read view.
type Query interface{ isQuery() }

type UserProofsQuery struct {
	User     string
	Platform string // optional filter
}

type ProofQuery struct {
	ProofID string
}

type ReputationQuery struct {
	User string
}

type EndorsementsQuery struct {
	User  string
	Skill string // optional filter
}

type BadgesQuery struct {
	User string
}

type LeaderboardQuery struct {
	Platform string  // empty selects the global list
	Limit    *uint32 // nil means the default
}

type PlatformStatsQuery struct {
	Platform string
}

type ConfigQuery struct{}

func (UserProofsQuery) isQuery()    {}
func (ProofQuery) isQuery()         {}
func (ReputationQuery) isQuery()    {}
func (EndorsementsQuery) isQuery()  {}
func (BadgesQuery) isQuery()        {}
func (LeaderboardQuery) isQuery()   {}
func (PlatformStatsQuery) isQuery() {}
func (ConfigQuery) isQuery()        {}

// Query executes a read-only operation and returns a JSON-encodable view.
func (e *Engine) Query(ctx context.Context, q Query) (any, error) {
	b := kv.NewBatch(e.store)
	switch q := q.(type) {
	case UserProofsQuery:
		user, err := identity.Canonicalize(q.User)
		if err != nil {
			return nil, err
		}
		return proof.NewStore(b).ListByUser(ctx, user, q.Platform)
	case ProofQuery:
		p, err := proof.NewStore(b).Find(ctx, q.ProofID)
		if err != nil {
			if kv.IsNotFound(err) {
				return nil, domainerrors.Newf(domainerrors.CodeNotFound, "proof %s not found", q.ProofID)
			}
			return nil, err
		}
		return p, nil
	case ReputationQuery:
		user, err := identity.Canonicalize(q.User)
		if err != nil {
			return nil, err
		}
		rep, err := reputation.NewStore(b).Find(ctx, user)
		if err != nil {
			if kv.IsNotFound(err) {
				return nil, domainerrors.Newf(domainerrors.CodeUserNotFound, "no reputation recorded for %s", user)
			}
			return nil, err
		}
		return rep, nil
	case EndorsementsQuery:
		user, err := identity.Canonicalize(q.User)
		if err != nil {
			return nil, err
		}
		return endorsement.NewStore(b).ListByUser(ctx, user, q.Skill)
	case BadgesQuery:
		user, err := identity.Canonicalize(q.User)
		if err != nil {
			return nil, err
		}
		return badge.NewStore(b).ListByOwner(ctx, user)
	case LeaderboardQuery:
		return e.queryLeaderboard(ctx, b, q)
	case PlatformStatsQuery:
		ps, err := stats.NewStore(b).Find(ctx, q.Platform)
		if err != nil {
			if kv.IsNotFound(err) {
				return nil, domainerrors.Newf(domainerrors.CodeNotFound, "no stats for platform %s", q.Platform)
			}
			return nil, err
		}
		return ps, nil
	case ConfigQuery:
		cfg, err := registry.NewStore(b).Load(ctx)
		if err != nil {
			if kv.IsNotFound(err) {
				return nil, domainerrors.New(domainerrors.CodeNotFound, "engine not initialized")
			}
			return nil, err
		}
		return cfg, nil
	default:
		return nil, domainerrors.Newf(domainerrors.CodeBadRequest, "unknown query %T", q)
	}
}

// queryLeaderboard builds the ranked view: take the first limit members in
// insertion order, attach their reputations, then sort by score. The
// truncate-before-sort order is part of the recorded contract; see
// leaderboard.Rank.
func (e *Engine) queryLeaderboard(ctx context.Context, b *kv.Batch, q LeaderboardQuery) ([]leaderboard.Entry, error) {
	limit := leaderboard.ClampLimit(q.Limit)
	members, err := leaderboard.NewStore(b).Members(ctx, q.Platform)
	if err != nil {
		return nil, err
	}
	if len(members) > limit {
		members = members[:limit]
	}

	reps := reputation.NewStore(b)
	entries := make([]leaderboard.Entry, 0, len(members))
	for i, user := range members {
		rep, err := reps.Find(ctx, user)
		if err != nil {
			if kv.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		entries = append(entries, leaderboard.Entry{
			User:            user,
			Score:           rep.Score,
			Rank:            uint32(i + 1),
			PrimaryPlatform: rep.PrimaryPlatform(),
			TotalProofs:     rep.TotalProofs,
		})
	}
	return leaderboard.Rank(entries), nil
}
