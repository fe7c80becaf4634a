// Package leaderboard maintains membership lists in first-seen order, one per
// platform plus one global, and computes ranked views on demand. Score order
// is never stored.
package leaderboard

import (
	"sort"

	"skillexify/internal/identity"
)

// Limit bounds for ranked views.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Entry is one row of a ranked view.
type Entry struct {
	User            identity.Address `json:"user"`
	Score           int64            `json:"score"`
	Rank            uint32           `json:"rank"`
	PrimaryPlatform string           `json:"primary_platform"`
	TotalProofs     uint32           `json:"total_proofs"`
}

// ClampLimit applies the default and the hard cap. A limit of 0 is honored
// as-is and yields an empty view.
func ClampLimit(limit *uint32) int {
	l := uint32(DefaultLimit)
	if limit != nil {
		l = *limit
	}
	if l > MaxLimit {
		l = MaxLimit
	}
	return int(l)
}

// Rank sorts entries by score descending and re-assigns ranks 1..N. Ties
// break by ascending address so the view is deterministic.
//
// Callers pass entries already truncated to the first limit members in
// insertion order; when membership exceeds the limit the view is therefore
// not the true top-N by score, only a correct ordering of the members that
// were captured. This matches the recorded contract behavior and must not be
// "fixed" silently.
func Rank(entries []Entry) []Entry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].User < entries[j].User
	})
	for i := range entries {
		entries[i].Rank = uint32(i + 1)
	}
	return entries
}
