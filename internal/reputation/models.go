// Package reputation derives a per-user score from proof submissions, peer
// endorsements, and administrative adjustments. Scoring is flat and additive;
// given the same event history it always produces the same score.
package reputation

import (
	"slices"
	"time"

	"skillexify/internal/identity"
)

// Scoring constants. Deltas are applied in a fixed order per event so replays
// are deterministic.
const (
	ProofBaseScore   = 10 // every accepted proof
	NewPlatformBonus = 25 // first proof on a platform the user has not proved on
	EndorserBonus    = 5  // flat credit for giving an endorsement
	MinEndorserScore = 50 // gate for giving endorsements
)

// UserReputation is the per-user score accumulator. Score may go negative
// (admin adjustments are unbounded); all counters only ever grow.
type UserReputation struct {
	User                 identity.Address `json:"user"`
	Score                int64            `json:"score"`
	TotalProofs          uint32           `json:"total_proofs"`
	EndorsementsReceived uint32           `json:"endorsements_received"`
	EndorsementsGiven    uint32           `json:"endorsements_given"`
	LastUpdated          int64            `json:"last_updated"`
	Platforms            []string         `json:"platforms"`
}

// New returns the zero-value template for a user with no history. It is only
// persisted once a score-affecting event mutates it.
func New(user identity.Address, now time.Time) UserReputation {
	return UserReputation{User: user, LastUpdated: now.Unix()}
}

// ApplyProof credits an accepted proof and returns the score delta applied:
// the base credit, plus the new-platform bonus when platform joins the set.
func (r *UserReputation) ApplyProof(platform string, now time.Time) int64 {
	delta := int64(ProofBaseScore)
	r.TotalProofs++
	if !slices.Contains(r.Platforms, platform) {
		r.Platforms = append(r.Platforms, platform)
		delta += NewPlatformBonus
	}
	r.Score += delta
	r.LastUpdated = now.Unix()
	return delta
}

// ApplyEndorsementReceived credits the endorsee with the endorsement weight.
func (r *UserReputation) ApplyEndorsementReceived(weight uint32, now time.Time) {
	r.EndorsementsReceived++
	r.Score += int64(weight)
	r.LastUpdated = now.Unix()
}

// ApplyEndorsementGiven credits the endorser's flat bonus.
func (r *UserReputation) ApplyEndorsementGiven(now time.Time) {
	r.EndorsementsGiven++
	r.Score += EndorserBonus
	r.LastUpdated = now.Unix()
}

// ApplyAdjustment applies an unbounded admin delta. Counters stay untouched.
func (r *UserReputation) ApplyAdjustment(delta int64, now time.Time) {
	r.Score += delta
	r.LastUpdated = now.Unix()
}

// CanEndorse reports whether the user clears the endorser gate.
func (r UserReputation) CanEndorse() bool {
	return r.Score >= MinEndorserScore
}

// PrimaryPlatform is the first platform the user proved on, or "Unknown".
func (r UserReputation) PrimaryPlatform() string {
	if len(r.Platforms) == 0 {
		return "Unknown"
	}
	return r.Platforms[0]
}
