// Package badge mints NFT-like skill badges gated by administrative
// authority. Re-minting an (owner, platform, level) triple replaces the badge
// record in place, but every mint appends to the owner's index, so the index
// may reference the same token id more than once.
package badge

import (
	"fmt"
	"time"

	"skillexify/internal/identity"
	"skillexify/pkg/domainerrors"
)

// Skill level tiers.
const (
	MinSkillLevel = 1
	MaxSkillLevel = 4
)

// SkillBadge is one achievement record.
type SkillBadge struct {
	TokenID     string           `json:"token_id"`
	Owner       identity.Address `json:"owner"`
	Platform    string           `json:"platform"`
	SkillLevel  uint32           `json:"skill_level"`
	TokenURI    string           `json:"token_uri"`
	CreatedAt   int64            `json:"created_at"`
	LastUpdated int64            `json:"last_updated"`
	// ProofCount is initialized to 1 on every mint and never recomputed from
	// the proof ledger.
	ProofCount uint32 `json:"proof_count"`
}

// TokenID derives the deterministic badge id.
func TokenID(owner identity.Address, platform string, level uint32) string {
	return fmt.Sprintf("%s:%s:%d", owner, platform, level)
}

// ValidateLevel rejects levels outside [MinSkillLevel, MaxSkillLevel].
func ValidateLevel(level uint32) error {
	if level < MinSkillLevel || level > MaxSkillLevel {
		return domainerrors.Newf(domainerrors.CodeInvalidSkillLevel,
			"skill level %d must be between %d and %d", level, MinSkillLevel, MaxSkillLevel)
	}
	return nil
}

// New builds a freshly minted badge.
func New(owner identity.Address, platform string, level uint32, tokenURI string, now time.Time) SkillBadge {
	ts := now.Unix()
	return SkillBadge{
		TokenID:     TokenID(owner, platform, level),
		Owner:       owner,
		Platform:    platform,
		SkillLevel:  level,
		TokenURI:    tokenURI,
		CreatedAt:   ts,
		LastUpdated: ts,
		ProofCount:  1,
	}
}
