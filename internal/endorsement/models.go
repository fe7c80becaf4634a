// Package endorsement records weighted peer attestations. Endorsements are
// unlimited in count, never expire, and cannot be revoked.
package endorsement

import (
	"fmt"
	"time"

	"skillexify/internal/identity"
	"skillexify/pkg/domainerrors"
)

// Weight bounds for a single endorsement.
const (
	MinWeight = 1
	MaxWeight = 100
)

// Endorsement is one peer attestation. Immutable after creation; referenced
// only by the endorsee's index.
type Endorsement struct {
	ID        string           `json:"id"`
	Endorser  identity.Address `json:"endorser"`
	Endorsee  identity.Address `json:"endorsee"`
	Skill     string           `json:"skill"`
	Message   string           `json:"message"`
	Weight    uint32           `json:"weight"`
	Timestamp int64            `json:"timestamp"`
}

// ID derives the deterministic endorsement id.
func ID(endorser, endorsee identity.Address, at time.Time) string {
	return fmt.Sprintf("%s:%s:%d", endorser, endorsee, at.Unix())
}

// ValidateWeight rejects weights outside [MinWeight, MaxWeight].
func ValidateWeight(weight uint32) error {
	if weight < MinWeight || weight > MaxWeight {
		return domainerrors.Newf(domainerrors.CodeInvalidEndorsementWeight,
			"weight %d must be between %d and %d", weight, MinWeight, MaxWeight)
	}
	return nil
}
