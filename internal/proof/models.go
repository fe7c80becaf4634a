// Package proof is the ledger of externally verified skill proofs. Proofs are
// written once and never mutated or deleted; a per-user index references them
// by id.
package proof

import (
	"fmt"
	"strings"
	"time"

	"skillexify/internal/identity"
	"skillexify/pkg/domainerrors"
)

// MinProofHashLen is the minimum accepted proof hash length. Hashes shorter
// than a 32-character digest are rejected outright.
const MinProofHashLen = 32

// SkillProof records one verified claim. Verification happens upstream; the
// ledger only stores the already-attested result, hence Verified is always
// true on creation.
type SkillProof struct {
	ID        string           `json:"id"`
	User      identity.Address `json:"user"`
	Platform  string           `json:"platform"`
	Username  string           `json:"username"`
	SkillData string           `json:"skill_data"`
	ProofHash string           `json:"proof_hash"`
	Timestamp int64            `json:"timestamp"`
	Verified  bool             `json:"verified"`
	Metadata  string           `json:"metadata,omitempty"`
}

// ID derives the deterministic proof id. Two submissions by the same user on
// the same platform within one second collide and the later write wins; the
// per-user index then references the surviving record twice.
func ID(user identity.Address, platform string, at time.Time) string {
	return fmt.Sprintf("%s:%s:%d", user, platform, at.Unix())
}

// ValidateSubmission checks the caller-supplied fields. Platform membership
// is checked against the registry by the engine, not here.
func ValidateSubmission(username, skillData, proofHash string) error {
	if strings.TrimSpace(username) == "" {
		return domainerrors.New(domainerrors.CodeEmptyUsername, "username must not be blank")
	}
	if strings.TrimSpace(skillData) == "" {
		return domainerrors.New(domainerrors.CodeInvalidSkillData, "skill data must not be blank")
	}
	if len(proofHash) < MinProofHashLen {
		return domainerrors.Newf(domainerrors.CodeInvalidProofHash,
			"proof hash must be at least %d characters", MinProofHashLen)
	}
	return nil
}
