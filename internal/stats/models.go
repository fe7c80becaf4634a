// Package stats maintains per-platform aggregate counters, updated on every
// accepted proof.
package stats

import (
	"slices"

	"skillexify/internal/identity"
)

// PlatformStats aggregates activity for one platform. TopUsers is a
// dedup-by-presence membership list in first-seen order, and TotalUsers always
// equals its length.
//
// AverageScore is declared for API compatibility but not maintained by any
// operation; it stays zero until a recomputation policy is commissioned.
type PlatformStats struct {
	Platform     string             `json:"platform"`
	TotalUsers   uint32             `json:"total_users"`
	TotalProofs  uint32             `json:"total_proofs"`
	AverageScore float64            `json:"average_score"`
	TopUsers     []identity.Address `json:"top_users"`
}

// New returns the lazily-created zero record for a platform.
func New(platform string) PlatformStats {
	return PlatformStats{Platform: platform}
}

// RecordProof counts one accepted proof, registering the submitter on first
// contact with the platform.
func (s *PlatformStats) RecordProof(submitter identity.Address) {
	s.TotalProofs++
	if !slices.Contains(s.TopUsers, submitter) {
		s.TopUsers = append(s.TopUsers, submitter)
		s.TotalUsers++
	}
}
