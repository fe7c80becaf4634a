// Package registry holds the engine's singleton configuration: the
// administrative identity, global counters, and the supported-platform
// allowlist consulted by proof submission and badge minting.
package registry

import (
	"slices"

	"skillexify/internal/identity"
)

// DefaultPlatforms is the fixed allowlist installed at initialization.
var DefaultPlatforms = []string{"LeetCode", "GitHub", "Kaggle", "HackerRank", "Stack Overflow"}

// Config is the singleton engine configuration. It is replaced wholesale on
// every mutation, never partially updated.
type Config struct {
	Admin              identity.Address `json:"admin"`
	TotalProofs        uint32           `json:"total_proofs"`
	TotalUsers         uint32           `json:"total_users"`
	SupportedPlatforms []string         `json:"supported_platforms"`
}

// Supports reports whether platform is on the allowlist.
func (c Config) Supports(platform string) bool {
	return slices.Contains(c.SupportedPlatforms, platform)
}
