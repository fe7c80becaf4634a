package httptransport

import (
	"context"

	"skillexify/internal/engine"
)

// Engine is the surface this transport depends on; the concrete engine
// satisfies it and tests can substitute fakes.
type Engine interface {
	Execute(ctx context.Context, caller string, cmd engine.Command) (engine.Result, error)
	Query(ctx context.Context, q engine.Query) (any, error)
}

type submitProofRequest struct {
	Platform  string `json:"platform"`
	Username  string `json:"username"`
	SkillData string `json:"skill_data"`
	ProofHash string `json:"proof_hash"`
	Metadata  string `json:"metadata,omitempty"`
}

type addEndorsementRequest struct {
	Endorsee string `json:"endorsee"`
	Skill    string `json:"skill"`
	Message  string `json:"message"`
	Weight   uint32 `json:"weight"`
}

type mintBadgeRequest struct {
	Recipient  string `json:"recipient"`
	Platform   string `json:"platform"`
	SkillLevel uint32 `json:"skill_level"`
	TokenURI   string `json:"token_uri"`
}

type adjustReputationRequest struct {
	User       string `json:"user"`
	ScoreDelta int64  `json:"score_delta"`
	Reason     string `json:"reason"`
}

type updateAdminRequest struct {
	NewAdmin string `json:"new_admin"`
}
