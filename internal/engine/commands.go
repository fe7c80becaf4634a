package engine

import "skillexify/internal/identity"

// Command is the closed set of mutating operations. Execute dispatches over
// it exhaustively; adding a case here means adding a branch there.
type Command interface{ isCommand() }

// SubmitProof records one externally verified skill proof for the caller.
type SubmitProof struct {
	Platform  string
	Username  string
	SkillData string
	ProofHash string
	Metadata  string
}

// AdjustReputation applies an unbounded admin score delta to a user. Reason
// travels to the audit trail only, never onto the record.
type AdjustReputation struct {
	User       string
	ScoreDelta int64
	Reason     string
}

// AddEndorsement records a weighted peer attestation from the caller.
type AddEndorsement struct {
	Endorsee string
	Skill    string
	Message  string
	Weight   uint32
}

// MintBadge mints or re-mints a skill badge. Admin only.
type MintBadge struct {
	Recipient  string
	Platform   string
	SkillLevel uint32
	TokenURI   string
}

// UpdateAdmin hands the administrative identity to a new address.
type UpdateAdmin struct {
	NewAdmin string
}

func (SubmitProof) isCommand()      {}
func (AdjustReputation) isCommand() {}
func (AddEndorsement) isCommand()   {}
func (MintBadge) isCommand()        {}
func (UpdateAdmin) isCommand()      {}

// Result is the closed set of command outcomes. Each carries the identifiers
// and deltas a caller needs for observability.
type Result interface{ isResult() }

type ProofStored struct {
	ProofID     string           `json:"proof_id"`
	User        identity.Address `json:"user"`
	Platform    string           `json:"platform"`
	ScoreGained int64            `json:"score_gained"`
}

type ReputationAdjusted struct {
	User       identity.Address `json:"user"`
	ScoreDelta int64            `json:"score_delta"`
	NewScore   int64            `json:"new_score"`
}

type EndorsementAdded struct {
	EndorsementID string           `json:"endorsement_id"`
	Endorser      identity.Address `json:"endorser"`
	Endorsee      identity.Address `json:"endorsee"`
	Skill         string           `json:"skill"`
	Weight        uint32           `json:"weight"`
}

type BadgeMinted struct {
	TokenID    string           `json:"token_id"`
	Owner      identity.Address `json:"owner"`
	Platform   string           `json:"platform"`
	SkillLevel uint32           `json:"skill_level"`
}

type AdminUpdated struct {
	Admin identity.Address `json:"admin"`
}

func (ProofStored) isResult()        {}
func (ReputationAdjusted) isResult() {}
func (EndorsementAdded) isResult()   {}
func (BadgeMinted) isResult()        {}
func (AdminUpdated) isResult()       {}
