// Package engine executes the proof-engine command and query surfaces. Every
// mutating command runs against a fresh batch over the key-value store and
// commits as one atomic unit; any validation failure discards the batch so no
// partial state is ever observable.
package engine

import (
	"context"
	"log/slog"
	"time"

	"skillexify/internal/audit"
	"skillexify/internal/badge"
	"skillexify/internal/endorsement"
	"skillexify/internal/identity"
	"skillexify/internal/kv"
	"skillexify/internal/leaderboard"
	"skillexify/internal/platform/metrics"
	"skillexify/internal/proof"
	"skillexify/internal/registry"
	"skillexify/internal/reputation"
	"skillexify/internal/stats"
	"skillexify/pkg/domainerrors"
)

// Engine owns the command dispatch. The host serializes calls into it; the
// engine itself takes no locks beyond what the store needs.
type Engine struct {
	store   kv.Store
	log     *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Recorder
	now     func() time.Time
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithClock injects a deterministic clock. Ids and timestamps derive from it.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithMetrics attaches Prometheus counters to command execution.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithAudit attaches an audit recorder. Mutating commands emit one event each.
func WithAudit(r *audit.Recorder) Option {
	return func(e *Engine) { e.audit = r }
}

func New(store kv.Store, log *slog.Logger, opts ...Option) *Engine {
	e := &Engine{store: store, log: log, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init installs the singleton config and the empty global leaderboard. The
// deployer becomes admin unless adminOverride names someone else. Re-running
// Init against an initialized store is a no-op returning the live config.
func (e *Engine) Init(ctx context.Context, deployer string, adminOverride string) (registry.Config, error) {
	caller, err := identity.Canonicalize(deployer)
	if err != nil {
		return registry.Config{}, err
	}
	admin := caller
	if adminOverride != "" {
		if admin, err = identity.Canonicalize(adminOverride); err != nil {
			return registry.Config{}, err
		}
	}

	b := kv.NewBatch(e.store)
	reg := registry.NewStore(b)
	exists, err := reg.Exists(ctx)
	if err != nil {
		return registry.Config{}, err
	}
	if exists {
		cfg, err := reg.Load(ctx)
		if err != nil {
			return registry.Config{}, err
		}
		e.log.InfoContext(ctx, "engine already initialized", "admin", cfg.Admin)
		return cfg, nil
	}

	cfg := registry.Config{
		Admin:              admin,
		SupportedPlatforms: append([]string(nil), registry.DefaultPlatforms...),
	}
	if err := reg.Save(cfg); err != nil {
		return registry.Config{}, err
	}
	if err := leaderboard.NewStore(b).InitGlobal(); err != nil {
		return registry.Config{}, err
	}
	if err := b.Commit(ctx); err != nil {
		return registry.Config{}, err
	}

	e.emit(ctx, audit.Event{Action: "instantiate", Actor: string(caller), Subject: string(admin)})
	e.log.InfoContext(ctx, "engine initialized", "admin", admin)
	return cfg, nil
}

// Execute runs one mutating command for caller and commits its writes
// atomically. The returned Result carries the ids and deltas the operation
// produced.
func (e *Engine) Execute(ctx context.Context, caller string, cmd Command) (Result, error) {
	actor, err := identity.Canonicalize(caller)
	if err != nil {
		return nil, err
	}

	start := e.now()
	b := kv.NewBatch(e.store)

	var res Result
	switch cmd := cmd.(type) {
	case SubmitProof:
		res, err = e.submitProof(ctx, b, actor, cmd)
	case AdjustReputation:
		res, err = e.adjustReputation(ctx, b, actor, cmd)
	case AddEndorsement:
		res, err = e.addEndorsement(ctx, b, actor, cmd)
	case MintBadge:
		res, err = e.mintBadge(ctx, b, actor, cmd)
	case UpdateAdmin:
		res, err = e.updateAdmin(ctx, b, actor, cmd)
	default:
		return nil, domainerrors.Newf(domainerrors.CodeBadRequest, "unknown command %T", cmd)
	}
	if err != nil {
		e.metrics.ObserveCommand(commandName(cmd), "error", time.Since(start))
		return nil, err
	}
	if err := b.Commit(ctx); err != nil {
		e.metrics.ObserveCommand(commandName(cmd), "error", time.Since(start))
		return nil, domainerrors.Wrap(domainerrors.CodeInternal, "commit failed", err)
	}
	e.metrics.ObserveCommand(commandName(cmd), "ok", time.Since(start))
	e.auditResult(ctx, actor, cmd, res)
	return res, nil
}

func commandName(cmd Command) string {
	switch cmd.(type) {
	case SubmitProof:
		return "submit_proof"
	case AdjustReputation:
		return "adjust_reputation"
	case AddEndorsement:
		return "add_endorsement"
	case MintBadge:
		return "mint_badge"
	case UpdateAdmin:
		return "update_admin"
	default:
		return "unknown"
	}
}

func (e *Engine) submitProof(ctx context.Context, b *kv.Batch, submitter identity.Address, cmd SubmitProof) (Result, error) {
	reg := registry.NewStore(b)
	cfg, err := e.loadConfig(ctx, reg)
	if err != nil {
		return nil, err
	}
	if !cfg.Supports(cmd.Platform) {
		return nil, domainerrors.Newf(domainerrors.CodeUnsupportedPlatform,
			"platform %s is not supported", cmd.Platform)
	}
	if err := proof.ValidateSubmission(cmd.Username, cmd.SkillData, cmd.ProofHash); err != nil {
		return nil, err
	}

	now := e.now()
	p := proof.SkillProof{
		ID:        proof.ID(submitter, cmd.Platform, now),
		User:      submitter,
		Platform:  cmd.Platform,
		Username:  cmd.Username,
		SkillData: cmd.SkillData,
		ProofHash: cmd.ProofHash,
		Timestamp: now.Unix(),
		Verified:  true,
		Metadata:  cmd.Metadata,
	}

	proofs := proof.NewStore(b)
	if err := proofs.Save(p); err != nil {
		return nil, err
	}
	if err := proofs.AppendIndex(ctx, submitter, p.ID); err != nil {
		return nil, err
	}

	reps := reputation.NewStore(b)
	rep, err := reps.FindOrNew(ctx, submitter, now)
	if err != nil {
		return nil, err
	}
	gained := rep.ApplyProof(cmd.Platform, now)
	if err := reps.Save(rep); err != nil {
		return nil, err
	}

	statsStore := stats.NewStore(b)
	ps, err := statsStore.FindOrNew(ctx, cmd.Platform)
	if err != nil {
		return nil, err
	}
	ps.RecordProof(submitter)
	if err := statsStore.Save(ps); err != nil {
		return nil, err
	}

	cfg.TotalProofs++
	if err := reg.Save(cfg); err != nil {
		return nil, err
	}

	if err := leaderboard.NewStore(b).Track(ctx, cmd.Platform, submitter); err != nil {
		return nil, err
	}

	e.metrics.IncProofsStored(cmd.Platform)
	e.log.InfoContext(ctx, "proof stored",
		"proof_id", p.ID, "user", submitter, "platform", cmd.Platform, "score_gained", gained)
	return ProofStored{ProofID: p.ID, User: submitter, Platform: cmd.Platform, ScoreGained: gained}, nil
}

func (e *Engine) addEndorsement(ctx context.Context, b *kv.Batch, endorser identity.Address, cmd AddEndorsement) (Result, error) {
	endorsee, err := identity.Canonicalize(cmd.Endorsee)
	if err != nil {
		return nil, err
	}
	if endorser == endorsee {
		return nil, domainerrors.New(domainerrors.CodeSelfEndorsement, "cannot endorse yourself")
	}
	if err := endorsement.ValidateWeight(cmd.Weight); err != nil {
		return nil, err
	}

	reps := reputation.NewStore(b)
	endorserRep, err := reps.Find(ctx, endorser)
	if err != nil {
		if kv.IsNotFound(err) {
			// No record counts as insufficient, not as a missing user.
			return nil, domainerrors.Newf(domainerrors.CodeInsufficientReputation,
				"endorser needs a score of at least %d", reputation.MinEndorserScore)
		}
		return nil, err
	}
	if !endorserRep.CanEndorse() {
		return nil, domainerrors.Newf(domainerrors.CodeInsufficientReputation,
			"endorser needs a score of at least %d", reputation.MinEndorserScore)
	}

	now := e.now()
	record := endorsement.Endorsement{
		ID:        endorsement.ID(endorser, endorsee, now),
		Endorser:  endorser,
		Endorsee:  endorsee,
		Skill:     cmd.Skill,
		Message:   cmd.Message,
		Weight:    cmd.Weight,
		Timestamp: now.Unix(),
	}

	endorsements := endorsement.NewStore(b)
	if err := endorsements.Save(record); err != nil {
		return nil, err
	}
	if err := endorsements.AppendIndex(ctx, endorsee, record.ID); err != nil {
		return nil, err
	}

	endorseeRep, err := reps.FindOrNew(ctx, endorsee, now)
	if err != nil {
		return nil, err
	}
	endorseeRep.ApplyEndorsementReceived(cmd.Weight, now)
	endorserRep.ApplyEndorsementGiven(now)
	if err := reps.Save(endorseeRep); err != nil {
		return nil, err
	}
	if err := reps.Save(endorserRep); err != nil {
		return nil, err
	}

	e.metrics.IncEndorsements()
	e.log.InfoContext(ctx, "endorsement added",
		"endorsement_id", record.ID, "endorser", endorser, "endorsee", endorsee,
		"skill", cmd.Skill, "weight", cmd.Weight)
	return EndorsementAdded{
		EndorsementID: record.ID,
		Endorser:      endorser,
		Endorsee:      endorsee,
		Skill:         cmd.Skill,
		Weight:        cmd.Weight,
	}, nil
}

func (e *Engine) mintBadge(ctx context.Context, b *kv.Batch, caller identity.Address, cmd MintBadge) (Result, error) {
	cfg, err := e.loadConfig(ctx, registry.NewStore(b))
	if err != nil {
		return nil, err
	}
	if caller != cfg.Admin {
		return nil, domainerrors.New(domainerrors.CodeUnauthorized, "only the admin can mint badges")
	}
	recipient, err := identity.Canonicalize(cmd.Recipient)
	if err != nil {
		return nil, err
	}
	if err := badge.ValidateLevel(cmd.SkillLevel); err != nil {
		return nil, err
	}
	if !cfg.Supports(cmd.Platform) {
		return nil, domainerrors.Newf(domainerrors.CodeUnsupportedPlatform,
			"platform %s is not supported", cmd.Platform)
	}

	minted := badge.New(recipient, cmd.Platform, cmd.SkillLevel, cmd.TokenURI, e.now())
	badges := badge.NewStore(b)
	if err := badges.Save(minted); err != nil {
		return nil, err
	}
	if err := badges.AppendIndex(ctx, recipient, minted.TokenID); err != nil {
		return nil, err
	}

	e.metrics.IncBadgesMinted()
	e.log.InfoContext(ctx, "badge minted",
		"token_id", minted.TokenID, "owner", recipient, "platform", cmd.Platform, "level", cmd.SkillLevel)
	return BadgeMinted{
		TokenID:    minted.TokenID,
		Owner:      recipient,
		Platform:   cmd.Platform,
		SkillLevel: cmd.SkillLevel,
	}, nil
}

func (e *Engine) adjustReputation(ctx context.Context, b *kv.Batch, caller identity.Address, cmd AdjustReputation) (Result, error) {
	cfg, err := e.loadConfig(ctx, registry.NewStore(b))
	if err != nil {
		return nil, err
	}
	if caller != cfg.Admin {
		return nil, domainerrors.New(domainerrors.CodeUnauthorized, "only the admin can adjust reputation")
	}
	user, err := identity.Canonicalize(cmd.User)
	if err != nil {
		return nil, err
	}

	reps := reputation.NewStore(b)
	rep, err := reps.Find(ctx, user)
	if err != nil {
		if kv.IsNotFound(err) {
			return nil, domainerrors.Newf(domainerrors.CodeUserNotFound, "user %s not found", user)
		}
		return nil, err
	}
	rep.ApplyAdjustment(cmd.ScoreDelta, e.now())
	if err := reps.Save(rep); err != nil {
		return nil, err
	}

	e.log.InfoContext(ctx, "reputation adjusted",
		"user", user, "score_delta", cmd.ScoreDelta, "new_score", rep.Score, "reason", cmd.Reason)
	return ReputationAdjusted{User: user, ScoreDelta: cmd.ScoreDelta, NewScore: rep.Score}, nil
}

func (e *Engine) updateAdmin(ctx context.Context, b *kv.Batch, caller identity.Address, cmd UpdateAdmin) (Result, error) {
	reg := registry.NewStore(b)
	cfg, err := e.loadConfig(ctx, reg)
	if err != nil {
		return nil, err
	}
	if caller != cfg.Admin {
		return nil, domainerrors.New(domainerrors.CodeUnauthorized, "only the admin can transfer admin")
	}
	newAdmin, err := identity.Canonicalize(cmd.NewAdmin)
	if err != nil {
		return nil, err
	}
	cfg.Admin = newAdmin
	if err := reg.Save(cfg); err != nil {
		return nil, err
	}

	e.log.InfoContext(ctx, "admin updated", "admin", newAdmin)
	return AdminUpdated{Admin: newAdmin}, nil
}

func (e *Engine) loadConfig(ctx context.Context, reg registry.Store) (registry.Config, error) {
	cfg, err := reg.Load(ctx)
	if err != nil {
		if kv.IsNotFound(err) {
			return registry.Config{}, domainerrors.New(domainerrors.CodeInternal, "engine not initialized")
		}
		return registry.Config{}, err
	}
	return cfg, nil
}

// auditResult emits one audit event per successful command.
func (e *Engine) auditResult(ctx context.Context, actor identity.Address, cmd Command, res Result) {
	event := audit.Event{Action: commandName(cmd), Actor: string(actor)}
	switch r := res.(type) {
	case ProofStored:
		event.Subject = string(r.User)
		event.Detail = r.ProofID
	case ReputationAdjusted:
		event.Subject = string(r.User)
	case EndorsementAdded:
		event.Subject = string(r.Endorsee)
		event.Detail = r.EndorsementID
	case BadgeMinted:
		event.Subject = string(r.Owner)
		event.Detail = r.TokenID
	case AdminUpdated:
		event.Subject = string(r.Admin)
	}
	if adj, ok := cmd.(AdjustReputation); ok {
		event.Reason = adj.Reason
	}
	e.emit(ctx, event)
}

func (e *Engine) emit(ctx context.Context, event audit.Event) {
	if e.audit == nil {
		return
	}
	e.audit.Emit(ctx, event)
}
