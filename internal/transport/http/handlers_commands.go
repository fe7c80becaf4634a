package httptransport

import (
	"encoding/json"
	"net/http"

	"skillexify/internal/engine"
	"skillexify/internal/platform/middleware"
	"skillexify/pkg/domainerrors"
)

// caller extracts the authenticated address set by RequireAuth.
func (h *Handler) caller(r *http.Request) (string, bool) {
	address := middleware.GetAddress(r.Context())
	return address, address != ""
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, cmd engine.Command) {
	ctx := r.Context()
	caller, ok := h.caller(r)
	if !ok {
		// RequireAuth guarantees an address; reaching here is a wiring bug.
		h.log.ErrorContext(ctx, "caller address missing from context",
			"request_id", middleware.GetRequestID(ctx))
		writeError(w, domainerrors.New(domainerrors.CodeInternal, "authentication context error"))
		return
	}

	res, err := h.engine.Execute(ctx, caller, cmd)
	if err != nil {
		h.log.WarnContext(ctx, "command rejected",
			"error", err.Error(), "request_id", middleware.GetRequestID(ctx))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleSubmitProof(w http.ResponseWriter, r *http.Request) {
	var req submitProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.execute(w, r, engine.SubmitProof{
		Platform:  req.Platform,
		Username:  req.Username,
		SkillData: req.SkillData,
		ProofHash: req.ProofHash,
		Metadata:  req.Metadata,
	})
}

func (h *Handler) handleAddEndorsement(w http.ResponseWriter, r *http.Request) {
	var req addEndorsementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.execute(w, r, engine.AddEndorsement{
		Endorsee: req.Endorsee,
		Skill:    req.Skill,
		Message:  req.Message,
		Weight:   req.Weight,
	})
}

func (h *Handler) handleMintBadge(w http.ResponseWriter, r *http.Request) {
	var req mintBadgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.execute(w, r, engine.MintBadge{
		Recipient:  req.Recipient,
		Platform:   req.Platform,
		SkillLevel: req.SkillLevel,
		TokenURI:   req.TokenURI,
	})
}

func (h *Handler) handleAdjustReputation(w http.ResponseWriter, r *http.Request) {
	var req adjustReputationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.execute(w, r, engine.AdjustReputation{
		User:       req.User,
		ScoreDelta: req.ScoreDelta,
		Reason:     req.Reason,
	})
}

func (h *Handler) handleUpdateAdmin(w http.ResponseWriter, r *http.Request) {
	var req updateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.execute(w, r, engine.UpdateAdmin{NewAdmin: req.NewAdmin})
}
