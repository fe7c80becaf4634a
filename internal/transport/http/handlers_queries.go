package httptransport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skillexify/internal/engine"
	"skillexify/pkg/domainerrors"
)

func (h *Handler) query(w http.ResponseWriter, r *http.Request, q engine.Query) {
	res, err := h.engine.Query(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	h.query(w, r, engine.ConfigQuery{})
}

func (h *Handler) handleGetProof(w http.ResponseWriter, r *http.Request) {
	h.query(w, r, engine.ProofQuery{ProofID: chi.URLParam(r, "proofID")})
}

func (h *Handler) handleGetUserProofs(w http.ResponseWriter, r *http.Request) {
	h.query(w, r, engine.UserProofsQuery{
		User:     chi.URLParam(r, "user"),
		Platform: r.URL.Query().Get("platform"),
	})
}

func (h *Handler) handleGetReputation(w http.ResponseWriter, r *http.Request) {
	h.query(w, r, engine.ReputationQuery{User: chi.URLParam(r, "user")})
}

func (h *Handler) handleGetEndorsements(w http.ResponseWriter, r *http.Request) {
	h.query(w, r, engine.EndorsementsQuery{
		User:  chi.URLParam(r, "user"),
		Skill: r.URL.Query().Get("skill"),
	})
}

func (h *Handler) handleGetBadges(w http.ResponseWriter, r *http.Request) {
	h.query(w, r, engine.BadgesQuery{User: chi.URLParam(r, "user")})
}

func (h *Handler) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := engine.LeaderboardQuery{Platform: r.URL.Query().Get("platform")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			writeError(w, domainerrors.New(domainerrors.CodeBadRequest, "limit must be a non-negative integer"))
			return
		}
		limit := uint32(parsed)
		q.Limit = &limit
	}
	h.query(w, r, q)
}

func (h *Handler) handleGetPlatformStats(w http.ResponseWriter, r *http.Request) {
	h.query(w, r, engine.PlatformStatsQuery{Platform: chi.URLParam(r, "platform")})
}
