// Package httptransport is the thin HTTP layer over the engine. Handlers map
// JSON requests onto engine commands and queries without embedding business
// logic, so transport concerns remain isolated.
package httptransport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"skillexify/internal/platform/middleware"
	"skillexify/pkg/domainerrors"
)

// Handler carries the dependencies shared by all endpoints.
type Handler struct {
	log       *slog.Logger
	engine    Engine
	validator middleware.TokenValidator
}

func NewHandler(engine Engine, validator middleware.TokenValidator, log *slog.Logger) *Handler {
	return &Handler{log: log, engine: engine, validator: validator}
}

// NewRouter wires all public endpoints. Mutating routes sit behind bearer
// auth; queries are open.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.log))
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Queries.
	r.Get("/config", h.handleGetConfig)
	r.Get("/proofs/{proofID}", h.handleGetProof)
	r.Get("/users/{user}/proofs", h.handleGetUserProofs)
	r.Get("/users/{user}/reputation", h.handleGetReputation)
	r.Get("/users/{user}/endorsements", h.handleGetEndorsements)
	r.Get("/users/{user}/badges", h.handleGetBadges)
	r.Get("/leaderboard", h.handleGetLeaderboard)
	r.Get("/platforms/{platform}/stats", h.handleGetPlatformStats)

	// Commands.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.log))
		r.Post("/proofs", h.handleSubmitProof)
		r.Post("/endorsements", h.handleAddEndorsement)
		r.Post("/badges", h.handleMintBadge)
		r.Post("/reputation/adjust", h.handleAdjustReputation)
		r.Post("/admin", h.handleUpdateAdmin)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError centralizes domain error translation so every endpoint returns
// the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := domainerrors.CodeOf(err)
	detail := ""
	var de *domainerrors.Error
	if errors.As(err, &de) {
		detail = de.Detail
	}
	writeJSON(w, domainerrors.ToHTTPStatus(code), map[string]string{
		"error":  string(code),
		"detail": detail,
	})
}
