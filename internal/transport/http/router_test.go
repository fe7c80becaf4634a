package httptransport_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillexify/internal/engine"
	"skillexify/internal/kv"
	"skillexify/internal/token"
	httptransport "skillexify/internal/transport/http"
	"skillexify/pkg/testutil"
)

const (
	adminAddress = "admin"
	userAddress  = "alice"
	validHash    = "abcdefghijklmnopqrstuvwxyz012345"
)

type testServer struct {
	router http.Handler
	tokens *token.Service
	engine *engine.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	at := time.Unix(1_700_000_000, 0)
	eng := engine.New(kv.NewMemory(), log, engine.WithClock(func() time.Time { return at }))
	_, err := eng.Init(context.Background(), adminAddress, "")
	require.NoError(t, err)

	tokens := token.NewService("test-signing-key", "skillexify", "skillexify-api")
	handler := httptransport.NewHandler(eng, tokens, log)
	return &testServer{router: httptransport.NewRouter(handler), tokens: tokens, engine: eng}
}

func (s *testServer) bearer(t *testing.T, address string) string {
	t.Helper()
	tok, err := s.tokens.Generate(address, time.Hour)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	return testutil.DoRequest(s.router, req)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(testutil.NewRequest(t, http.MethodGet, "/healthz"))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "status", "ok")
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		rr := s.do(testutil.NewJSONRequest(t, http.MethodPost, "/proofs", map[string]any{}))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/proofs", map[string]any{})
		rr := s.do(testutil.WithBearer(req, "not-a-jwt"))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other := token.NewService("different-key", "skillexify", "skillexify-api")
		tok, err := other.Generate(userAddress, time.Hour)
		require.NoError(t, err)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/proofs", map[string]any{})
		rr := s.do(testutil.WithBearer(req, tok))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}

func TestSubmitProofEndpoint(t *testing.T) {
	t.Run("success returns the stored proof summary", func(t *testing.T) {
		s := newTestServer(t)
		req := testutil.NewJSONRequest(t, http.MethodPost, "/proofs", map[string]any{
			"platform":   "GitHub",
			"username":   "alice-gh",
			"skill_data": `{"repos":12}`,
			"proof_hash": validHash,
		})
		rr := s.do(testutil.WithBearer(req, s.bearer(t, userAddress)))

		testutil.AssertStatusOK(t, rr)
		res := testutil.UnmarshalResponse[engine.ProofStored](t, rr)
		assert.Equal(t, "alice:GitHub:1700000000", res.ProofID)
		assert.Equal(t, int64(35), res.ScoreGained)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(t)
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/proofs", "{not json")
		rr := s.do(testutil.WithBearer(req, s.bearer(t, userAddress)))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("domain rejection maps to the error envelope", func(t *testing.T) {
		s := newTestServer(t)
		req := testutil.NewJSONRequest(t, http.MethodPost, "/proofs", map[string]any{
			"platform":   "GitHub",
			"username":   "alice-gh",
			"skill_data": `{"repos":12}`,
			"proof_hash": "too-short",
		})
		rr := s.do(testutil.WithBearer(req, s.bearer(t, userAddress)))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_proof_hash")
	})

	t.Run("unsupported platform", func(t *testing.T) {
		s := newTestServer(t)
		req := testutil.NewJSONRequest(t, http.MethodPost, "/proofs", map[string]any{
			"platform":   "MySpace",
			"username":   "u",
			"skill_data": "d",
			"proof_hash": validHash,
		})
		rr := s.do(testutil.WithBearer(req, s.bearer(t, userAddress)))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "unsupported_platform")
	})
}

func TestAdminEndpoints(t *testing.T) {
	t.Run("non-admin mint is forbidden", func(t *testing.T) {
		s := newTestServer(t)
		req := testutil.NewJSONRequest(t, http.MethodPost, "/badges", map[string]any{
			"recipient": userAddress, "platform": "GitHub", "skill_level": 2,
		})
		rr := s.do(testutil.WithBearer(req, s.bearer(t, userAddress)))
		testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "unauthorized")
	})

	t.Run("admin mints a badge", func(t *testing.T) {
		s := newTestServer(t)
		req := testutil.NewJSONRequest(t, http.MethodPost, "/badges", map[string]any{
			"recipient": userAddress, "platform": "GitHub", "skill_level": 2, "token_uri": "ipfs://x",
		})
		rr := s.do(testutil.WithBearer(req, s.bearer(t, adminAddress)))
		testutil.AssertStatusOK(t, rr)
		res := testutil.UnmarshalResponse[engine.BadgeMinted](t, rr)
		assert.Equal(t, "alice:GitHub:2", res.TokenID)
	})

	t.Run("adjust rejects unknown user", func(t *testing.T) {
		s := newTestServer(t)
		req := testutil.NewJSONRequest(t, http.MethodPost, "/reputation/adjust", map[string]any{
			"user": "ghost", "score_delta": 5, "reason": "correction",
		})
		rr := s.do(testutil.WithBearer(req, s.bearer(t, adminAddress)))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "user_not_found")
	})

	t.Run("admin handoff", func(t *testing.T) {
		s := newTestServer(t)
		req := testutil.NewJSONRequest(t, http.MethodPost, "/admin", map[string]any{
			"new_admin": userAddress,
		})
		rr := s.do(testutil.WithBearer(req, s.bearer(t, adminAddress)))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "admin", userAddress)
	})
}

func TestQueryEndpoints(t *testing.T) {
	s := newTestServer(t)

	// Seed one proof through the engine directly.
	_, err := s.engine.Execute(context.Background(), userAddress, engine.SubmitProof{
		Platform:  "GitHub",
		Username:  "alice-gh",
		SkillData: `{"repos":12}`,
		ProofHash: validHash,
	})
	require.NoError(t, err)

	t.Run("config", func(t *testing.T) {
		rr := s.do(testutil.NewRequest(t, http.MethodGet, "/config"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "admin", adminAddress)
	})

	t.Run("proof by id", func(t *testing.T) {
		rr := s.do(testutil.NewRequest(t, http.MethodGet, "/proofs/alice:GitHub:1700000000"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "platform", "GitHub")
	})

	t.Run("missing proof", func(t *testing.T) {
		rr := s.do(testutil.NewRequest(t, http.MethodGet, "/proofs/nope"))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("user proofs with platform filter", func(t *testing.T) {
		rr := s.do(testutil.NewRequest(t, http.MethodGet, "/users/alice/proofs?platform=Kaggle"))
		testutil.AssertStatusOK(t, rr)
		assert.JSONEq(t, "[]", string(testutil.ReadBody(t, rr)))
	})

	t.Run("reputation", func(t *testing.T) {
		rr := s.do(testutil.NewRequest(t, http.MethodGet, "/users/alice/reputation"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "score", float64(35))
	})

	t.Run("reputation for unknown user", func(t *testing.T) {
		rr := s.do(testutil.NewRequest(t, http.MethodGet, "/users/ghost/reputation"))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "user_not_found")
	})

	t.Run("leaderboard", func(t *testing.T) {
		rr := s.do(testutil.NewRequest(t, http.MethodGet, "/leaderboard?limit=10"))
		testutil.AssertStatusOK(t, rr)
		entries := testutil.UnmarshalResponse[[]map[string]any](t, rr)
		require.Len(t, *entries, 1)
		assert.Equal(t, userAddress, (*entries)[0]["user"])
	})

	t.Run("leaderboard rejects a non-numeric limit", func(t *testing.T) {
		rr := s.do(testutil.NewRequest(t, http.MethodGet, "/leaderboard?limit=abc"))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("platform stats", func(t *testing.T) {
		rr := s.do(testutil.NewRequest(t, http.MethodGet, "/platforms/GitHub/stats"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "total_proofs", float64(1))
	})

	t.Run("stats for a platform nobody used", func(t *testing.T) {
		rr := s.do(testutil.NewRequest(t, http.MethodGet, "/platforms/Kaggle/stats"))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})
}
