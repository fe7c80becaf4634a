package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// TokenValidator validates a bearer token and returns the caller address it
// carries.
type TokenValidator interface {
	Validate(tokenString string) (address string, err error)
}

type contextKeyAddress struct{}

// ContextKeyAddress is exported for use in handlers.
var ContextKeyAddress = contextKeyAddress{}

// GetAddress retrieves the authenticated caller address from the context.
func GetAddress(ctx context.Context) string {
	address, ok := ctx.Value(ContextKeyAddress).(string)
	if !ok {
		return ""
	}
	return address
}

// RequireAuth rejects requests without a valid bearer token and injects the
// caller address into the request context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx))
				unauthorized(w, "Missing bearer token")
				return
			}

			address, err := validator.Validate(tokenString)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err, "request_id", GetRequestID(ctx))
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx = context.WithValue(ctx, ContextKeyAddress, address)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
