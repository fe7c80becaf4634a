package testutil

import (
	"context"
	"net/http"

	"skillexify/internal/platform/middleware"
)

// WithAddress injects an authenticated caller address into the request
// context, simulating what the auth middleware does for a valid token.
func WithAddress(req *http.Request, address string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ContextKeyAddress, address)
	return req.WithContext(ctx)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
