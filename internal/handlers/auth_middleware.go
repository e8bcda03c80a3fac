package handlers

import (
	"context"
	"net/http"

	"github.com/domlearn/backend/internal/auth"
	"go.uber.org/zap"
)

// Authorizer checks the admin capability token presented with a request
type Authorizer interface {
	// Method Authorize returns an Unauthorized error unless the token is a valid capability.
	Authorize(ctx context.Context, token string) error
}

// AdminAuthMiddleware rejects requests without a valid admin capability
// before their bodies are read.
func AdminAuthMiddleware(authorizer Authorizer, logger *zap.Logger) func(http.Handler) http.Handler {
	h := &BaseHandler{Logger: logger}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := authorizer.Authorize(r.Context(), auth.TokenFromRequest(r)); err != nil {
				h.RespondAppError(w, r, "authorize admin request", err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
