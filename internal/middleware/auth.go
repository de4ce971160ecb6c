package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/bryanwahyu/blindspot-radar/internal/domain/identity"
	"github.com/bryanwahyu/blindspot-radar/internal/logging"
)

type contextKey string

const TokenKey contextKey = "token"

// BearerToken supports both "Bearer <token>" and "<token>" formats
func BearerToken(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		auth = auth[7:]
	}
	return strings.TrimSpace(auth)
}

// Authenticate resolves the bearer token through the provider and stores
// the user (and token) in the request context
func Authenticate(p identity.AuthProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing Authorization header")
				return
			}

			u, err := p.CurrentUser(r.Context(), token)
			if err != nil {
				if !errors.Is(err, identity.ErrUnauthenticated) {
					logging.FromContext(r.Context()).Warn("auth lookup failed", zap.Error(err))
				}
				writeError(w, http.StatusUnauthorized, identity.ErrUnauthenticated.Error())
				return
			}

			ctx := identity.WithUser(r.Context(), u)
			ctx = context.WithValue(ctx, TokenKey, token)
			ctx = logging.WithLogger(ctx, logging.FromContext(ctx).With(zap.String("user_id", u.ID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromContext returns the token the request authenticated with
func TokenFromContext(ctx context.Context) string {
	if t, ok := ctx.Value(TokenKey).(string); ok {
		return t
	}
	return ""
}
