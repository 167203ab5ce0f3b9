package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edvin/insightcrm/internal/api/response"
	"github.com/edvin/insightcrm/internal/model"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenValidator verifies an access token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*model.JWTClaims, error)
}

// Auth returns middleware that validates JWT Bearer tokens and injects claims into context.
func Auth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				response.WriteError(w, http.StatusUnauthorized, "access token required")
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("user_id", claims.Subject)
			})
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *model.JWTClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims extracts JWT claims from the request context.
func GetClaims(ctx context.Context) *model.JWTClaims {
	claims, _ := ctx.Value(claimsKey).(*model.JWTClaims)
	return claims
}
