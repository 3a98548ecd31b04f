package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cambio/internal/auth"
	"github.com/MrJamesThe3rd/cambio/internal/http/render"
	"github.com/MrJamesThe3rd/cambio/internal/operator"
)

type claimsKey struct{}

type TokenParser interface {
	ParseToken(raw string) (*auth.Claims, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// token's claims in the request context.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				render.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := tokens.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				render.Error(w, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequirePermission rejects requests whose claims lack the permission.
func RequirePermission(allowed func(operator.Permissions) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := Claims(r.Context())
			if !ok || !allowed(claims.Permissions) {
				render.Error(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func Claims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// OperatorID returns the id of the authenticated operator, or uuid.Nil.
func OperatorID(ctx context.Context) uuid.UUID {
	claims, ok := Claims(ctx)
	if !ok {
		return uuid.Nil
	}

	id, err := claims.Operator()
	if err != nil {
		return uuid.Nil
	}

	return id
}

// WithClaims returns ctx carrying claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}
