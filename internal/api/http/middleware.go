package http

import (
	"context"
	"net/http"
	"strings"

	"brickvest-backend/internal/domain"
	"brickvest-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// ClaimsFromContext returns the authenticated caller's claims, if any.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*security.UserClaims)
	return claims, ok
}

// ContextWithClaims returns a context carrying the given claims.
func ContextWithClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

type Middleware struct {
	tokens security.TokenManager
}

func NewMiddleware(tokens security.TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate validates the Bearer token and stores the claims in the
// request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, domain.ErrUnauthorized)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			writeError(w, err)
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeError(w, security.ErrWrongTokenType)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

// RequireAdmin is the access-policy capability check for administrative
// operations. It must run after Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || !claims.IsAdmin() {
			writeError(w, domain.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
