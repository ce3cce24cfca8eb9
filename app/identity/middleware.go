package identity

import (
	"context"
	"net/http"
	"strings"

	"github.com/mytheresa/shop-admin/app/web"
)

const cookieName = "access_token"

type contextKey struct{}

type tokenParser interface {
	Parse(tokenString string) (*Claims, error)
}

// RequireRole rejects requests without a valid token (401) or without role (403).
// Valid claims are stored on the request context.
func RequireRole(tokens tokenParser, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				web.WriteError(w, http.StatusUnauthorized, "authorization required")
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				web.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if !claims.HasRole(role) {
				web.WriteError(w, http.StatusForbidden, role+" privileges required")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, claims)))
		})
	}
}

// ClaimsFromContext returns the claims stored by RequireRole.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}
