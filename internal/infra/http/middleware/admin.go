package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sellmypostoffice/valuation-api/internal/infra/auth"
)

type contextKey string

const claimsKey contextKey = "adminClaims"

// RequireAdmin short-circuits before any handler or store access when
// the session cookie is missing, invalid, expired or not an admin.
func RequireAdmin(tm *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := tm.RequireAdmin(r)
			if err != nil {
				status := http.StatusUnauthorized
				if errors.Is(err, auth.ErrForbidden) {
					status = http.StatusForbidden
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified session claims set by
// RequireAdmin, or nil outside the admin chain.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}
