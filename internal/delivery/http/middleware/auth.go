package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ZattoxSan23/tienda-catalog/internal/domain"
)

type authKey struct{}

// Identity headers set by the access service in front of the catalog.
const (
	userIDHeader = "X-User-Id"
	roleHeader   = "X-User-Role"
)

// Auth returns a middleware that builds the request's AuthContext from the
// identity headers. The catalog never inspects credentials itself; it only
// consumes the upstream decision.
func Auth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var auth domain.AuthContext

			if raw := r.Header.Get(userIDHeader); raw != "" {
				if userID, err := strconv.ParseInt(raw, 10, 64); err == nil {
					auth = domain.AuthContext{
						Authenticated: true,
						UserID:        userID,
						Role:          r.Header.Get(roleHeader),
					}
				}
			}

			ctx := context.WithValue(r.Context(), authKey{}, auth)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthFromContext returns the request's AuthContext; the zero value means
// unauthenticated.
func AuthFromContext(ctx context.Context) domain.AuthContext {
	auth, _ := ctx.Value(authKey{}).(domain.AuthContext)
	return auth
}

// WithAuth injects an AuthContext, used by handler tests.
func WithAuth(ctx context.Context, auth domain.AuthContext) context.Context {
	return context.WithValue(ctx, authKey{}, auth)
}
