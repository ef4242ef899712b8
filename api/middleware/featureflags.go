// ABOUTME: Feature flag middleware attaches the flag manager to each request context
// ABOUTME: Lets core services consult kill switches without holding a manager reference

package middleware

import (
	"net/http"

	"postsheet-api/pkg/featureflags"
)

// FeatureFlagsMiddleware makes manager available through featureflags.FromContext
func FeatureFlagsMiddleware(manager featureflags.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(featureflags.WithManager(r.Context(), manager)))
		})
	}
}
