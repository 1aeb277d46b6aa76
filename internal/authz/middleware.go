package authz

import (
	"log/slog"
	"net/http"
)

// Authorization builds the route guards used by the router. All checks read
// the Principal placed in context by the auth middleware; a missing principal
// is a 401, a failed check a 403.
type Authorization struct {
	logger *slog.Logger
}

func NewAuthorization(logger *slog.Logger) *Authorization {
	return &Authorization{logger: logger}
}

func (a *Authorization) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				a.logger.Warn("authorization check failed: principal not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !principal.IsAdmin() {
				a.logger.WarnContext(r.Context(), "access denied: admin role required",
					"user_id", principal.UserID)
				http.Error(w, "Forbidden: administrator access required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireFeature gates a route on one feature code. Admins bypass via the
// snapshot itself.
func (a *Authorization) RequireFeature(code string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				a.logger.Warn("authorization check failed: principal not found in context", "feature", code)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !principal.HasFeature(code) {
				a.logger.WarnContext(r.Context(), "access denied: feature not visible",
					"user_id", principal.UserID,
					"feature", code)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyFeature passes when the principal holds at least one of the codes.
func (a *Authorization) RequireAnyFeature(codes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, code := range codes {
				if principal.HasFeature(code) {
					next.ServeHTTP(w, r)
					return
				}
			}

			a.logger.WarnContext(r.Context(), "access denied: none of the required features visible",
				"user_id", principal.UserID,
				"features", codes)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		})
	}
}
