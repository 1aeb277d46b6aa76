package project

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/construction-backoffice/internal"
	"github.com/frahmantamala/construction-backoffice/internal/authz"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
)

// AccessChecker answers whether a user holds a project access grant.
type AccessChecker interface {
	HasAccess(ctx context.Context, userID, projectID int64) (bool, error)
}

// SQLAccessChecker checks the project_access table directly. The row lookup
// runs per request rather than through the snapshot cache because project
// grants change independently of feature visibility.
type SQLAccessChecker struct {
	db *sqlx.DB
}

func NewSQLAccessChecker(db *sqlx.DB) *SQLAccessChecker {
	return &SQLAccessChecker{db: db}
}

func (c *SQLAccessChecker) HasAccess(ctx context.Context, userID, projectID int64) (bool, error) {
	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	var exists bool
	query := `SELECT EXISTS(
	            SELECT 1 FROM project_access
	            WHERE project_id = $1 AND user_id = $2
	          )`
	if err := c.db.GetContext(ctx, &exists, query, projectID, userID); err != nil {
		return false, err
	}
	return exists, nil
}

// AccessMiddleware guards project-scoped routes. Admins bypass the grant
// table; everyone else needs a project_access row. Lookup failures deny.
type AccessMiddleware struct {
	checker AccessChecker
	logger  *slog.Logger
}

func NewAccessMiddleware(checker AccessChecker, logger *slog.Logger) *AccessMiddleware {
	return &AccessMiddleware{
		checker: checker,
		logger:  logger,
	}
}

func (m *AccessMiddleware) RequireProjectAccess() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := authz.PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if principal.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			projectID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
			if err != nil {
				http.Error(w, "invalid project id", http.StatusBadRequest)
				return
			}

			granted, err := m.checker.HasAccess(r.Context(), principal.UserID, projectID)
			if err != nil {
				m.logger.Error("project access lookup failed",
					"user_id", principal.UserID, "project_id", projectID, "error", err)
				http.Error(w, "Forbidden: project access denied", http.StatusForbidden)
				return
			}
			if !granted {
				m.logger.WarnContext(r.Context(), "access denied: no project grant",
					"user_id", principal.UserID, "project_id", projectID)
				http.Error(w, "Forbidden: project access denied", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
