package authz

import (
	"context"
	"log/slog"
	"time"
)

// ResolverRepository is the read-only slice of the authorization store the
// resolver needs.
type ResolverRepository interface {
	GetUserRoles(ctx context.Context, userID int64) ([]Role, error)
	GetUserVisibility(ctx context.Context, userID int64) ([]string, error)
	GetRoleGrants(ctx context.Context, roles []Role) (map[string]bool, error)
	ListActiveFeatureCodes(ctx context.Context) ([]string, error)
}

// Resolver computes the effective visibility set for a user.
//
// Precedence: an admin role assignment grants everything; otherwise a per-user
// visibility row grants its feature; otherwise the role-default grid decides;
// otherwise deny. Inactive features are never granted to non-admins.
type Resolver struct {
	repo   ResolverRepository
	logger *slog.Logger
}

func NewResolver(repo ResolverRepository, logger *slog.Logger) *Resolver {
	return &Resolver{
		repo:   repo,
		logger: logger,
	}
}

// Resolve never returns an error: an authorization gate that cannot read its
// tables must deny, not fail open or crash the caller.
func (r *Resolver) Resolve(ctx context.Context, userID int64) *Snapshot {
	snapshot := &Snapshot{
		UserID:   userID,
		Features: make(map[string]bool),
		LoadedAt: time.Now(),
	}

	roles, err := r.repo.GetUserRoles(ctx, userID)
	if err != nil {
		r.logger.Error("resolver: role lookup failed, denying all", "user_id", userID, "error", err)
		return snapshot
	}

	for _, role := range roles {
		if role == RoleAdmin {
			snapshot.IsAdmin = true
			return snapshot
		}
	}

	activeCodes, err := r.repo.ListActiveFeatureCodes(ctx)
	if err != nil {
		r.logger.Error("resolver: feature catalog lookup failed, denying all", "user_id", userID, "error", err)
		return snapshot
	}
	active := make(map[string]bool, len(activeCodes))
	for _, code := range activeCodes {
		active[code] = true
	}

	visibility, err := r.repo.GetUserVisibility(ctx, userID)
	if err != nil {
		r.logger.Error("resolver: visibility lookup failed, denying all", "user_id", userID, "error", err)
		return snapshot
	}
	for _, code := range visibility {
		if active[code] {
			snapshot.Features[code] = true
		}
	}

	grants, err := r.repo.GetRoleGrants(ctx, roles)
	if err != nil {
		// Visibility rows already resolved are kept; only the role-default
		// layer degrades to deny.
		r.logger.Error("resolver: role grant lookup failed, skipping role defaults", "user_id", userID, "error", err)
		return snapshot
	}
	for code, granted := range grants {
		if granted && active[code] {
			snapshot.Features[code] = true
		}
	}

	return snapshot
}

// HasFeature resolves and checks in one call. Callers on the request path
// should prefer the session manager, which caches the snapshot.
func (r *Resolver) HasFeature(ctx context.Context, userID int64, code string) bool {
	return r.Resolve(ctx, userID).HasFeature(code)
}
