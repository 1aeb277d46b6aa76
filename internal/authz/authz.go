package authz

import (
	"context"
	"errors"
	"time"
)

// Role is a coarse job-function category. The set is closed; the
// role-assignment table is many-to-many for future flexibility but almost
// every user carries exactly one.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleAccountant Role = "accountant"
	RolePurchaser  Role = "purchaser"
	RoleWorker     Role = "worker"
)

var AllRoles = []Role{RoleAdmin, RoleManager, RoleAccountant, RolePurchaser, RoleWorker}

func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// MatrixEntry is one cell of the role/feature grid. Explicit false entries are
// persisted so a saved grid round-trips exactly.
type MatrixEntry struct {
	Role        Role   `json:"role"`
	FeatureCode string `json:"feature_code"`
	CanAccess   bool   `json:"can_access"`
}

// Snapshot is the resolved visibility set for one user, valid for the
// lifetime of an authentication session. It is immutable once built; auth
// state changes replace it wholesale rather than mutating it.
type Snapshot struct {
	UserID   int64           `json:"user_id"`
	IsAdmin  bool            `json:"is_admin"`
	Features map[string]bool `json:"features"`
	LoadedAt time.Time       `json:"loaded_at"`
}

// HasFeature reports whether the feature is accessible. Nil snapshots and
// unknown codes deny.
func (s *Snapshot) HasFeature(code string) bool {
	if s == nil {
		return false
	}
	if s.IsAdmin {
		return true
	}
	return s.Features[code]
}

// FeatureCodes returns the granted codes in no particular order.
func (s *Snapshot) FeatureCodes() []string {
	if s == nil {
		return nil
	}
	codes := make([]string, 0, len(s.Features))
	for code, granted := range s.Features {
		if granted {
			codes = append(codes, code)
		}
	}
	return codes
}

// RepositoryAPI is the persistence surface for the authorization tables. All
// Replace* calls are full-replace saves: delete every row for the scoping key,
// then insert the given set, in a single transaction.
type RepositoryAPI interface {
	GetUserRoles(ctx context.Context, userID int64) ([]Role, error)
	GetMatrix(ctx context.Context) ([]MatrixEntry, error)
	GetRoleGrants(ctx context.Context, roles []Role) (map[string]bool, error)
	ReplaceMatrix(ctx context.Context, entries []MatrixEntry) error
	GetUserVisibility(ctx context.Context, userID int64) ([]string, error)
	ReplaceUserVisibility(ctx context.Context, userID int64, featureCodes []string) error
	GetProjectAccess(ctx context.Context, projectID int64) ([]int64, error)
	ReplaceProjectAccess(ctx context.Context, projectID int64, userIDs []int64) error
	ListActiveFeatureCodes(ctx context.Context) ([]string, error)
}

var (
	ErrUnknownRole    = errors.New("unknown role")
	ErrUnknownFeature = errors.New("unknown or inactive feature code")
)

type ctxKey string

const ContextPrincipalKey ctxKey = "principal"

// Principal is the authenticated caller plus their resolved visibility,
// placed in request context by the auth middleware.
type Principal struct {
	UserID   int64
	Email    string
	Snapshot *Snapshot
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Snapshot != nil && p.Snapshot.IsAdmin
}

func (p *Principal) HasFeature(code string) bool {
	if p == nil {
		return false
	}
	return p.Snapshot.HasFeature(code)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ContextPrincipalKey).(*Principal)
	return p, ok
}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ContextPrincipalKey, p)
}
