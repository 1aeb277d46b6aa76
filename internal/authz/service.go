package authz

import (
	"context"
	"log/slog"
)

// SessionInvalidator is the slice of the session manager the editor services
// need: saves must drop cached snapshots so the next permission query sees the
// new rows.
type SessionInvalidator interface {
	Invalidate(userID int64)
	InvalidateAll()
}

// Service backs the admin editors (role matrix, per-user visibility,
// per-project access) and the effective-permission query used by screen
// gating.
type Service struct {
	repo     RepositoryAPI
	sessions SessionInvalidator
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, sessions SessionInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *Service) GetUserRoles(ctx context.Context, userID int64) ([]Role, error) {
	return s.repo.GetUserRoles(ctx, userID)
}

// IsAdmin fails closed: a lookup error reads as not-admin.
func (s *Service) IsAdmin(ctx context.Context, userID int64) bool {
	roles, err := s.repo.GetUserRoles(ctx, userID)
	if err != nil {
		s.logger.Error("admin check failed, denying", "user_id", userID, "error", err)
		return false
	}
	for _, role := range roles {
		if role == RoleAdmin {
			return true
		}
	}
	return false
}

func (s *Service) GetMatrix(ctx context.Context) ([]MatrixEntry, error) {
	entries, err := s.repo.GetMatrix(ctx)
	if err != nil {
		s.logger.Error("failed to load role permission matrix", "error", err)
		return nil, err
	}
	return entries, nil
}

// SaveMatrix replaces the whole grid. The delete and the re-insert run in one
// transaction; a failed insert leaves the previous grid intact.
func (s *Service) SaveMatrix(ctx context.Context, dto SaveMatrixDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.validateFeatureCodes(ctx, matrixCodes(dto.Entries)); err != nil {
		return err
	}

	entries := make([]MatrixEntry, len(dto.Entries))
	for i, e := range dto.Entries {
		entries[i] = MatrixEntry{
			Role:        Role(e.Role),
			FeatureCode: e.FeatureCode,
			CanAccess:   e.CanAccess,
		}
	}

	if err := s.repo.ReplaceMatrix(ctx, entries); err != nil {
		s.logger.Error("failed to save role permission matrix", "error", err, "entries", len(entries))
		return err
	}

	// Any user's role defaults may have changed.
	s.sessions.InvalidateAll()

	s.logger.Info("role permission matrix replaced", "entries", len(entries))
	return nil
}

func (s *Service) GetUserVisibility(ctx context.Context, userID int64) ([]string, error) {
	codes, err := s.repo.GetUserVisibility(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load user visibility", "user_id", userID, "error", err)
		return nil, err
	}
	return codes, nil
}

// SaveUserVisibility replaces the user's explicit allow list. Only the listed
// codes are stored; the table stays sparse.
func (s *Service) SaveUserVisibility(ctx context.Context, userID int64, dto SaveVisibilityDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.validateFeatureCodes(ctx, dto.FeatureCodes); err != nil {
		return err
	}

	if err := s.repo.ReplaceUserVisibility(ctx, userID, dto.FeatureCodes); err != nil {
		s.logger.Error("failed to save user visibility", "user_id", userID, "error", err)
		return err
	}

	s.sessions.Invalidate(userID)

	s.logger.Info("user visibility replaced", "user_id", userID, "features", len(dto.FeatureCodes))
	return nil
}

func (s *Service) GetProjectAccess(ctx context.Context, projectID int64) ([]int64, error) {
	userIDs, err := s.repo.GetProjectAccess(ctx, projectID)
	if err != nil {
		s.logger.Error("failed to load project access", "project_id", projectID, "error", err)
		return nil, err
	}
	return userIDs, nil
}

// SaveProjectAccess replaces the project's allow list. Project access is
// checked per request against the store, so no session invalidation is
// needed.
func (s *Service) SaveProjectAccess(ctx context.Context, projectID int64, dto SaveProjectAccessDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.repo.ReplaceProjectAccess(ctx, projectID, dto.UserIDs); err != nil {
		s.logger.Error("failed to save project access", "project_id", projectID, "error", err)
		return err
	}

	s.logger.Info("project access replaced", "project_id", projectID, "users", len(dto.UserIDs))
	return nil
}

func (s *Service) validateFeatureCodes(ctx context.Context, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	activeCodes, err := s.repo.ListActiveFeatureCodes(ctx)
	if err != nil {
		return err
	}
	active := make(map[string]bool, len(activeCodes))
	for _, code := range activeCodes {
		active[code] = true
	}
	for _, code := range codes {
		if !active[code] {
			return ValidationError{Msg: "unknown or inactive feature code: " + code}
		}
	}
	return nil
}

func matrixCodes(entries []MatrixEntryDTO) []string {
	seen := make(map[string]bool, len(entries))
	codes := make([]string, 0, len(entries))
	for _, e := range entries {
		if !seen[e.FeatureCode] {
			seen[e.FeatureCode] = true
			codes = append(codes, e.FeatureCode)
		}
	}
	return codes
}
