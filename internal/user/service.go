package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/construction-backoffice/internal/authz"
)

type Repository interface {
	GetAll(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, userID int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Deactivate(ctx context.Context, userID int64) error
}

// PasswordHasher is satisfied by the auth service.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// SessionInvalidator drops a user's cached permission snapshot when their
// account changes in a way that affects what they may see.
type SessionInvalidator interface {
	Invalidate(userID int64)
}

type Service struct {
	repo     Repository
	hasher   PasswordHasher
	sessions SessionInvalidator
	logger   *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, sessions SessionInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *Service) GetAll(ctx context.Context) ([]*User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *Service) GetByID(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *Service) CreateUser(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := dto.PrimaryRole
	if role == "" {
		role = string(authz.RoleWorker)
	}

	u := &User{
		Email:        dto.Email,
		FullName:     dto.FullName,
		PasswordHash: hash,
		PrimaryRole:  role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "email", u.Email, "role", u.PrimaryRole)
	return u, nil
}

func (s *Service) UpdateUser(ctx context.Context, userID int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return nil, ErrNotFound
	}

	roleChanged := false
	if dto.FullName != nil {
		u.FullName = *dto.FullName
	}
	if dto.PrimaryRole != nil && *dto.PrimaryRole != u.PrimaryRole {
		u.PrimaryRole = *dto.PrimaryRole
		roleChanged = true
	}
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if roleChanged || (dto.IsActive != nil && !*dto.IsActive) {
		if s.sessions != nil {
			s.sessions.Invalidate(userID)
		}
	}

	s.logger.Info("user updated", "user_id", userID)
	return u, nil
}

func (s *Service) DeactivateUser(ctx context.Context, userID int64) error {
	if err := s.repo.Deactivate(ctx, userID); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if s.sessions != nil {
		s.sessions.Invalidate(userID)
	}
	s.logger.Info("user deactivated", "user_id", userID)
	return nil
}
