package leave

import (
	"context"
	"fmt"
	"log/slog"

	leaveDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/leave"
)

type RepositoryAPI interface {
	GetForUser(ctx context.Context, userID int64) ([]*leaveDatamodel.LeaveBalance, error)
	GetForUserYear(ctx context.Context, userID int64, year int) (*leaveDatamodel.LeaveBalance, error)
	Upsert(ctx context.Context, b *leaveDatamodel.LeaveBalance) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetBalances returns every year on record for the user, newest first.
func (s *Service) GetBalances(ctx context.Context, userID int64) ([]*Balance, error) {
	rows, err := s.repo.GetForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	balances := make([]*Balance, 0, len(rows))
	for _, row := range rows {
		balances = append(balances, FromDataModel(row))
	}
	return balances, nil
}

func (s *Service) GetBalance(ctx context.Context, userID int64, year int) (*Balance, error) {
	row, err := s.repo.GetForUserYear(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave balance: %w", err)
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return FromDataModel(row), nil
}

// SaveBalance inserts or overwrites the row for (user_id, year).
func (s *Service) SaveBalance(ctx context.Context, dto SaveBalanceDTO) (*Balance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &leaveDatamodel.LeaveBalance{
		UserID:       dto.UserID,
		Year:         dto.Year,
		VacationDays: dto.VacationDays,
		SickDays:     dto.SickDays,
		PersonalDays: dto.PersonalDays,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to save leave balance: %w", err)
	}

	s.logger.Info("leave balance saved", "user_id", dto.UserID, "year", dto.Year)
	return FromDataModel(row), nil
}
