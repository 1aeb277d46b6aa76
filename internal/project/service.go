package project

import (
	"context"
	"fmt"
	"log/slog"

	projectDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/project"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*projectDatamodel.Project, error)
	GetByID(ctx context.Context, id int64) (*projectDatamodel.Project, error)
	GetByCode(ctx context.Context, code string) (*projectDatamodel.Project, error)
	Create(ctx context.Context, p *projectDatamodel.Project) error
	Update(ctx context.Context, p *projectDatamodel.Project) error
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

func (s *Service) GetAll(ctx context.Context) ([]*Project, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, FromDataModel(row))
	}
	return projects, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Project, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) CreateProject(ctx context.Context, dto CreateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByCode(ctx, dto.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check project code: %w", err)
	}
	if existing != nil {
		return nil, ErrCodeTaken
	}

	row := &projectDatamodel.Project{
		Code:      dto.Code,
		Name:      dto.Name,
		BudgetIDR: dto.BudgetIDR,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created", "project_id", row.ID, "code", row.Code)
	return FromDataModel(row), nil
}

func (s *Service) UpdateProject(ctx context.Context, id int64, dto UpdateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if row == nil {
		return nil, ErrNotFound
	}

	if dto.Name != nil {
		row.Name = *dto.Name
	}
	if dto.BudgetIDR != nil {
		row.BudgetIDR = *dto.BudgetIDR
	}
	if dto.IsActive != nil {
		row.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.logger.Info("project updated", "project_id", id)
	return FromDataModel(row), nil
}
