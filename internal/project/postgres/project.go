package postgres

import (
	"context"

	projectDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/project"
	"github.com/frahmantamala/construction-backoffice/internal/project"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.RepositoryAPI {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) GetAll(ctx context.Context) ([]*projectDatamodel.Project, error) {
	var projects []*projectDatamodel.Project
	err := r.db.WithContext(ctx).Order("code ASC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*projectDatamodel.Project, error) {
	var p projectDatamodel.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) GetByCode(ctx context.Context, code string) (*projectDatamodel.Project, error) {
	var p projectDatamodel.Project
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *projectDatamodel.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) Update(ctx context.Context, p *projectDatamodel.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}
