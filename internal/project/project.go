package project

import (
	"errors"
	"time"

	projectDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/project"
)

// Project is a construction site or contract tracked by the back office.
type Project struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	BudgetIDR int64     `json:"budget_idr"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeatureView gates the project list screen.
const FeatureView = "projects.view"

var ErrNotFound = errors.New("project not found")
var ErrCodeTaken = errors.New("project code already in use")

func FromDataModel(p *projectDatamodel.Project) *Project {
	return &Project{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		BudgetIDR: p.BudgetIDR,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func ToDataModel(p *Project) *projectDatamodel.Project {
	return &projectDatamodel.Project{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		BudgetIDR: p.BudgetIDR,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
