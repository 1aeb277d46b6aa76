package postgres

import (
	"context"

	"github.com/frahmantamala/construction-backoffice/internal/authz"
	authzDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/authz"
	featureDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/feature"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) authz.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) GetUserRoles(ctx context.Context, userID int64) ([]authz.Role, error) {
	var assignments []authzDatamodel.RoleAssignment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	roles := make([]authz.Role, len(assignments))
	for i, assignment := range assignments {
		roles[i] = authz.Role(assignment.Role)
	}
	return roles, nil
}

func (r *Repository) GetMatrix(ctx context.Context) ([]authz.MatrixEntry, error) {
	var rows []authzDatamodel.RolePermission
	err := r.db.WithContext(ctx).
		Order("role ASC, feature_code ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]authz.MatrixEntry, len(rows))
	for i, row := range rows {
		entries[i] = authz.MatrixEntry{
			Role:        authz.Role(row.Role),
			FeatureCode: row.FeatureCode,
			CanAccess:   row.CanAccess,
		}
	}
	return entries, nil
}

// GetRoleGrants merges the matrix rows for the given roles: a feature is
// granted when any of the roles grants it.
func (r *Repository) GetRoleGrants(ctx context.Context, roles []authz.Role) (map[string]bool, error) {
	grants := make(map[string]bool)
	if len(roles) == 0 {
		return grants, nil
	}

	roleNames := make([]string, len(roles))
	for i, role := range roles {
		roleNames[i] = string(role)
	}

	var rows []authzDatamodel.RolePermission
	err := r.db.WithContext(ctx).
		Where("role IN ?", roleNames).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.CanAccess {
			grants[row.FeatureCode] = true
		} else if _, seen := grants[row.FeatureCode]; !seen {
			grants[row.FeatureCode] = false
		}
	}
	return grants, nil
}

// ReplaceMatrix deletes every matrix row and re-inserts the given grid in one
// transaction, explicit false cells included.
func (r *Repository) ReplaceMatrix(ctx context.Context, entries []authz.MatrixEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&authzDatamodel.RolePermission{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}

		rows := make([]authzDatamodel.RolePermission, len(entries))
		for i, entry := range entries {
			rows[i] = authzDatamodel.RolePermission{
				Role:        string(entry.Role),
				FeatureCode: entry.FeatureCode,
				CanAccess:   entry.CanAccess,
			}
		}
		return tx.Create(&rows).Error
	})
}

func (r *Repository) GetUserVisibility(ctx context.Context, userID int64) ([]string, error) {
	var rows []authzDatamodel.UserFeatureVisibility
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND can_view = ?", userID, true).
		Order("feature_code ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	codes := make([]string, len(rows))
	for i, row := range rows {
		codes[i] = row.FeatureCode
	}
	return codes, nil
}

// ReplaceUserVisibility stores the sparse allow list: delete all rows for the
// user, insert can_view=true rows for the given codes only.
func (r *Repository) ReplaceUserVisibility(ctx context.Context, userID int64, featureCodes []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&authzDatamodel.UserFeatureVisibility{}).Error; err != nil {
			return err
		}
		if len(featureCodes) == 0 {
			return nil
		}

		rows := make([]authzDatamodel.UserFeatureVisibility, len(featureCodes))
		for i, code := range featureCodes {
			rows[i] = authzDatamodel.UserFeatureVisibility{
				UserID:      userID,
				FeatureCode: code,
				CanView:     true,
			}
		}
		return tx.Create(&rows).Error
	})
}

func (r *Repository) GetProjectAccess(ctx context.Context, projectID int64) ([]int64, error) {
	var rows []authzDatamodel.ProjectAccess
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("user_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	userIDs := make([]int64, len(rows))
	for i, row := range rows {
		userIDs[i] = row.UserID
	}
	return userIDs, nil
}

func (r *Repository) ReplaceProjectAccess(ctx context.Context, projectID int64, userIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&authzDatamodel.ProjectAccess{}).Error; err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}

		rows := make([]authzDatamodel.ProjectAccess, len(userIDs))
		for i, userID := range userIDs {
			rows[i] = authzDatamodel.ProjectAccess{
				ProjectID: projectID,
				UserID:    userID,
			}
		}
		return tx.Create(&rows).Error
	})
}

func (r *Repository) ListActiveFeatureCodes(ctx context.Context) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&featureDatamodel.Feature{}).
		Where("is_active = ?", true).
		Order("code ASC").
		Pluck("code", &codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}
