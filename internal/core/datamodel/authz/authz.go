package authz

import "time"

// RoleAssignment links a user to a role for authorization checks. Modeled
// many-to-many even though most users carry a single role.
type RoleAssignment struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_role_assignment"`
	Role      string    `gorm:"column:role;not null;uniqueIndex:idx_role_assignment"`
	GrantedBy *int64    `gorm:"column:granted_by"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (RoleAssignment) TableName() string {
	return "role_assignments"
}

// RolePermission is one cell of the role/feature matrix. Unlike the sparse
// visibility table, explicit false rows are persisted so a saved grid reloads
// exactly as it was saved.
type RolePermission struct {
	ID          int64     `gorm:"primaryKey"`
	Role        string    `gorm:"column:role;not null;uniqueIndex:idx_role_permission"`
	FeatureCode string    `gorm:"column:feature_code;not null;uniqueIndex:idx_role_permission"`
	CanAccess   bool      `gorm:"column:can_access;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

// UserFeatureVisibility is a per-user explicit grant. Only can_view=true rows
// are stored; absence means not visible.
type UserFeatureVisibility struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_visibility"`
	FeatureCode string    `gorm:"column:feature_code;not null;uniqueIndex:idx_user_visibility"`
	CanView     bool      `gorm:"column:can_view;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

func (UserFeatureVisibility) TableName() string {
	return "user_feature_visibility"
}

// ProjectAccess grants a user access to a project. Presence = granted.
type ProjectAccess struct {
	ID        int64     `gorm:"primaryKey"`
	ProjectID int64     `gorm:"column:project_id;not null;uniqueIndex:idx_project_access"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_project_access"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (ProjectAccess) TableName() string {
	return "project_access"
}
