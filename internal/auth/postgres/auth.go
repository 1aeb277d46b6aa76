package postgres

import (
	"database/sql"

	"github.com/frahmantamala/construction-backoffice/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetUserByEmail(email string) (*auth.UserInfo, error) {
	var user auth.UserInfo
	query := `SELECT id, email, full_name, password_hash, is_active FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &user.IsActive); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByID(userID int64) (*auth.UserInfo, error) {
	var user auth.UserInfo
	query := `SELECT id, email, full_name, password_hash, is_active FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &user.IsActive); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
