package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/frahmantamala/construction-backoffice/internal/user"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) GetAll(ctx context.Context) ([]*user.User, error) {
	var users []*user.User
	query := `SELECT id, email, full_name, password_hash, primary_role, is_active, created_at, updated_at
	          FROM users ORDER BY full_name ASC`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *Repository) GetByID(ctx context.Context, userID int64) (*user.User, error) {
	var u user.User
	query := `SELECT id, email, full_name, password_hash, primary_role, is_active, created_at, updated_at
	          FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &u, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	query := `SELECT id, email, full_name, password_hash, primary_role, is_active, created_at, updated_at
	          FROM users WHERE email = $1`
	if err := r.db.GetContext(ctx, &u, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (r *Repository) Create(ctx context.Context, u *user.User) error {
	query := `INSERT INTO users (email, full_name, password_hash, primary_role, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, now(), now())
	          RETURNING id, created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query, u.Email, u.FullName, u.PasswordHash, u.PrimaryRole, u.IsActive)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, u *user.User) error {
	query := `UPDATE users
	          SET full_name = $1, primary_role = $2, is_active = $3, updated_at = now()
	          WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, u.FullName, u.PrimaryRole, u.IsActive, u.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *Repository) Deactivate(ctx context.Context, userID int64) error {
	query := `UPDATE users SET is_active = false, updated_at = now() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	return nil
}
