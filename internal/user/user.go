package user

import (
	"errors"
	"time"
)

// User is a staff account. PrimaryRole is the role assigned at creation;
// additional roles live in the role_assignments table and are resolved by the
// authorization layer, not here.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"full_name" db:"full_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	PrimaryRole  string    `json:"primary_role" db:"primary_role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (u *User) IsActiveUser() bool {
	return u.IsActive
}

var ErrNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already in use")
