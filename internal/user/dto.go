package user

import (
	"strings"

	"github.com/frahmantamala/construction-backoffice/internal/authz"
)

type CreateUserDTO struct {
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Password    string `json:"password"`
	PrimaryRole string `json:"primary_role"`
}

type UpdateUserDTO struct {
	FullName    *string `json:"full_name,omitempty"`
	PrimaryRole *string `json:"primary_role,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateUserDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return ValidationError{Msg: "email is required"}
	}
	if !strings.Contains(d.Email, "@") {
		return ValidationError{Msg: "email is not valid"}
	}
	if strings.TrimSpace(d.FullName) == "" {
		return ValidationError{Msg: "full_name is required"}
	}
	if len(d.Password) < 8 {
		return ValidationError{Msg: "password must be at least 8 characters"}
	}
	if d.PrimaryRole != "" && !authz.Role(d.PrimaryRole).IsValid() {
		return ValidationError{Msg: "unknown role: " + d.PrimaryRole}
	}
	return nil
}

func (d UpdateUserDTO) Validate() error {
	if d.FullName != nil && strings.TrimSpace(*d.FullName) == "" {
		return ValidationError{Msg: "full_name cannot be empty"}
	}
	if d.PrimaryRole != nil && !authz.Role(*d.PrimaryRole).IsValid() {
		return ValidationError{Msg: "unknown role: " + *d.PrimaryRole}
	}
	return nil
}
