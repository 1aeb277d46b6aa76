package project

import "strings"

type CreateProjectDTO struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	BudgetIDR int64  `json:"budget_idr"`
}

type UpdateProjectDTO struct {
	Name      *string `json:"name,omitempty"`
	BudgetIDR *int64  `json:"budget_idr,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateProjectDTO) Validate() error {
	if strings.TrimSpace(d.Code) == "" {
		return ValidationError{Msg: "code is required"}
	}
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Msg: "name is required"}
	}
	if d.BudgetIDR < 0 {
		return ValidationError{Msg: "budget_idr cannot be negative"}
	}
	return nil
}

func (d UpdateProjectDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return ValidationError{Msg: "name cannot be empty"}
	}
	if d.BudgetIDR != nil && *d.BudgetIDR < 0 {
		return ValidationError{Msg: "budget_idr cannot be negative"}
	}
	return nil
}
