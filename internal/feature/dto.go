package feature

// FeatureResponse is the transport shape returned to clients.
type FeatureResponse struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
	IsActive bool   `json:"is_active"`
}

type CreateFeatureDTO struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type UpdateFeatureDTO struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateFeatureDTO) Validate() error {
	if d.Code == "" {
		return ValidationError{Msg: "code is required"}
	}
	if len(d.Code) > 100 {
		return ValidationError{Msg: "code must not exceed 100 characters"}
	}
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	return nil
}

func (d UpdateFeatureDTO) Validate() error {
	if d.Name != nil && *d.Name == "" {
		return ValidationError{Msg: "name cannot be empty"}
	}
	return nil
}
