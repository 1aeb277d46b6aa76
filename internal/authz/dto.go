package authz

// MatrixEntryDTO is one checkbox of the admin role/feature grid.
type MatrixEntryDTO struct {
	Role        string `json:"role"`
	FeatureCode string `json:"feature_code"`
	CanAccess   bool   `json:"can_access"`
}

// SaveMatrixDTO carries the full grid; the save replaces every existing row.
type SaveMatrixDTO struct {
	Entries []MatrixEntryDTO `json:"entries"`
}

// SaveVisibilityDTO carries the checked set for one user; listed codes are
// stored as can_view=true, everything else is removed.
type SaveVisibilityDTO struct {
	FeatureCodes []string `json:"feature_codes"`
}

// SaveProjectAccessDTO carries the checked user set for one project.
type SaveProjectAccessDTO struct {
	UserIDs []int64 `json:"user_ids"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d SaveMatrixDTO) Validate() error {
	seen := make(map[string]bool, len(d.Entries))
	for _, entry := range d.Entries {
		if !Role(entry.Role).IsValid() {
			return ValidationError{Msg: "unknown role: " + entry.Role}
		}
		if entry.FeatureCode == "" {
			return ValidationError{Msg: "feature_code is required"}
		}
		key := entry.Role + "/" + entry.FeatureCode
		if seen[key] {
			return ValidationError{Msg: "duplicate entry for " + key}
		}
		seen[key] = true
	}
	return nil
}

func (d SaveVisibilityDTO) Validate() error {
	seen := make(map[string]bool, len(d.FeatureCodes))
	for _, code := range d.FeatureCodes {
		if code == "" {
			return ValidationError{Msg: "feature_code cannot be empty"}
		}
		if seen[code] {
			return ValidationError{Msg: "duplicate feature_code: " + code}
		}
		seen[code] = true
	}
	return nil
}

func (d SaveProjectAccessDTO) Validate() error {
	seen := make(map[int64]bool, len(d.UserIDs))
	for _, id := range d.UserIDs {
		if id <= 0 {
			return ValidationError{Msg: "user_id must be positive"}
		}
		if seen[id] {
			return ValidationError{Msg: "duplicate user_id"}
		}
		seen[id] = true
	}
	return nil
}
