package leave

// SaveBalanceDTO is the admin upsert payload. The (user_id, year) pair keys
// the row; saving twice overwrites.
type SaveBalanceDTO struct {
	UserID       int64 `json:"user_id"`
	Year         int   `json:"year"`
	VacationDays int   `json:"vacation_days"`
	SickDays     int   `json:"sick_days"`
	PersonalDays int   `json:"personal_days"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d SaveBalanceDTO) Validate() error {
	if d.UserID <= 0 {
		return ValidationError{Msg: "user_id is required"}
	}
	if d.Year < 2000 || d.Year > 2200 {
		return ValidationError{Msg: "year is out of range"}
	}
	if d.VacationDays < 0 || d.SickDays < 0 || d.PersonalDays < 0 {
		return ValidationError{Msg: "day counts cannot be negative"}
	}
	return nil
}
