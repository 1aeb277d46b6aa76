package leave

import (
	"errors"
	"time"

	leaveDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/leave"
)

// Balance is the yearly leave allowance for one user.
type Balance struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Year         int       `json:"year"`
	VacationDays int       `json:"vacation_days"`
	SickDays     int       `json:"sick_days"`
	PersonalDays int       `json:"personal_days"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var ErrNotFound = errors.New("leave balance not found")

func FromDataModel(b *leaveDatamodel.LeaveBalance) *Balance {
	return &Balance{
		ID:           b.ID,
		UserID:       b.UserID,
		Year:         b.Year,
		VacationDays: b.VacationDays,
		SickDays:     b.SickDays,
		PersonalDays: b.PersonalDays,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
