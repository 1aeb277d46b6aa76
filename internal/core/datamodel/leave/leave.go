package leave

import "time"

// LeaveBalance holds the per-user allowance for one calendar year. Upserts key
// on (user_id, year).
type LeaveBalance struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"column:user_id;not null;uniqueIndex:idx_leave_balance"`
	Year         int       `gorm:"column:year;not null;uniqueIndex:idx_leave_balance"`
	VacationDays int       `gorm:"column:vacation_days;default:0"`
	SickDays     int       `gorm:"column:sick_days;default:0"`
	PersonalDays int       `gorm:"column:personal_days;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}
