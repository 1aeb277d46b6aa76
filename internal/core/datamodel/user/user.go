package user

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	FullName     string    `gorm:"column:full_name;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	PrimaryRole  string    `gorm:"column:primary_role;not null;default:worker"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}
