package notification

import "time"

type Notification struct {
	ID        int64      `gorm:"primaryKey"`
	UserID    int64      `gorm:"column:user_id;not null;index"`
	Kind      string     `gorm:"column:kind;not null"`
	Subject   string     `gorm:"column:subject;not null"`
	Body      string     `gorm:"column:body"`
	ReadAt    *time.Time `gorm:"column:read_at"`
	CreatedAt time.Time  `gorm:"column:created_at;default:now()"`
}

func (Notification) TableName() string {
	return "notifications"
}
