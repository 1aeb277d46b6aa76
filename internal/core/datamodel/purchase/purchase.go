package purchase

import "time"

type PurchaseRequest struct {
	ID          int64      `gorm:"primaryKey"`
	UserID      int64      `gorm:"column:user_id;not null"`
	ProjectID   *int64     `gorm:"column:project_id"`
	AmountIDR   int64      `gorm:"column:amount_idr;not null"`
	Description string     `gorm:"column:description;not null"`
	Vendor      string     `gorm:"column:vendor"`
	Status      string     `gorm:"column:status;default:pending_approval"`
	NeededBy    time.Time  `gorm:"column:needed_by;type:date"`
	SubmittedAt time.Time  `gorm:"column:submitted_at;default:now()"`
	ProcessedAt *time.Time `gorm:"column:processed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;default:now()"`
}

func (PurchaseRequest) TableName() string {
	return "purchase_requests"
}
