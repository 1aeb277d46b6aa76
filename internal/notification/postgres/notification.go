package postgres

import (
	"context"
	"time"

	notificationDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/notification"
	"github.com/frahmantamala/construction-backoffice/internal/notification"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	row := notification.ToDataModel(n)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	n.ID = row.ID
	return nil
}

func (r *NotificationRepository) GetForUser(ctx context.Context, userID int64, unreadOnly bool) ([]*notification.Notification, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var rows []*notificationDatamodel.Notification
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]*notification.Notification, len(rows))
	for i, row := range rows {
		result[i] = notification.FromDataModel(row)
	}
	return result, nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*notification.Notification, error) {
	var row notificationDatamodel.Notification
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return notification.FromDataModel(&row), nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&notificationDatamodel.Notification{}).
		Where("id = ?", id).
		Update("read_at", time.Now()).Error
}
