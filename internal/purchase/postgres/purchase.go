package postgres

import (
	"context"
	"time"

	purchaseDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/purchase"
	"github.com/frahmantamala/construction-backoffice/internal/purchase"
	"gorm.io/gorm"
)

// PurchaseRepository implements purchase.Repository using GORM
type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) purchase.Repository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(ctx context.Context, req *purchase.Request) error {
	row := purchase.ToDataModel(req)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	req.ID = row.ID
	return nil
}

func (r *PurchaseRepository) GetByID(ctx context.Context, id int64) (*purchase.Request, error) {
	var row purchaseDatamodel.PurchaseRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, purchase.ErrRequestNotFound
		}
		return nil, err
	}
	return purchase.FromDataModel(&row), nil
}

func (r *PurchaseRepository) GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]*purchase.Request, error) {
	var rows []*purchaseDatamodel.PurchaseRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return purchase.FromDataModelSlice(rows), nil
}

func (r *PurchaseRepository) GetAll(ctx context.Context, limit, offset int) ([]*purchase.Request, error) {
	var rows []*purchaseDatamodel.PurchaseRequest
	err := r.db.WithContext(ctx).
		Order("submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return purchase.FromDataModelSlice(rows), nil
}

func (r *PurchaseRepository) UpdateStatus(ctx context.Context, id int64, status string, processedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&purchaseDatamodel.PurchaseRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"processed_at": processedAt,
			"updated_at":   processedAt,
		}).Error
}
