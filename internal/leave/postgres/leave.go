package postgres

import (
	"context"

	leaveDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/leave"
	"github.com/frahmantamala/construction-backoffice/internal/leave"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.RepositoryAPI {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) GetForUser(ctx context.Context, userID int64) ([]*leaveDatamodel.LeaveBalance, error) {
	var balances []*leaveDatamodel.LeaveBalance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("year DESC").
		Find(&balances).Error
	return balances, err
}

func (r *LeaveRepository) GetForUserYear(ctx context.Context, userID int64, year int) (*leaveDatamodel.LeaveBalance, error) {
	var b leaveDatamodel.LeaveBalance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ?", userID, year).
		First(&b).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// Upsert inserts or overwrites the allowance keyed on (user_id, year).
func (r *LeaveRepository) Upsert(ctx context.Context, b *leaveDatamodel.LeaveBalance) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "year"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"vacation_days": b.VacationDays,
			"sick_days":     b.SickDays,
			"personal_days": b.PersonalDays,
			"updated_at":    gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(b).Error
}
