package postgres_test

import (
	"context"
	"testing"
	"time"

	leaveDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/leave"
	"github.com/frahmantamala/construction-backoffice/internal/leave"
	leavePostgres "github.com/frahmantamala/construction-backoffice/internal/leave/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestLeavePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Leave Postgres Suite")
}

// SQLiteLeaveBalance is a SQLite-compatible model for testing
type SQLiteLeaveBalance struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"column:user_id;not null;uniqueIndex:idx_leave_balance"`
	Year         int       `gorm:"column:year;not null;uniqueIndex:idx_leave_balance"`
	VacationDays int       `gorm:"column:vacation_days;default:0"`
	SickDays     int       `gorm:"column:sick_days;default:0"`
	PersonalDays int       `gorm:"column:personal_days;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (SQLiteLeaveBalance) TableName() string {
	return "leave_balances"
}

var _ = Describe("Leave PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo leave.RepositoryAPI
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteLeaveBalance{})
		Expect(err).NotTo(HaveOccurred())

		repo = leavePostgres.NewLeaveRepository(db)
		ctx = context.Background()
	})

	Describe("Upsert", func() {
		It("should insert a new row", func() {
			b := &leaveDatamodel.LeaveBalance{
				UserID:       5,
				Year:         2026,
				VacationDays: 12,
				SickDays:     10,
				PersonalDays: 3,
			}
			Expect(repo.Upsert(ctx, b)).To(Succeed())

			stored, err := repo.GetForUserYear(ctx, 5, 2026)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).NotTo(BeNil())
			Expect(stored.VacationDays).To(Equal(12))
		})

		It("should overwrite an existing (user, year) row instead of duplicating", func() {
			first := &leaveDatamodel.LeaveBalance{UserID: 5, Year: 2026, VacationDays: 12}
			Expect(repo.Upsert(ctx, first)).To(Succeed())

			second := &leaveDatamodel.LeaveBalance{UserID: 5, Year: 2026, VacationDays: 20, SickDays: 8}
			Expect(repo.Upsert(ctx, second)).To(Succeed())

			rows, err := repo.GetForUser(ctx, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].VacationDays).To(Equal(20))
			Expect(rows[0].SickDays).To(Equal(8))
		})

		It("should keep different years separate", func() {
			Expect(repo.Upsert(ctx, &leaveDatamodel.LeaveBalance{UserID: 5, Year: 2025, VacationDays: 12})).To(Succeed())
			Expect(repo.Upsert(ctx, &leaveDatamodel.LeaveBalance{UserID: 5, Year: 2026, VacationDays: 14})).To(Succeed())

			rows, err := repo.GetForUser(ctx, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Year).To(Equal(2026))
			Expect(rows[1].Year).To(Equal(2025))
		})
	})

	Describe("GetForUserYear", func() {
		It("should return nil for a missing row", func() {
			b, err := repo.GetForUserYear(ctx, 99, 2026)
			Expect(err).NotTo(HaveOccurred())
			Expect(b).To(BeNil())
		})
	})
})
