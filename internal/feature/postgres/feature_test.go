package postgres_test

import (
	"testing"
	"time"

	featureDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/feature"
	"github.com/frahmantamala/construction-backoffice/internal/feature"
	featurePostgres "github.com/frahmantamala/construction-backoffice/internal/feature/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestFeaturePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Feature Postgres Suite")
}

// SQLiteFeature is a SQLite-compatible model for testing
type SQLiteFeature struct {
	ID        int64     `gorm:"primaryKey"`
	Code      string    `gorm:"column:code;uniqueIndex;not null"`
	Name      string    `gorm:"column:name;not null"`
	Category  string    `gorm:"column:category"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteFeature) TableName() string {
	return "features"
}

var _ = Describe("Feature PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo feature.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteFeature{})
		Expect(err).NotTo(HaveOccurred())

		repo = featurePostgres.NewFeatureRepository(db)
	})

	Describe("Create", func() {
		It("should create a new feature", func() {
			f := &featureDatamodel.Feature{
				Code:     "projects.view",
				Name:     "View projects",
				Category: "projects",
				IsActive: true,
			}

			err := repo.Create(f)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.ID).To(BeNumerically(">", 0))
		})

		It("should fail on duplicate code", func() {
			f1 := &featureDatamodel.Feature{Code: "projects.view", Name: "View projects", IsActive: true}
			Expect(repo.Create(f1)).To(Succeed())

			f2 := &featureDatamodel.Feature{Code: "projects.view", Name: "Other", IsActive: true}
			Expect(repo.Create(f2)).NotTo(Succeed())
		})
	})

	Describe("GetByCode", func() {
		It("should return nil for a missing code", func() {
			f, err := repo.GetByCode("does.not.exist")
			Expect(err).NotTo(HaveOccurred())
			Expect(f).To(BeNil())
		})

		It("should find an existing feature", func() {
			seed := &featureDatamodel.Feature{Code: "leave.manage", Name: "Manage leave", IsActive: true}
			Expect(repo.Create(seed)).To(Succeed())

			f, err := repo.GetByCode("leave.manage")
			Expect(err).NotTo(HaveOccurred())
			Expect(f).NotTo(BeNil())
			Expect(f.Name).To(Equal("Manage leave"))
		})
	})

	Describe("GetAll", func() {
		It("should return features ordered by code", func() {
			Expect(repo.Create(&featureDatamodel.Feature{Code: "purchasing.approve", Name: "b", IsActive: true})).To(Succeed())
			Expect(repo.Create(&featureDatamodel.Feature{Code: "leave.manage", Name: "a", IsActive: true})).To(Succeed())

			features, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(features).To(HaveLen(2))
			Expect(features[0].Code).To(Equal("leave.manage"))
			Expect(features[1].Code).To(Equal("purchasing.approve"))
		})
	})

	Describe("Deactivate", func() {
		It("should flip is_active without deleting the row", func() {
			seed := &featureDatamodel.Feature{Code: "reports.legacy", Name: "Legacy reports", IsActive: true}
			Expect(repo.Create(seed)).To(Succeed())

			Expect(repo.Deactivate(seed.ID)).To(Succeed())

			f, err := repo.GetByID(seed.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(f).NotTo(BeNil())
			Expect(f.IsActive).To(BeFalse())
		})
	})
})
