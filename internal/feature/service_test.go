package feature_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	featureDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/feature"
	"github.com/frahmantamala/construction-backoffice/internal/feature"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFeatureService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Feature Service Suite")
}

// MockRepository implements feature.RepositoryAPI for testing
type MockRepository struct {
	features   map[string]*featureDatamodel.Feature
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		features: make(map[string]*featureDatamodel.Feature),
		nextID:   1,
	}
}

func (m *MockRepository) GetAll() ([]*featureDatamodel.Feature, error) {
	if m.shouldFail {
		return nil, m.failError
	}

	var result []*featureDatamodel.Feature
	for _, f := range m.features {
		result = append(result, f)
	}
	return result, nil
}

func (m *MockRepository) GetByID(id int64) (*featureDatamodel.Feature, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, f := range m.features {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetByCode(code string) (*featureDatamodel.Feature, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	f, exists := m.features[code]
	if !exists {
		return nil, nil
	}
	return f, nil
}

func (m *MockRepository) Create(f *featureDatamodel.Feature) error {
	if m.shouldFail {
		return m.failError
	}
	f.ID = m.nextID
	m.nextID++
	m.features[f.Code] = f
	return nil
}

func (m *MockRepository) Update(f *featureDatamodel.Feature) error {
	if m.shouldFail {
		return m.failError
	}
	m.features[f.Code] = f
	return nil
}

func (m *MockRepository) Deactivate(id int64) error {
	if m.shouldFail {
		return m.failError
	}
	for code, f := range m.features {
		if f.ID == id {
			f.IsActive = false
			m.features[code] = f
			break
		}
	}
	return nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) AddFeature(f *feature.Feature) {
	dataFeature := feature.ToDataModel(f)
	if dataFeature.ID >= m.nextID {
		m.nextID = dataFeature.ID + 1
	}
	m.features[dataFeature.Code] = dataFeature
}

var _ = Describe("Feature Service", func() {
	var (
		mockRepo *MockRepository
		service  *feature.Service
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = feature.NewService(mockRepo, logger)
	})

	Describe("GetActiveFeatures", func() {
		Context("when repository has features", func() {
			BeforeEach(func() {
				mockRepo.AddFeature(&feature.Feature{
					ID:       1,
					Code:     "projects.view",
					Name:     "View projects",
					Category: "projects",
					IsActive: true,
				})
				mockRepo.AddFeature(&feature.Feature{
					ID:       2,
					Code:     "purchasing.approve",
					Name:     "Approve purchase requests",
					Category: "purchasing",
					IsActive: true,
				})
				mockRepo.AddFeature(&feature.Feature{
					ID:       3,
					Code:     "reports.legacy",
					Name:     "Legacy reports",
					Category: "reports",
					IsActive: false,
				})
			})

			It("should return only active features", func() {
				features, err := service.GetActiveFeatures()
				Expect(err).NotTo(HaveOccurred())
				Expect(features).To(HaveLen(2))

				codes := make([]string, len(features))
				for i, f := range features {
					codes[i] = f.Code
				}
				Expect(codes).To(ConsistOf("projects.view", "purchasing.approve"))
			})
		})

		Context("when repository returns error", func() {
			BeforeEach(func() {
				mockRepo.SetShouldFail(true, errors.New("database error"))
			})

			It("should return error", func() {
				features, err := service.GetActiveFeatures()
				Expect(err).To(HaveOccurred())
				Expect(features).To(BeNil())
			})
		})

		Context("when repository is empty", func() {
			It("should return empty result", func() {
				features, err := service.GetActiveFeatures()
				Expect(err).NotTo(HaveOccurred())
				Expect(features).To(HaveLen(0))
			})
		})
	})

	Describe("GetAllFeatures", func() {
		BeforeEach(func() {
			mockRepo.AddFeature(&feature.Feature{
				ID:       1,
				Code:     "projects.view",
				Name:     "View projects",
				IsActive: true,
			})
			mockRepo.AddFeature(&feature.Feature{
				ID:       2,
				Code:     "reports.legacy",
				Name:     "Legacy reports",
				IsActive: false,
			})
		})

		It("should include inactive features", func() {
			features, err := service.GetAllFeatures()
			Expect(err).NotTo(HaveOccurred())
			Expect(features).To(HaveLen(2))
		})
	})

	Describe("CreateFeature", func() {
		It("should create a feature and mark it active", func() {
			created, err := service.CreateFeature(feature.CreateFeatureDTO{
				Code:     "leave.manage",
				Name:     "Manage leave balances",
				Category: "leave",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).NotTo(BeNil())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.IsActive).To(BeTrue())
		})

		It("should reject a duplicate code", func() {
			mockRepo.AddFeature(&feature.Feature{
				ID:       1,
				Code:     "leave.manage",
				Name:     "Manage leave balances",
				IsActive: true,
			})

			created, err := service.CreateFeature(feature.CreateFeatureDTO{
				Code: "leave.manage",
				Name: "Manage leave balances",
			})
			Expect(err).To(HaveOccurred())
			Expect(created).To(BeNil())
			Expect(err).To(BeAssignableToTypeOf(feature.ValidationError{}))
		})

		It("should reject an empty code", func() {
			created, err := service.CreateFeature(feature.CreateFeatureDTO{
				Name: "Nameless",
			})
			Expect(err).To(HaveOccurred())
			Expect(created).To(BeNil())
		})
	})

	Describe("UpdateFeature", func() {
		BeforeEach(func() {
			mockRepo.AddFeature(&feature.Feature{
				ID:       7,
				Code:     "projects.view",
				Name:     "View projects",
				Category: "projects",
				IsActive: true,
			})
		})

		It("should patch only the provided fields", func() {
			newName := "View all projects"
			updated, err := service.UpdateFeature(7, feature.UpdateFeatureDTO{Name: &newName})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated).NotTo(BeNil())
			Expect(updated.Name).To(Equal("View all projects"))
			Expect(updated.Category).To(Equal("projects"))
			Expect(updated.IsActive).To(BeTrue())
		})

		It("should return nil for an unknown id", func() {
			newName := "whatever"
			updated, err := service.UpdateFeature(999, feature.UpdateFeatureDTO{Name: &newName})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated).To(BeNil())
		})
	})

	Describe("DeactivateFeature", func() {
		BeforeEach(func() {
			mockRepo.AddFeature(&feature.Feature{
				ID:       7,
				Code:     "projects.view",
				Name:     "View projects",
				IsActive: true,
			})
		})

		It("should hide the feature from the active catalog", func() {
			err := service.DeactivateFeature(7)
			Expect(err).NotTo(HaveOccurred())

			features, err := service.GetActiveFeatures()
			Expect(err).NotTo(HaveOccurred())
			Expect(features).To(HaveLen(0))
		})
	})
})
