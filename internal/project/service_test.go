package project_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	projectDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/project"
	"github.com/frahmantamala/construction-backoffice/internal/project"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestProjectService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Project Service Suite")
}

// MockRepository implements project.RepositoryAPI for testing
type MockRepository struct {
	projects   map[int64]*projectDatamodel.Project
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		projects: make(map[int64]*projectDatamodel.Project),
		nextID:   1,
	}
}

func (m *MockRepository) GetAll(ctx context.Context) ([]*projectDatamodel.Project, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*projectDatamodel.Project
	for _, p := range m.projects {
		result = append(result, p)
	}
	return result, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*projectDatamodel.Project, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.projects[id], nil
}

func (m *MockRepository) GetByCode(ctx context.Context, code string) (*projectDatamodel.Project, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, p := range m.projects {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(ctx context.Context, p *projectDatamodel.Project) error {
	if m.shouldFail {
		return m.failError
	}
	p.ID = m.nextID
	m.nextID++
	m.projects[p.ID] = p
	return nil
}

func (m *MockRepository) Update(ctx context.Context, p *projectDatamodel.Project) error {
	if m.shouldFail {
		return m.failError
	}
	m.projects[p.ID] = p
	return nil
}

func (m *MockRepository) AddProject(p *projectDatamodel.Project) {
	if p.ID >= m.nextID {
		m.nextID = p.ID + 1
	}
	m.projects[p.ID] = p
}

var _ = Describe("Project Service", func() {
	var (
		mockRepo *MockRepository
		service  *project.Service
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = project.NewService(mockRepo, logger)
		ctx = context.Background()
	})

	Describe("CreateProject", func() {
		It("should create an active project", func() {
			p, err := service.CreateProject(ctx, project.CreateProjectDTO{
				Code:      "TWR-01",
				Name:      "Tower block one",
				BudgetIDR: 5_000_000_000,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).To(BeNumerically(">", 0))
			Expect(p.IsActive).To(BeTrue())
		})

		It("should reject a duplicate code", func() {
			mockRepo.AddProject(&projectDatamodel.Project{ID: 1, Code: "TWR-01", Name: "Tower"})

			_, err := service.CreateProject(ctx, project.CreateProjectDTO{
				Code: "TWR-01",
				Name: "Another tower",
			})
			Expect(err).To(Equal(project.ErrCodeTaken))
		})

		It("should reject a negative budget", func() {
			_, err := service.CreateProject(ctx, project.CreateProjectDTO{
				Code:      "TWR-01",
				Name:      "Tower",
				BudgetIDR: -1,
			})
			Expect(err).To(BeAssignableToTypeOf(project.ValidationError{}))
		})
	})

	Describe("UpdateProject", func() {
		BeforeEach(func() {
			mockRepo.AddProject(&projectDatamodel.Project{
				ID:        3,
				Code:      "TWR-01",
				Name:      "Tower block one",
				BudgetIDR: 1000,
				IsActive:  true,
			})
		})

		It("should patch only the provided fields", func() {
			budget := int64(2000)
			p, err := service.UpdateProject(ctx, 3, project.UpdateProjectDTO{BudgetIDR: &budget})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.BudgetIDR).To(Equal(int64(2000)))
			Expect(p.Name).To(Equal("Tower block one"))
		})

		It("should return ErrNotFound for an unknown id", func() {
			name := "x"
			_, err := service.UpdateProject(ctx, 999, project.UpdateProjectDTO{Name: &name})
			Expect(err).To(Equal(project.ErrNotFound))
		})
	})

	Describe("GetByID", func() {
		It("should return ErrNotFound when missing", func() {
			_, err := service.GetByID(ctx, 42)
			Expect(err).To(Equal(project.ErrNotFound))
		})
	})

	Describe("GetAll", func() {
		It("should propagate repository errors", func() {
			mockRepo.shouldFail = true
			mockRepo.failError = errors.New("database down")

			_, err := service.GetAll(ctx)
			Expect(err).To(HaveOccurred())
		})
	})
})
