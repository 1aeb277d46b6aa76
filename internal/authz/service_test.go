package authz_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/frahmantamala/construction-backoffice/internal/authz"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockEditorRepo implements authz.RepositoryAPI for editor tests
type MockEditorRepo struct {
	*MockStore
	matrix        []authz.MatrixEntry
	projectAccess map[int64][]int64
	failReplace   bool
}

func NewMockEditorRepo() *MockEditorRepo {
	return &MockEditorRepo{
		MockStore:     NewMockStore(),
		projectAccess: make(map[int64][]int64),
	}
}

func (m *MockEditorRepo) GetMatrix(ctx context.Context) ([]authz.MatrixEntry, error) {
	return m.matrix, nil
}

func (m *MockEditorRepo) ReplaceMatrix(ctx context.Context, entries []authz.MatrixEntry) error {
	if m.failReplace {
		return errStore
	}
	m.matrix = entries
	return nil
}

func (m *MockEditorRepo) ReplaceUserVisibility(ctx context.Context, userID int64, codes []string) error {
	if m.failReplace {
		return errStore
	}
	m.visibility[userID] = codes
	return nil
}

func (m *MockEditorRepo) GetProjectAccess(ctx context.Context, projectID int64) ([]int64, error) {
	return m.projectAccess[projectID], nil
}

func (m *MockEditorRepo) ReplaceProjectAccess(ctx context.Context, projectID int64, userIDs []int64) error {
	if m.failReplace {
		return errStore
	}
	m.projectAccess[projectID] = userIDs
	return nil
}

// MockSessionRecorder records invalidation calls
type MockSessionRecorder struct {
	invalidated    []int64
	invalidatedAll int
}

func (m *MockSessionRecorder) Invalidate(userID int64) {
	m.invalidated = append(m.invalidated, userID)
}

func (m *MockSessionRecorder) InvalidateAll() {
	m.invalidatedAll++
}

var _ = Describe("Authz Service", func() {
	var (
		repo     *MockEditorRepo
		sessions *MockSessionRecorder
		service  *authz.Service
		ctx      context.Context
	)

	BeforeEach(func() {
		repo = NewMockEditorRepo()
		sessions = &MockSessionRecorder{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = authz.NewService(repo, sessions, logger)
		ctx = context.Background()

		repo.activeCodes = []string{"projects.view", "purchasing.approve"}
	})

	Describe("SaveMatrix", func() {
		It("should store the grid and drop every cached session", func() {
			err := service.SaveMatrix(ctx, authz.SaveMatrixDTO{
				Entries: []authz.MatrixEntryDTO{
					{Role: "manager", FeatureCode: "projects.view", CanAccess: true},
					{Role: "manager", FeatureCode: "purchasing.approve", CanAccess: false},
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.matrix).To(HaveLen(2))
			Expect(sessions.invalidatedAll).To(Equal(1))
		})

		It("should reject an unknown role", func() {
			err := service.SaveMatrix(ctx, authz.SaveMatrixDTO{
				Entries: []authz.MatrixEntryDTO{
					{Role: "superuser", FeatureCode: "projects.view", CanAccess: true},
				},
			})
			Expect(err).To(BeAssignableToTypeOf(authz.ValidationError{}))
			Expect(sessions.invalidatedAll).To(BeZero())
		})

		It("should reject an unknown feature code", func() {
			err := service.SaveMatrix(ctx, authz.SaveMatrixDTO{
				Entries: []authz.MatrixEntryDTO{
					{Role: "manager", FeatureCode: "no.such.feature", CanAccess: true},
				},
			})
			Expect(err).To(BeAssignableToTypeOf(authz.ValidationError{}))
		})

		It("should reject duplicate cells", func() {
			err := service.SaveMatrix(ctx, authz.SaveMatrixDTO{
				Entries: []authz.MatrixEntryDTO{
					{Role: "manager", FeatureCode: "projects.view", CanAccess: true},
					{Role: "manager", FeatureCode: "projects.view", CanAccess: false},
				},
			})
			Expect(err).To(BeAssignableToTypeOf(authz.ValidationError{}))
		})

		It("should not invalidate sessions when the store rejects the save", func() {
			repo.failReplace = true
			err := service.SaveMatrix(ctx, authz.SaveMatrixDTO{
				Entries: []authz.MatrixEntryDTO{
					{Role: "manager", FeatureCode: "projects.view", CanAccess: true},
				},
			})
			Expect(err).To(HaveOccurred())
			Expect(sessions.invalidatedAll).To(BeZero())
		})
	})

	Describe("SaveUserVisibility", func() {
		It("should store the allow list and invalidate only that user", func() {
			err := service.SaveUserVisibility(ctx, 5, authz.SaveVisibilityDTO{
				FeatureCodes: []string{"projects.view"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.visibility[5]).To(Equal([]string{"projects.view"}))
			Expect(sessions.invalidated).To(Equal([]int64{5}))
			Expect(sessions.invalidatedAll).To(BeZero())
		})

		It("should accept an empty list as a full clear", func() {
			repo.visibility[5] = []string{"projects.view"}

			err := service.SaveUserVisibility(ctx, 5, authz.SaveVisibilityDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.visibility[5]).To(BeEmpty())
		})

		It("should reject inactive feature codes", func() {
			err := service.SaveUserVisibility(ctx, 5, authz.SaveVisibilityDTO{
				FeatureCodes: []string{"reports.legacy"},
			})
			Expect(err).To(BeAssignableToTypeOf(authz.ValidationError{}))
			Expect(sessions.invalidated).To(BeEmpty())
		})
	})

	Describe("SaveProjectAccess", func() {
		It("should replace the user set without touching sessions", func() {
			err := service.SaveProjectAccess(ctx, 3, authz.SaveProjectAccessDTO{
				UserIDs: []int64{5, 6},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.projectAccess[3]).To(Equal([]int64{5, 6}))
			Expect(sessions.invalidated).To(BeEmpty())
			Expect(sessions.invalidatedAll).To(BeZero())
		})

		It("should reject non-positive user ids", func() {
			err := service.SaveProjectAccess(ctx, 3, authz.SaveProjectAccessDTO{
				UserIDs: []int64{0},
			})
			Expect(err).To(BeAssignableToTypeOf(authz.ValidationError{}))
		})
	})

	Describe("IsAdmin", func() {
		It("should recognize the admin role", func() {
			repo.roles[1] = []authz.Role{authz.RoleAdmin}
			Expect(service.IsAdmin(ctx, 1)).To(BeTrue())
		})

		It("should deny when the lookup fails", func() {
			repo.failRoles = true
			Expect(service.IsAdmin(ctx, 1)).To(BeFalse())
		})
	})
})
