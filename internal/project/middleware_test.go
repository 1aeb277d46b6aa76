package project_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/construction-backoffice/internal/authz"
	"github.com/frahmantamala/construction-backoffice/internal/project"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockAccessChecker implements project.AccessChecker for testing
type MockAccessChecker struct {
	grants     map[[2]int64]bool
	shouldFail bool
}

func NewMockAccessChecker() *MockAccessChecker {
	return &MockAccessChecker{grants: make(map[[2]int64]bool)}
}

func (m *MockAccessChecker) Grant(userID, projectID int64) {
	m.grants[[2]int64{userID, projectID}] = true
}

func (m *MockAccessChecker) HasAccess(ctx context.Context, userID, projectID int64) (bool, error) {
	if m.shouldFail {
		return false, errors.New("lookup failed")
	}
	return m.grants[[2]int64{userID, projectID}], nil
}

var _ = Describe("Project Access Middleware", func() {
	var (
		checker    *MockAccessChecker
		middleware *project.AccessMiddleware
		router     chi.Router
	)

	serve := func(principal *authz.Principal, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if principal != nil {
			req = req.WithContext(authz.ContextWithPrincipal(req.Context(), principal))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		checker = NewMockAccessChecker()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		middleware = project.NewAccessMiddleware(checker, logger)

		router = chi.NewRouter()
		router.With(middleware.RequireProjectAccess()).Get("/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	It("should deny without a principal", func() {
		rec := serve(nil, "/projects/7")
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should let admins through without a grant row", func() {
		admin := &authz.Principal{
			UserID:   1,
			Snapshot: &authz.Snapshot{UserID: 1, IsAdmin: true},
		}
		rec := serve(admin, "/projects/7")
		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	It("should allow a granted user", func() {
		checker.Grant(5, 7)
		worker := &authz.Principal{
			UserID:   5,
			Snapshot: &authz.Snapshot{UserID: 5},
		}
		rec := serve(worker, "/projects/7")
		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	It("should deny a user without a grant", func() {
		worker := &authz.Principal{
			UserID:   5,
			Snapshot: &authz.Snapshot{UserID: 5},
		}
		rec := serve(worker, "/projects/7")
		Expect(rec.Code).To(Equal(http.StatusForbidden))
	})

	It("should deny when the lookup fails", func() {
		checker.Grant(5, 7)
		checker.shouldFail = true
		worker := &authz.Principal{
			UserID:   5,
			Snapshot: &authz.Snapshot{UserID: 5},
		}
		rec := serve(worker, "/projects/7")
		Expect(rec.Code).To(Equal(http.StatusForbidden))
	})
})
