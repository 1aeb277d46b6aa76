package purchase_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/frahmantamala/construction-backoffice/internal/authz"
	"github.com/frahmantamala/construction-backoffice/internal/core/events"
	"github.com/frahmantamala/construction-backoffice/internal/purchase"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPurchaseService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Purchase Service Suite")
}

// MockRepository implements purchase.Repository for testing
type MockRepository struct {
	requests map[int64]*purchase.Request
	nextID   int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		requests: make(map[int64]*purchase.Request),
		nextID:   1,
	}
}

func (m *MockRepository) Create(ctx context.Context, r *purchase.Request) error {
	r.ID = m.nextID
	m.nextID++
	m.requests[r.ID] = r
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*purchase.Request, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, purchase.ErrRequestNotFound
	}
	return r, nil
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]*purchase.Request, error) {
	var result []*purchase.Request
	for _, r := range m.requests {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *MockRepository) GetAll(ctx context.Context, limit, offset int) ([]*purchase.Request, error) {
	var result []*purchase.Request
	for _, r := range m.requests {
		result = append(result, r)
	}
	return result, nil
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int64, status string, processedAt time.Time) error {
	r, ok := m.requests[id]
	if !ok {
		return purchase.ErrRequestNotFound
	}
	r.Status = status
	r.ProcessedAt = &processedAt
	return nil
}

// MockBus records published events
type MockBus struct {
	published []events.Event
}

func (m *MockBus) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

func (m *MockBus) EventTypes() []string {
	types := make([]string, len(m.published))
	for i, e := range m.published {
		types[i] = e.EventType()
	}
	return types
}

func principalWith(userID int64, features ...string) *authz.Principal {
	featureMap := make(map[string]bool, len(features))
	for _, f := range features {
		featureMap[f] = true
	}
	return &authz.Principal{
		UserID: userID,
		Snapshot: &authz.Snapshot{
			UserID:   userID,
			Features: featureMap,
			LoadedAt: time.Now(),
		},
	}
}

var _ = Describe("Purchase Service", func() {
	var (
		mockRepo *MockRepository
		bus      *MockBus
		service  *purchase.Service
		ctx      context.Context
	)

	submit := func(p *authz.Principal) *purchase.Request {
		r, err := service.SubmitRequest(ctx, p, purchase.CreateRequestDTO{
			AmountIDR:   2_500_000,
			Description: "Rebar for foundation work",
			Vendor:      "PT Baja Utama",
			NeededBy:    time.Now().AddDate(0, 0, 14),
		})
		Expect(err).NotTo(HaveOccurred())
		return r
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		bus = &MockBus{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = purchase.NewService(mockRepo, bus, logger)
		ctx = context.Background()
	})

	Describe("SubmitRequest", func() {
		It("should create a pending request and publish an event", func() {
			r := submit(principalWith(5))
			Expect(r.ID).To(BeNumerically(">", 0))
			Expect(r.Status).To(Equal(purchase.StatusPendingApproval))
			Expect(bus.EventTypes()).To(ContainElement(events.EventTypePurchaseSubmitted))
		})

		It("should reject an empty description", func() {
			_, err := service.SubmitRequest(ctx, principalWith(5), purchase.CreateRequestDTO{
				AmountIDR: 1000,
				NeededBy:  time.Now(),
			})
			Expect(err).To(HaveOccurred())
			Expect(bus.published).To(BeEmpty())
		})
	})

	Describe("ApproveRequest", func() {
		var request *purchase.Request

		BeforeEach(func() {
			request = submit(principalWith(5))
			bus.published = nil
		})

		It("should approve when the caller holds the approval feature", func() {
			approver := principalWith(9, purchase.FeatureApprove)
			Expect(service.ApproveRequest(ctx, approver, request.ID)).To(Succeed())

			stored, _ := mockRepo.GetByID(ctx, request.ID)
			Expect(stored.Status).To(Equal(purchase.StatusApproved))
			Expect(stored.ProcessedAt).NotTo(BeNil())
			Expect(bus.EventTypes()).To(ContainElement(events.EventTypePurchaseApproved))
		})

		It("should deny a caller without the approval feature", func() {
			err := service.ApproveRequest(ctx, principalWith(9), request.ID)
			Expect(err).To(Equal(purchase.ErrUnauthorizedAccess))
			Expect(bus.published).To(BeEmpty())
		})

		It("should refuse to approve twice", func() {
			approver := principalWith(9, purchase.FeatureApprove)
			Expect(service.ApproveRequest(ctx, approver, request.ID)).To(Succeed())

			err := service.ApproveRequest(ctx, approver, request.ID)
			Expect(err).To(Equal(purchase.ErrInvalidStatus))
		})

		It("should return not found for an unknown id", func() {
			approver := principalWith(9, purchase.FeatureApprove)
			err := service.ApproveRequest(ctx, approver, 999)
			Expect(err).To(Equal(purchase.ErrRequestNotFound))
		})

		It("should let admins approve via the snapshot bypass", func() {
			admin := &authz.Principal{
				UserID:   1,
				Snapshot: &authz.Snapshot{UserID: 1, IsAdmin: true},
			}
			Expect(service.ApproveRequest(ctx, admin, request.ID)).To(Succeed())
		})
	})

	Describe("RejectRequest", func() {
		var request *purchase.Request

		BeforeEach(func() {
			request = submit(principalWith(5))
			bus.published = nil
		})

		It("should reject with a reason and publish an event", func() {
			approver := principalWith(9, purchase.FeatureApprove)
			err := service.RejectRequest(ctx, approver, request.ID, purchase.RejectRequestDTO{
				Reason: "over budget for this quarter",
			})
			Expect(err).NotTo(HaveOccurred())

			stored, _ := mockRepo.GetByID(ctx, request.ID)
			Expect(stored.Status).To(Equal(purchase.StatusRejected))
			Expect(bus.EventTypes()).To(ContainElement(events.EventTypePurchaseRejected))
		})

		It("should require a reason", func() {
			approver := principalWith(9, purchase.FeatureApprove)
			err := service.RejectRequest(ctx, approver, request.ID, purchase.RejectRequestDTO{})
			Expect(err).To(HaveOccurred())
			Expect(bus.published).To(BeEmpty())
		})
	})

	Describe("ListRequests", func() {
		BeforeEach(func() {
			submit(principalWith(5))
			submit(principalWith(6))
		})

		It("should scope a plain requester to their own requests", func() {
			requests, err := service.ListRequests(ctx, principalWith(5), 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(requests).To(HaveLen(1))
			Expect(requests[0].UserID).To(Equal(int64(5)))
		})

		It("should show everything to a view-all holder", func() {
			viewer := principalWith(9, purchase.FeatureViewAll)
			requests, err := service.ListRequests(ctx, viewer, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(requests).To(HaveLen(2))
		})
	})

	Describe("GetRequestByID", func() {
		var request *purchase.Request

		BeforeEach(func() {
			request = submit(principalWith(5))
		})

		It("should allow the owner", func() {
			r, err := service.GetRequestByID(ctx, principalWith(5), request.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.ID).To(Equal(request.ID))
		})

		It("should deny a stranger", func() {
			_, err := service.GetRequestByID(ctx, principalWith(6), request.ID)
			Expect(err).To(Equal(purchase.ErrUnauthorizedAccess))
		})

		It("should allow a view-all holder", func() {
			viewer := principalWith(9, purchase.FeatureViewAll)
			_, err := service.GetRequestByID(ctx, viewer, request.ID)
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
