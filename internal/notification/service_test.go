package notification_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/frahmantamala/construction-backoffice/internal/core/events"
	"github.com/frahmantamala/construction-backoffice/internal/notification"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestNotificationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Service Suite")
}

// MockRepository implements notification.Repository for testing
type MockRepository struct {
	notifications map[int64]*notification.Notification
	nextID        int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		notifications: make(map[int64]*notification.Notification),
		nextID:        1,
	}
}

func (m *MockRepository) Create(ctx context.Context, n *notification.Notification) error {
	n.ID = m.nextID
	n.CreatedAt = time.Now()
	m.nextID++
	m.notifications[n.ID] = n
	return nil
}

func (m *MockRepository) GetForUser(ctx context.Context, userID int64, unreadOnly bool) ([]*notification.Notification, error) {
	var result []*notification.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead() {
			continue
		}
		result = append(result, n)
	}
	return result, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*notification.Notification, error) {
	return m.notifications[id], nil
}

func (m *MockRepository) MarkRead(ctx context.Context, id int64) error {
	if n, ok := m.notifications[id]; ok {
		now := time.Now()
		n.ReadAt = &now
	}
	return nil
}

var _ = Describe("Notification Service", func() {
	var (
		mockRepo *MockRepository
		service  *notification.Service
		handler  *notification.EventHandler
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = notification.NewService(mockRepo, logger)
		handler = notification.NewEventHandler(service, logger)
		ctx = context.Background()
	})

	Describe("MarkRead", func() {
		BeforeEach(func() {
			Expect(service.Notify(ctx, 5, notification.KindPurchaseApproved, "approved", "")).To(Succeed())
		})

		It("should flag the recipient's notification as read", func() {
			Expect(service.MarkRead(ctx, 5, 1)).To(Succeed())
			Expect(mockRepo.notifications[1].IsRead()).To(BeTrue())
		})

		It("should hide other users' notifications", func() {
			err := service.MarkRead(ctx, 6, 1)
			Expect(err).To(Equal(notification.ErrNotFound))
			Expect(mockRepo.notifications[1].IsRead()).To(BeFalse())
		})

		It("should be idempotent", func() {
			Expect(service.MarkRead(ctx, 5, 1)).To(Succeed())
			Expect(service.MarkRead(ctx, 5, 1)).To(Succeed())
		})
	})

	Describe("GetForUser", func() {
		BeforeEach(func() {
			Expect(service.Notify(ctx, 5, notification.KindPurchaseSubmitted, "one", "")).To(Succeed())
			Expect(service.Notify(ctx, 5, notification.KindPurchaseApproved, "two", "")).To(Succeed())
			Expect(service.MarkRead(ctx, 5, 1)).To(Succeed())
		})

		It("should filter to unread when asked", func() {
			unread, err := service.GetForUser(ctx, 5, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(unread).To(HaveLen(1))
			Expect(unread[0].Subject).To(Equal("two"))
		})

		It("should return everything otherwise", func() {
			all, err := service.GetForUser(ctx, 5, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
		})
	})

	Describe("Purchase event handlers", func() {
		It("should notify the requester on approval", func() {
			event := events.NewPurchaseApprovedEvent(11, 5, 9, 2_500_000)
			Expect(handler.HandlePurchaseApproved(ctx, event)).To(Succeed())

			notifications, err := service.GetForUser(ctx, 5, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(notifications).To(HaveLen(1))
			Expect(notifications[0].Kind).To(Equal(notification.KindPurchaseApproved))
		})

		It("should carry the rejection reason into the body", func() {
			event := events.NewPurchaseRejectedEvent(11, 5, 9, "over budget")
			Expect(handler.HandlePurchaseRejected(ctx, event)).To(Succeed())

			notifications, err := service.GetForUser(ctx, 5, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(notifications[0].Body).To(ContainSubstring("over budget"))
		})

		It("should reject a mismatched event type", func() {
			event := events.NewPurchaseSubmittedEvent(11, 5, 100)
			Expect(handler.HandlePurchaseApproved(ctx, event)).NotTo(Succeed())
		})
	})
})
