package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/construction-backoffice/internal/core/events"
)

// EventHandler turns purchase workflow events into in-app notifications for
// the requester.
type EventHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewEventHandler(service *Service, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

func (h *EventHandler) HandlePurchaseSubmitted(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.PurchaseSubmittedEvent)
	if !ok {
		h.logger.Error("invalid event type for purchase submitted handler", "event_type", event.EventType())
		return fmt.Errorf("expected PurchaseSubmittedEvent, got %T", event)
	}

	subject := fmt.Sprintf("Purchase request #%d submitted", e.RequestID)
	body := fmt.Sprintf("Your purchase request for IDR %d is awaiting approval.", e.AmountIDR)
	return h.service.Notify(ctx, e.UserID, KindPurchaseSubmitted, subject, body)
}

func (h *EventHandler) HandlePurchaseApproved(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.PurchaseApprovedEvent)
	if !ok {
		h.logger.Error("invalid event type for purchase approved handler", "event_type", event.EventType())
		return fmt.Errorf("expected PurchaseApprovedEvent, got %T", event)
	}

	subject := fmt.Sprintf("Purchase request #%d approved", e.RequestID)
	body := fmt.Sprintf("Your purchase request for IDR %d has been approved.", e.AmountIDR)
	return h.service.Notify(ctx, e.UserID, KindPurchaseApproved, subject, body)
}

func (h *EventHandler) HandlePurchaseRejected(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.PurchaseRejectedEvent)
	if !ok {
		h.logger.Error("invalid event type for purchase rejected handler", "event_type", event.EventType())
		return fmt.Errorf("expected PurchaseRejectedEvent, got %T", event)
	}

	subject := fmt.Sprintf("Purchase request #%d rejected", e.RequestID)
	body := fmt.Sprintf("Your purchase request was rejected: %s", e.Reason)
	return h.service.Notify(ctx, e.UserID, KindPurchaseRejected, subject, body)
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypePurchaseSubmitted, h.HandlePurchaseSubmitted)
	eventBus.Subscribe(events.EventTypePurchaseApproved, h.HandlePurchaseApproved)
	eventBus.Subscribe(events.EventTypePurchaseRejected, h.HandlePurchaseRejected)

	h.logger.Info("notification event handlers registered",
		"handlers", []string{
			events.EventTypePurchaseSubmitted,
			events.EventTypePurchaseApproved,
			events.EventTypePurchaseRejected,
		})
}
