package purchase

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/construction-backoffice/internal/authz"
	"github.com/frahmantamala/construction-backoffice/internal/core/events"
)

// Repository defines the data access methods for purchase requests
type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id int64) (*Request, error)
	GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]*Request, error)
	GetAll(ctx context.Context, limit, offset int) ([]*Request, error)
	UpdateStatus(ctx context.Context, id int64, status string, processedAt time.Time) error
}

// EventPublisher is satisfied by the in-process event bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles the purchase request workflow
type Service struct {
	repo   Repository
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo Repository, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// SubmitRequest creates a pending request for the caller and announces it.
func (s *Service) SubmitRequest(ctx context.Context, principal *authz.Principal, dto CreateRequestDTO) (*Request, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("purchase request validation failed", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	now := time.Now()
	request := &Request{
		UserID:      principal.UserID,
		ProjectID:   dto.ProjectID,
		AmountIDR:   dto.AmountIDR,
		Description: dto.Description,
		Vendor:      dto.Vendor,
		Status:      StatusPendingApproval,
		NeededBy:    dto.NeededBy,
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		s.logger.Error("failed to create purchase request", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewPurchaseSubmittedEvent(request.ID, request.UserID, request.AmountIDR))
	}

	s.logger.Info("purchase request submitted",
		"request_id", request.ID,
		"user_id", principal.UserID,
		"amount", dto.AmountIDR)

	return request, nil
}

// GetRequestByID returns one request. Requesters see their own; holders of
// the view-all feature see everything.
func (s *Service) GetRequestByID(ctx context.Context, principal *authz.Principal, id int64) (*Request, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get purchase request", "error", err, "request_id", id)
		return nil, ErrRequestNotFound
	}

	if request.UserID != principal.UserID && !principal.HasFeature(FeatureViewAll) {
		s.logger.Warn("unauthorized access to purchase request",
			"request_id", id, "user_id", principal.UserID, "owner_id", request.UserID)
		return nil, ErrUnauthorizedAccess
	}

	return request, nil
}

// ListRequests scopes the listing by the caller's visibility: view-all
// holders get every request, everyone else gets their own.
func (s *Service) ListRequests(ctx context.Context, principal *authz.Principal, limit, offset int) ([]*Request, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	if principal.HasFeature(FeatureViewAll) {
		return s.repo.GetAll(ctx, limit, offset)
	}
	return s.repo.GetByUserID(ctx, principal.UserID, limit, offset)
}

func (s *Service) ApproveRequest(ctx context.Context, principal *authz.Principal, id int64) error {
	if !principal.HasFeature(FeatureApprove) {
		s.logger.Warn("approve denied: feature not visible",
			"request_id", id, "user_id", principal.UserID)
		return ErrUnauthorizedAccess
	}

	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrRequestNotFound
	}
	if !request.CanBeProcessed() {
		s.logger.Warn("cannot approve purchase request in current status",
			"request_id", id, "status", request.Status)
		return ErrInvalidStatus
	}

	processedAt := time.Now()
	if err := s.repo.UpdateStatus(ctx, id, StatusApproved, processedAt); err != nil {
		s.logger.Error("failed to approve purchase request", "error", err, "request_id", id)
		return err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewPurchaseApprovedEvent(id, request.UserID, principal.UserID, request.AmountIDR))
	}

	s.logger.Info("purchase request approved",
		"request_id", id,
		"approver_id", principal.UserID,
		"amount", request.AmountIDR)

	return nil
}

func (s *Service) RejectRequest(ctx context.Context, principal *authz.Principal, id int64, dto RejectRequestDTO) error {
	if !principal.HasFeature(FeatureApprove) {
		s.logger.Warn("reject denied: feature not visible",
			"request_id", id, "user_id", principal.UserID)
		return ErrUnauthorizedAccess
	}
	if err := dto.Validate(); err != nil {
		return err
	}

	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrRequestNotFound
	}
	if !request.CanBeProcessed() {
		s.logger.Warn("cannot reject purchase request in current status",
			"request_id", id, "status", request.Status)
		return ErrInvalidStatus
	}

	processedAt := time.Now()
	if err := s.repo.UpdateStatus(ctx, id, StatusRejected, processedAt); err != nil {
		s.logger.Error("failed to reject purchase request", "error", err, "request_id", id)
		return err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewPurchaseRejectedEvent(id, request.UserID, principal.UserID, dto.Reason))
	}

	s.logger.Info("purchase request rejected",
		"request_id", id,
		"approver_id", principal.UserID,
		"reason", dto.Reason)

	return nil
}
