package notification

import (
	"context"
	"fmt"
	"log/slog"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetForUser(ctx context.Context, userID int64, unreadOnly bool) ([]*Notification, error)
	GetByID(ctx context.Context, id int64) (*Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Notify(ctx context.Context, userID int64, kind, subject, body string) error {
	n := &Notification{
		UserID:  userID,
		Kind:    kind,
		Subject: subject,
		Body:    body,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Debug("notification created", "user_id", userID, "kind", kind)
	return nil
}

func (s *Service) GetForUser(ctx context.Context, userID int64, unreadOnly bool) ([]*Notification, error) {
	notifications, err := s.repo.GetForUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags one notification as read. Only the recipient may do so.
func (s *Service) MarkRead(ctx context.Context, userID, notificationID int64) error {
	n, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("failed to load notification: %w", err)
	}
	if n == nil || n.UserID != userID {
		return ErrNotFound
	}
	if n.IsRead() {
		return nil
	}
	if err := s.repo.MarkRead(ctx, notificationID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
