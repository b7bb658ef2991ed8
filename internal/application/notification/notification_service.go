package notification

import (
	"context"
	"fmt"

	"github.com/covu/backend/internal/domain/notification"
	"github.com/covu/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service records notifications and hands them to the delivery channel.
// A delivery failure is reported to the caller so the outbox can retry,
// but the notification row itself stays behind as the user's history.
type Service struct {
	repo   notification.Repository
	sender notification.Sender
	logger *zap.Logger
}

// NewService creates a new notification service
func NewService(repo notification.Repository, sender notification.Sender, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		sender: sender,
		logger: logger,
	}
}

// Notify persists a notification and attempts delivery
func (s *Service) Notify(ctx context.Context, userID uuid.UUID, notifType notification.Type, orderID uuid.UUID, title, message string) error {
	n, err := notification.NewNotification(userID, notifType, title, message)
	if err != nil {
		return err
	}
	n.WithOrder(orderID)

	if sendErr := s.sender.Send(ctx, n); sendErr != nil {
		n.MarkFailed(sendErr.Error())
		if saveErr := s.repo.Save(ctx, n); saveErr != nil {
			s.logger.Error("Failed to persist notification after send failure",
				zap.Error(saveErr), zap.String("user_id", userID.String()))
		}
		return fmt.Errorf("notification delivery failed: %w", sendErr)
	}

	n.MarkSent()
	return s.repo.Save(ctx, n)
}

// List returns a page of a user's notifications
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) (shared.Paginated[notification.Notification], error) {
	items, total, err := s.repo.FindByUser(ctx, userID, filter)
	if err != nil {
		return shared.Paginated[notification.Notification]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// UnreadCount returns how many notifications the user has not read
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead marks one notification as read
func (s *Service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return shared.ErrPermissionDenied
	}
	n.MarkRead()
	return s.repo.Save(ctx, n)
}

// MarkAllRead marks all of a user's notifications as read
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}
