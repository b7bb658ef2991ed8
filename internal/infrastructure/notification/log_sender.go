package notification

import (
	"context"

	"github.com/covu/backend/internal/domain/notification"
	"go.uber.org/zap"
)

// LogSender writes notifications to the application log. It stands in
// for a real delivery channel (push, SMS, email) until one is wired up,
// and is always safe to retry.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a log-backed notification sender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the notification and reports success
func (s *LogSender) Send(ctx context.Context, n *notification.Notification) error {
	fields := []zap.Field{
		zap.String("notification_id", n.ID.String()),
		zap.String("user_id", n.UserID.String()),
		zap.String("type", n.Type.String()),
		zap.String("title", n.Title),
	}
	if n.OrderID != nil {
		fields = append(fields, zap.String("order_id", n.OrderID.String()))
	}
	s.logger.Info("Notification delivered", fields...)
	return nil
}
