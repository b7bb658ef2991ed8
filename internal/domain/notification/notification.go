package notification

import (
	"context"
	"time"

	"github.com/covu/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Type classifies what a notification is about
type Type string

const (
	TypeOrderCreated    Type = "ORDER_CREATED"
	TypeOrderAccepted   Type = "ORDER_ACCEPTED"
	TypeOrderDelivered  Type = "ORDER_DELIVERED"
	TypeOrderConfirmed  Type = "ORDER_CONFIRMED"
	TypeOrderCancelled  Type = "ORDER_CANCELLED"
	TypePaymentReceived Type = "PAYMENT_RECEIVED"
	TypeRefundIssued    Type = "REFUND_ISSUED"
)

// IsValid returns true if the notification type is valid
func (t Type) IsValid() bool {
	switch t {
	case TypeOrderCreated, TypeOrderAccepted, TypeOrderDelivered,
		TypeOrderConfirmed, TypeOrderCancelled, TypePaymentReceived, TypeRefundIssued:
		return true
	}
	return false
}

// String returns the string representation of Type
func (t Type) String() string {
	return string(t)
}

// Notification is a message for a user about something that happened to
// one of their orders or their wallet. Delivery is best effort and never
// part of the financial transaction that triggered it.
type Notification struct {
	shared.BaseEntity
	UserID    uuid.UUID
	OrderID   *uuid.UUID
	Type      Type
	Title     string
	Message   string
	IsRead    bool
	SentAt    *time.Time
	LastError string
}

// NewNotification creates an unread, unsent notification
func NewNotification(userID uuid.UUID, notifType Type, title, message string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if !notifType.IsValid() {
		return nil, shared.NewDomainError("INVALID_NOTIFICATION_TYPE", "Invalid notification type")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Type:       notifType,
		Title:      title,
		Message:    message,
	}, nil
}

// WithOrder links the notification to the order it is about
func (n *Notification) WithOrder(orderID uuid.UUID) *Notification {
	n.OrderID = &orderID
	return n
}

// MarkSent records successful delivery
func (n *Notification) MarkSent() {
	now := time.Now()
	n.SentAt = &now
	n.LastError = ""
	n.UpdatedAt = now
}

// MarkFailed records a delivery failure
func (n *Notification) MarkFailed(errMsg string) {
	n.LastError = errMsg
	n.UpdatedAt = time.Now()
}

// MarkRead marks the notification as read by the user
func (n *Notification) MarkRead() {
	n.IsRead = true
	n.UpdatedAt = time.Now()
}

// Repository defines the persistence interface for notifications
type Repository interface {
	Save(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// Sender delivers a notification to the user through an external channel.
// Implementations must be safe to retry.
type Sender interface {
	Send(ctx context.Context, n *Notification) error
}
