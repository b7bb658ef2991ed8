package models

import (
	"time"

	"github.com/covu/backend/internal/domain/notification"
	"github.com/google/uuid"
)

// NotificationModel is the persistence model for the Notification entity.
type NotificationModel struct {
	BaseModel
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_notifications_user_time,priority:1"`
	OrderID   *uuid.UUID        `gorm:"type:uuid;index:idx_notifications_order"`
	Type      notification.Type `gorm:"type:varchar(30);not null"`
	Title     string            `gorm:"type:varchar(200);not null"`
	Message   string            `gorm:"type:varchar(1000);not null"`
	IsRead    bool              `gorm:"not null;default:false;index:idx_notifications_user_unread"`
	SentAt    *time.Time
	LastError string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification entity.
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		OrderID:    m.OrderID,
		Type:       m.Type,
		Title:      m.Title,
		Message:    m.Message,
		IsRead:     m.IsRead,
		SentAt:     m.SentAt,
		LastError:  m.LastError,
	}
}

// FromDomain populates the persistence model from a domain Notification entity.
func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.UserID = n.UserID
	m.OrderID = n.OrderID
	m.Type = n.Type
	m.Title = n.Title
	m.Message = n.Message
	m.IsRead = n.IsRead
	m.SentAt = n.SentAt
	m.LastError = n.LastError
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification entity.
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}
