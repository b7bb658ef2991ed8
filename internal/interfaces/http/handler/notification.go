package handler

import (
	"time"

	notifapp "github.com/covu/backend/internal/application/notification"
	"github.com/covu/backend/internal/domain/notification"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationHandler handles notification API endpoints
type NotificationHandler struct {
	BaseHandler
	notificationService *notifapp.Service
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *notifapp.Service) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        string     `json:"id"`
	OrderID   string     `json:"order_id,omitempty"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"is_read"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// UnreadCountResponse carries the unread notification count
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// List returns a page of the caller's notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}

	page, err := h.notificationService.List(c.Request.Context(), userID, listFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]NotificationResponse, len(page.Items))
	for i := range page.Items {
		items[i] = toNotificationResponse(&page.Items[i])
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// UnreadCount returns how many of the caller's notifications are unread
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, UnreadCountResponse{Count: count})
}

// MarkRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID format")
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), userID, notificationID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkAllRead marks all of the caller's notifications as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func toNotificationResponse(n *notification.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type.String(),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		SentAt:    n.SentAt,
		CreatedAt: n.CreatedAt,
	}
	if n.OrderID != nil {
		resp.OrderID = n.OrderID.String()
	}
	return resp
}
