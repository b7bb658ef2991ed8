package handler

import (
	"context"
	"time"

	orderapp "github.com/covu/backend/internal/application/order"
	"github.com/covu/backend/internal/domain/order"
	"github.com/covu/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles the order lifecycle API endpoints. The acting
// user comes from the authenticated request; the service enforces which
// side of the order may perform each transition.
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrderRequest represents a checkout request
type CreateOrderRequest struct {
	ProductID       string `json:"product_id" binding:"required,uuid"`
	Quantity        int    `json:"quantity" binding:"required,min=1"`
	DeliveryAddress string `json:"delivery_address" binding:"required,min=1,max=500"`
}

// CancelOrderRequest represents a cancellation request
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                 string     `json:"id"`
	OrderNumber        string     `json:"order_number"`
	BuyerID            string     `json:"buyer_id"`
	SellerID           string     `json:"seller_id"`
	ProductID          string     `json:"product_id"`
	ProductName        string     `json:"product_name"`
	Quantity           int        `json:"quantity"`
	ProductPrice       float64    `json:"product_price"`
	DeliveryFee        float64    `json:"delivery_fee"`
	TotalAmount        float64    `json:"total_amount"`
	DeliveryAddress    string     `json:"delivery_address"`
	Status             string     `json:"status"`
	CancelledBy        string     `json:"cancelled_by,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	AcceptedAt         *time.Time `json:"accepted_at,omitempty"`
	DeliveredAt        *time.Time `json:"delivered_at,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Create places an order, debiting the buyer's wallet into escrow
func (h *OrderHandler) Create(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	o, err := h.orderService.CreateOrder(c.Request.Context(), orderapp.CreateOrderRequest{
		BuyerID:         buyerID,
		ProductID:       productID,
		Quantity:        req.Quantity,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toOrderResponse(o))
}

// GetByID returns an order visible to the caller
func (h *OrderHandler) GetByID(c *gin.Context) {
	h.act(c, h.orderService.GetOrder)
}

// Accept moves a pending order to ACCEPTED (seller only)
func (h *OrderHandler) Accept(c *gin.Context) {
	h.act(c, h.orderService.AcceptOrder)
}

// Deliver moves an accepted order to DELIVERED (seller only)
func (h *OrderHandler) Deliver(c *gin.Context) {
	h.act(c, h.orderService.DeliverOrder)
}

// Confirm moves a delivered order to CONFIRMED and releases the escrow
// to the seller (buyer only)
func (h *OrderHandler) Confirm(c *gin.Context) {
	h.act(c, h.orderService.ConfirmOrder)
}

// Cancel cancels a pending order and refunds the buyer
func (h *OrderHandler) Cancel(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	o, err := h.orderService.CancelOrder(c.Request.Context(), orderID, actorID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOrderResponse(o))
}

// ListPurchases returns the caller's orders as a buyer
func (h *OrderHandler) ListPurchases(c *gin.Context) {
	h.list(c, h.orderService.ListBuyerOrders)
}

// ListSales returns the caller's orders as a seller
func (h *OrderHandler) ListSales(c *gin.Context) {
	h.list(c, h.orderService.ListSellerOrders)
}

// act runs a transition keyed by order ID and acting user
func (h *OrderHandler) act(c *gin.Context, fn func(ctx context.Context, orderID, actorID uuid.UUID) (*order.Order, error)) {
	actorID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	o, err := fn(c.Request.Context(), orderID, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOrderResponse(o))
}

func (h *OrderHandler) list(c *gin.Context, fn func(ctx context.Context, userID uuid.UUID, filter shared.Filter) (shared.Paginated[order.Order], error)) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}

	page, err := fn(c.Request.Context(), userID, listFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]OrderResponse, len(page.Items))
	for i := range page.Items {
		items[i] = toOrderResponse(&page.Items[i])
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

func toOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:                 o.ID.String(),
		OrderNumber:        o.OrderNumber,
		BuyerID:            o.BuyerID.String(),
		SellerID:           o.SellerID.String(),
		ProductID:          o.ProductID.String(),
		ProductName:        o.ProductName,
		Quantity:           o.Quantity,
		ProductPrice:       o.ProductPrice.Amount().InexactFloat64(),
		DeliveryFee:        o.DeliveryFee.Amount().InexactFloat64(),
		TotalAmount:        o.TotalAmount.Amount().InexactFloat64(),
		DeliveryAddress:    o.DeliveryAddress,
		Status:             string(o.Status),
		CancellationReason: o.CancellationReason,
		AcceptedAt:         o.AcceptedAt,
		DeliveredAt:        o.DeliveredAt,
		ConfirmedAt:        o.ConfirmedAt,
		CancelledAt:        o.CancelledAt,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if o.CancelledBy != nil {
		resp.CancelledBy = string(*o.CancelledBy)
	}
	return resp
}
