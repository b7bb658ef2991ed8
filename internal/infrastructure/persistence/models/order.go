package models

import (
	"time"

	"github.com/covu/backend/internal/domain/order"
	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate.
// Product name, price and delivery fee are stored as snapshots so catalog
// edits after checkout never change the financial record.
type OrderModel struct {
	AggregateModel
	OrderNumber        string             `gorm:"type:varchar(30);not null;uniqueIndex"`
	BuyerID            uuid.UUID          `gorm:"type:uuid;not null;index:idx_orders_buyer"`
	SellerID           uuid.UUID          `gorm:"type:uuid;not null;index:idx_orders_seller"`
	ProductID          uuid.UUID          `gorm:"type:uuid;not null"`
	ProductName        string             `gorm:"type:varchar(200);not null"`
	Quantity           int                `gorm:"not null"`
	ProductPrice       decimal.Decimal    `gorm:"type:decimal(12,2);not null"`
	DeliveryFee        decimal.Decimal    `gorm:"type:decimal(12,2);not null"`
	TotalAmount        decimal.Decimal    `gorm:"type:decimal(12,2);not null"`
	DeliveryAddress    string             `gorm:"type:varchar(500)"`
	Status             order.Status       `gorm:"type:varchar(20);not null;index:idx_orders_status"`
	CancelledBy        *order.CancelParty `gorm:"type:varchar(10)"`
	CancellationReason string             `gorm:"type:varchar(500)"`
	AcceptedAt         *time.Time
	DeliveredAt        *time.Time
	ConfirmedAt        *time.Time
	CancelledAt        *time.Time
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate.
func (m *OrderModel) ToDomain() *order.Order {
	return &order.Order{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		OrderNumber:        m.OrderNumber,
		BuyerID:            m.BuyerID,
		SellerID:           m.SellerID,
		ProductID:          m.ProductID,
		ProductName:        m.ProductName,
		Quantity:           m.Quantity,
		ProductPrice:       valueobject.NewMoneyNGN(m.ProductPrice),
		DeliveryFee:        valueobject.NewMoneyNGN(m.DeliveryFee),
		TotalAmount:        valueobject.NewMoneyNGN(m.TotalAmount),
		DeliveryAddress:    m.DeliveryAddress,
		Status:             m.Status,
		CancelledBy:        m.CancelledBy,
		CancellationReason: m.CancellationReason,
		AcceptedAt:         m.AcceptedAt,
		DeliveredAt:        m.DeliveredAt,
		ConfirmedAt:        m.ConfirmedAt,
		CancelledAt:        m.CancelledAt,
	}
}

// FromDomain populates the persistence model from a domain Order aggregate.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.BuyerID = o.BuyerID
	m.SellerID = o.SellerID
	m.ProductID = o.ProductID
	m.ProductName = o.ProductName
	m.Quantity = o.Quantity
	m.ProductPrice = o.ProductPrice.Amount()
	m.DeliveryFee = o.DeliveryFee.Amount()
	m.TotalAmount = o.TotalAmount.Amount()
	m.DeliveryAddress = o.DeliveryAddress
	m.Status = o.Status
	m.CancelledBy = o.CancelledBy
	m.CancellationReason = o.CancellationReason
	m.AcceptedAt = o.AcceptedAt
	m.DeliveredAt = o.DeliveredAt
	m.ConfirmedAt = o.ConfirmedAt
	m.CancelledAt = o.CancelledAt
}

// OrderModelFromDomain creates a new persistence model from a domain Order aggregate.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
