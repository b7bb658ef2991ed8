package models

import (
	"github.com/covu/backend/internal/domain/catalog"
	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StoreModel is the persistence model for the Store aggregate.
type StoreModel struct {
	AggregateModel
	SellerID             uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Name                 string          `gorm:"type:varchar(200);not null"`
	City                 string          `gorm:"type:varchar(100);not null"`
	State                string          `gorm:"type:varchar(100);not null"`
	DeliveryWithinCity   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DeliveryOutsideCity  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DeliveryOutsideState decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsActive             bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store aggregate.
func (m *StoreModel) ToDomain() *catalog.Store {
	return &catalog.Store{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		SellerID:             m.SellerID,
		Name:                 m.Name,
		City:                 m.City,
		State:                m.State,
		DeliveryWithinCity:   valueobject.NewMoneyNGN(m.DeliveryWithinCity),
		DeliveryOutsideCity:  valueobject.NewMoneyNGN(m.DeliveryOutsideCity),
		DeliveryOutsideState: valueobject.NewMoneyNGN(m.DeliveryOutsideState),
		IsActive:             m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Store aggregate.
func (m *StoreModel) FromDomain(s *catalog.Store) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.SellerID = s.SellerID
	m.Name = s.Name
	m.City = s.City
	m.State = s.State
	m.DeliveryWithinCity = s.DeliveryWithinCity.Amount()
	m.DeliveryOutsideCity = s.DeliveryOutsideCity.Amount()
	m.DeliveryOutsideState = s.DeliveryOutsideState.Amount()
	m.IsActive = s.IsActive
}

// StoreModelFromDomain creates a new persistence model from a domain Store aggregate.
func StoreModelFromDomain(s *catalog.Store) *StoreModel {
	m := &StoreModel{}
	m.FromDomain(s)
	return m
}

// ProductModel is the persistence model for the Product aggregate.
type ProductModel struct {
	AggregateModel
	StoreID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_products_store"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:varchar(1000)"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product aggregate.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		StoreID:     m.StoreID,
		Name:        m.Name,
		Description: m.Description,
		Price:       valueobject.NewMoneyNGN(m.Price),
		IsActive:    m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Product aggregate.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.StoreID = p.StoreID
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price.Amount()
	m.IsActive = p.IsActive
}

// ProductModelFromDomain creates a new persistence model from a domain Product aggregate.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
