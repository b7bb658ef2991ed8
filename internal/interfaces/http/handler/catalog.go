package handler

import (
	"time"

	catalogapp "github.com/covu/backend/internal/application/catalog"
	"github.com/covu/backend/internal/domain/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler handles product and store browse endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.Service) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"store_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// StoreResponse represents a store in API responses
type StoreResponse struct {
	ID                  string  `json:"id"`
	SellerID            string  `json:"seller_id"`
	Name                string  `json:"name"`
	City                string  `json:"city"`
	State               string  `json:"state"`
	DeliveryWithinCity  float64 `json:"delivery_within_city"`
	DeliveryOutsideCity float64 `json:"delivery_outside_city"`
	IsActive            bool    `json:"is_active"`
}

// GetProduct returns a product by ID
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	p, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProductResponse(p))
}

// ListStoreProducts returns a page of a store's products
func (h *CatalogHandler) ListStoreProducts(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID format")
		return
	}

	page, err := h.catalogService.ListStoreProducts(c.Request.Context(), storeID, listFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]ProductResponse, len(page.Items))
	for i := range page.Items {
		items[i] = toProductResponse(&page.Items[i])
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// GetStore returns a store by ID
func (h *CatalogHandler) GetStore(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID format")
		return
	}

	s, err := h.catalogService.GetStore(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStoreResponse(s))
}

// GetMyStore returns the caller's store
func (h *CatalogHandler) GetMyStore(c *gin.Context) {
	sellerID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user identity")
		return
	}

	s, err := h.catalogService.GetSellerStore(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStoreResponse(s))
}

func toProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		StoreID:     p.StoreID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.Amount().InexactFloat64(),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

func toStoreResponse(s *catalog.Store) StoreResponse {
	return StoreResponse{
		ID:                  s.ID.String(),
		SellerID:            s.SellerID.String(),
		Name:                s.Name,
		City:                s.City,
		State:               s.State,
		DeliveryWithinCity:  s.DeliveryWithinCity.Amount().InexactFloat64(),
		DeliveryOutsideCity: s.DeliveryOutsideCity.Amount().InexactFloat64(),
		IsActive:            s.IsActive,
	}
}
