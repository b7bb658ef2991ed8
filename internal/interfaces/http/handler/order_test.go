package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	orderapp "github.com/covu/backend/internal/application/order"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// The order service's transition logic is covered by its own tests; these
// only exercise the request validation that runs before the service.
func newOrderTestRouter() *gin.Engine {
	service := orderapp.NewService(nil, nil, nil, nil, nil, nil, zap.NewNop())
	h := NewOrderHandler(service)

	router := gin.New()
	router.POST("/orders", h.Create)
	router.GET("/orders/:id", h.GetByID)
	router.POST("/orders/:id/accept", h.Accept)
	router.POST("/orders/:id/cancel", h.Cancel)
	return router
}

func TestOrderHandler_RequestValidation(t *testing.T) {
	router := newOrderTestRouter()
	userID := uuid.New()

	t.Run("create requires user identity", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/orders", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create rejects missing fields", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/orders", strings.NewReader(`{"quantity": 1}`))
		req.Header.Set("X-User-ID", userID.String())
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create rejects zero quantity", func(t *testing.T) {
		body := `{"product_id": "` + uuid.NewString() + `", "quantity": 0, "delivery_address": "12 Allen Avenue"}`
		req := httptest.NewRequest("POST", "/orders", strings.NewReader(body))
		req.Header.Set("X-User-ID", userID.String())
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("transition rejects malformed order id", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/orders/not-a-uuid/accept", nil)
		req.Header.Set("X-User-ID", userID.String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get rejects missing identity", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/orders/"+uuid.NewString(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/orders/"+uuid.NewString()+"/cancel", strings.NewReader(`{}`))
		req.Header.Set("X-User-ID", userID.String())
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
