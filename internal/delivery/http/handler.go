package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tableorder/backend/internal/domain"
	"github.com/tableorder/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	menus  *usecase.MenuService
	orders *usecase.OrderService
}

// NewHandler creates a new HTTP handler
func NewHandler(menus *usecase.MenuService, orders *usecase.OrderService) *Handler {
	return &Handler{
		menus:  menus,
		orders: orders,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "tableorder-backend",
		"version": "1.0.0",
	})
}

// GetMenu returns the flattened menu, served from cache within the TTL window
func (h *Handler) GetMenu(c *gin.Context) {
	items, err := h.menus.GetMenu(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetMenuByCategory returns the snapshot menu items for one category
func (h *Handler) GetMenuByCategory(c *gin.Context) {
	category := c.Param("category")

	items, err := h.menus.GetMenuByCategory(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// CreateOrder submits an order upstream and records it locally
func (h *Handler) CreateOrder(c *gin.Context) {
	var req domain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order payload: " + err.Error()})
		return
	}

	created, err := h.orders.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, created)
}

// GetOrder returns a stored order with its line items
func (h *Handler) GetOrder(c *gin.Context) {
	id := c.Param("id")

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// respondError maps domain errors to HTTP status codes. Every failure body is
// a {"message": ...} JSON object.
func respondError(c *gin.Context, err error) {
	var (
		authErr      *domain.AuthenticationError
		apiErr       *domain.RemoteAPIError
		integrityErr *domain.DataIntegrityError
	)

	switch {
	case errors.Is(err, domain.ErrMenuNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Menu not found"})
	case errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.As(err, &authErr):
		log.Printf("[HTTP] toast authentication failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to authenticate with Toast API"})
	case errors.As(err, &apiErr):
		log.Printf("[HTTP] toast API error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Toast API request failed"})
	case errors.As(err, &integrityErr):
		log.Printf("[HTTP] data integrity error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Order references a missing menu item"})
	default:
		log.Printf("[HTTP] unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}
