package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prateleira/backend/internal/domain"
	"github.com/prateleira/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	groupingService *usecase.GroupingService
}

// NewHandler creates a new HTTP handler. A nil service makes the product
// endpoints answer 501.
func NewHandler(groupingService *usecase.GroupingService) *Handler {
	return &Handler{
		groupingService: groupingService,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "prateleira-backend",
		"version": "1.0.0",
	})
}

// GroupProducts groups a JSON array of products by canonical title
func (h *Handler) GroupProducts(c *gin.Context) {
	if h.groupingService == nil {
		notConfigured(c)
		return
	}

	var records []domain.ProductRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request: " + err.Error(),
		})
		return
	}

	groups := h.groupingService.GroupProducts(c.Request.Context(), domain.ToProducts(records))
	c.JSON(http.StatusOK, groups)
}

// CanonicalKey returns the grouping key computed for a single title
func (h *Handler) CanonicalKey(c *gin.Context) {
	if h.groupingService == nil {
		notConfigured(c)
		return
	}

	var request domain.CanonicalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request: " + err.Error(),
		})
		return
	}

	title := *request.Title
	c.JSON(http.StatusOK, domain.CanonicalResponse{
		Title: title,
		Key:   h.groupingService.CanonicalKey(c.Request.Context(), title),
	})
}

// notConfigured answers requests that reach a handler without a service
func notConfigured(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error": "grouping service not configured",
	})
}
