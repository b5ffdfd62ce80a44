package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
	"github.com/fogwalk/fogwalk-backend-go/internal/service"
	"github.com/fogwalk/fogwalk-backend-go/pkg/response"
)

// PositionHandler ingests raw GPS fixes from the host.
type PositionHandler struct {
	service *service.TrackingService
}

// NewPositionHandler creates a new position handler
func NewPositionHandler(service *service.TrackingService) *PositionHandler {
	return &PositionHandler{service: service}
}

// PostPosition handles POST /api/v1/positions
func (h *PositionHandler) PostPosition(c *gin.Context) {
	var sample models.PositionSample
	if err := c.ShouldBindJSON(&sample); err != nil {
		response.BadRequest(c, "Invalid position payload")
		return
	}
	if sample.Timestamp.IsZero() {
		sample.Timestamp = time.Now()
	}

	result, err := h.service.OnRawPosition(sample)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to process position")
		return
	}

	response.Success(c, result)
}

// GetProgress handles GET /api/v1/progress
func (h *PositionHandler) GetProgress(c *gin.Context) {
	response.Success(c, h.service.Progress())
}
