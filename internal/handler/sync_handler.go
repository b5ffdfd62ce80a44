package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fogwalk/fogwalk-backend-go/internal/middleware"
	"github.com/fogwalk/fogwalk-backend-go/internal/models"
	"github.com/fogwalk/fogwalk-backend-go/internal/service"
	"github.com/fogwalk/fogwalk-backend-go/pkg/response"
)

// SyncHandler drives team reconciliation.
type SyncHandler struct {
	service *service.SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(service *service.SyncService) *SyncHandler {
	return &SyncHandler{service: service}
}

// PostSync handles POST /api/v1/sync — one pull-merge round for the caller's
// team.
func (h *SyncHandler) PostSync(c *gin.Context) {
	teamID := c.GetString(middleware.TeamIDKey)
	h.service.SetTeam(teamID)

	result, err := h.service.SyncNow(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoTeam) {
			response.BadRequest(c, "No team joined")
			return
		}
		response.Error(c, http.StatusBadGateway, "Sync failed")
		return
	}

	response.Success(c, result)
}

// PostIncoming handles POST /api/v1/sync/incoming — merges a batch delivered
// out-of-band by the host.
func (h *SyncHandler) PostIncoming(c *gin.Context) {
	var records []models.SegmentRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		response.BadRequest(c, "Invalid segment batch")
		return
	}

	result, err := h.service.MergeDirect(records)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Merge failed")
		return
	}

	response.Success(c, result)
}

// GetStatus handles GET /api/v1/sync/status
func (h *SyncHandler) GetStatus(c *gin.Context) {
	status, err := h.service.Status()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to read sync status")
		return
	}

	response.Success(c, status)
}
