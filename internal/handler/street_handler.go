package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fogwalk/fogwalk-backend-go/internal/service"
	"github.com/fogwalk/fogwalk-backend-go/pkg/response"
)

// StreetHandler manages the loaded street geometry.
type StreetHandler struct {
	service *service.StreetService
}

// NewStreetHandler creates a new street handler
func NewStreetHandler(service *service.StreetService) *StreetHandler {
	return &StreetHandler{service: service}
}

type refreshRequest struct {
	Lat      float64 `json:"lat" binding:"min=-90,max=90"`
	Lon      float64 `json:"lon" binding:"min=-180,max=180"`
	RadiusKm float64 `json:"radiusKm"`
}

// PostRefresh handles POST /api/v1/streets/refresh
func (h *StreetHandler) PostRefresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid refresh request")
		return
	}
	if req.RadiusKm <= 0 {
		req.RadiusKm = 2
	}

	loaded, err := h.service.Refresh(c.Request.Context(), req.Lat, req.Lon, req.RadiusKm)
	if err != nil {
		// Stale geometry stays usable; surface the fetch failure as such.
		response.Error(c, http.StatusBadGateway, "Street fetch failed, cached geometry retained")
		return
	}

	response.Success(c, gin.H{"streetsLoaded": loaded})
}

// GetStreets handles GET /api/v1/streets
func (h *StreetHandler) GetStreets(c *gin.Context) {
	response.Success(c, h.service.Streets())
}

// GetNearest handles GET /api/v1/streets/nearest
func (h *StreetHandler) GetNearest(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lon, err2 := strconv.ParseFloat(c.Query("lon"), 64)
	if err1 != nil || err2 != nil {
		response.BadRequest(c, "Invalid coordinates")
		return
	}

	street, ok := h.service.Nearest(lat, lon)
	if !ok {
		response.NotFound(c, "No street within snap radius")
		return
	}

	response.Success(c, street)
}
