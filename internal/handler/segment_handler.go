package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
	"github.com/fogwalk/fogwalk-backend-go/internal/service"
	"github.com/fogwalk/fogwalk-backend-go/pkg/response"
)

// segmentView is a SegmentRecord enriched with its computed display tier.
type segmentView struct {
	models.SegmentRecord
	Tier models.Tier `json:"tier"`
}

// SegmentHandler handles HTTP requests for discovered segments
type SegmentHandler struct {
	service *service.SegmentService
}

// NewSegmentHandler creates a new segment handler
func NewSegmentHandler(service *service.SegmentService) *SegmentHandler {
	return &SegmentHandler{service: service}
}

// ListSegments handles GET /api/v1/segments
func (h *SegmentHandler) ListSegments(c *gin.Context) {
	var filter models.SegmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	segments, total, err := h.service.List(filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list segments")
		return
	}

	views := make([]segmentView, 0, len(segments))
	for _, s := range segments {
		views = append(views, segmentView{SegmentRecord: s, Tier: s.Tier()})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	response.Success(c, gin.H{
		"data":       views,
		"total":      total,
		"page":       filter.Page,
		"pageSize":   filter.PageSize,
		"totalPages": totalPages,
	})
}

// GetSegmentByID handles GET /api/v1/segments/:id
func (h *SegmentHandler) GetSegmentByID(c *gin.Context) {
	segment, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get segment")
		return
	}
	if segment == nil {
		response.NotFound(c, "Segment not found")
		return
	}

	response.Success(c, segmentView{SegmentRecord: *segment, Tier: segment.Tier()})
}

// GetTierStats handles GET /api/v1/segments/stats
func (h *SegmentHandler) GetTierStats(c *gin.Context) {
	counts, err := h.service.TierCounts()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to count segments")
		return
	}

	response.Success(c, counts)
}
