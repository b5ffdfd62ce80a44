package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fogwalk/fogwalk-backend-go/internal/config"
	"github.com/fogwalk/fogwalk-backend-go/internal/handler"
	"github.com/fogwalk/fogwalk-backend-go/internal/middleware"
	"github.com/fogwalk/fogwalk-backend-go/pkg/response"
)

// Handlers bundles the handler set the router wires up.
type Handlers struct {
	Position *handler.PositionHandler
	Segment  *handler.SegmentHandler
	Street   *handler.StreetHandler
	Sync     *handler.SyncHandler
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.NewRateLimiter(50, 100).Middleware())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Fogwalk backend is running",
		})
	})

	api := r.Group("/api/v1")
	{
		// Dev-only team token issuance; real deployments get tokens from the
		// team backend.
		api.POST("/auth/token", func(c *gin.Context) {
			var req struct {
				TeamID string `json:"teamId" binding:"required"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				response.BadRequest(c, "teamId is required")
				return
			}
			token, err := middleware.GenerateTeamToken(cfg.JWTSecret, req.TeamID, 24*time.Hour)
			if err != nil {
				response.InternalError(c, "Failed to issue token")
				return
			}
			response.Success(c, gin.H{"token": token})
		})

		api.POST("/positions", h.Position.PostPosition)
		api.GET("/progress", h.Position.GetProgress)

		segments := api.Group("/segments")
		{
			segments.GET("", h.Segment.ListSegments)
			segments.GET("/:id", h.Segment.GetSegmentByID)
		}
		api.GET("/stats/tiers", h.Segment.GetTierStats)

		streets := api.Group("/streets")
		{
			streets.GET("", h.Street.GetStreets)
			streets.GET("/nearest", h.Street.GetNearest)
			streets.POST("/refresh", h.Street.PostRefresh)
		}

		sync := api.Group("/sync")
		{
			sync.POST("", middleware.TeamAuth(cfg.JWTSecret), h.Sync.PostSync)
			sync.POST("/incoming", h.Sync.PostIncoming)
			sync.GET("/status", h.Sync.GetStatus)
		}
	}

	return r
}
