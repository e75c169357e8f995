package alignment

import (
	"github.com/JorgeSaicoski/microservice-commons/middleware"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/alignment-tracker/internal/api"
	svc "github.com/JorgeSaicoski/alignment-tracker/internal/services/alignment"
)

// RegisterRoutes registers the goal-alignment read endpoints
func RegisterRoutes(router *gin.RouterGroup, alignmentService *svc.Service, limiter *api.UserRateLimiter) {
	handler := NewAlignmentHandler(alignmentService)

	alignmentGroup := router.Group("/alignment")
	alignmentGroup.Use(
		middleware.DefaultLoggingMiddleware(),
		api.AuthMiddleware(),
	)
	{
		// Recomputes on every call, so it is rate limited per user
		alignmentGroup.GET("/today", api.RateLimitMiddleware(limiter), handler.GetToday)
		alignmentGroup.GET("/streak", handler.GetStreak) // Latest streak state
		alignmentGroup.GET("/weekly", handler.GetWeekly) // Sunday..Saturday scores
	}
}
