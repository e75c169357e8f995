package activity

import (
	"github.com/JorgeSaicoski/microservice-commons/middleware"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/alignment-tracker/internal/api"
	"github.com/JorgeSaicoski/alignment-tracker/internal/services/activity"
)

// RegisterRoutes registers the activity logging routes
func RegisterRoutes(router *gin.RouterGroup, activityService *activity.ActivityService) {
	handler := NewActivityHandler(activityService)

	activityGroup := router.Group("/activity")
	activityGroup.Use(
		middleware.DefaultLoggingMiddleware(),
		api.AuthMiddleware(),
	)
	{
		// Tasks
		activityGroup.POST("/tasks", handler.LogTask)       // Log a task (completed or open)
		activityGroup.GET("/tasks", handler.GetTasksForDay) // Tasks completed on ?date=

		// Legacy sources
		activityGroup.POST("/blocks", handler.AddScheduledBlock) // Add a scheduled block
		activityGroup.POST("/checkins", handler.LogCheckin)      // Log a habit check-in
	}
}
