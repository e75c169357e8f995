package goals

import (
	"github.com/JorgeSaicoski/microservice-commons/middleware"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/alignment-tracker/internal/api"
	"github.com/JorgeSaicoski/alignment-tracker/internal/services/goals"
)

// RegisterRoutes registers all goal related routes
func RegisterRoutes(router *gin.RouterGroup, goalService *goals.GoalService) {
	handler := NewGoalHandler(goalService)

	goalsGroup := router.Group("/goals")
	goalsGroup.Use(
		middleware.DefaultLoggingMiddleware(),
		api.AuthMiddleware(),
	)
	{
		goalsGroup.POST("", handler.CreateGoal)           // Create goal
		goalsGroup.GET("", handler.GetUserGoals)          // List goals (?all=true includes inactive)
		goalsGroup.GET("/:id", handler.GetGoal)           // Get goal by ID
		goalsGroup.PUT("/:id", handler.UpdateGoal)        // Update goal
		goalsGroup.DELETE("/:id", handler.DeactivateGoal) // Deactivate goal
	}
}
