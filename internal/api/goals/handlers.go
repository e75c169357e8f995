package goals

import (
	"errors"

	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/alignment-tracker/internal/api"
	"github.com/JorgeSaicoski/alignment-tracker/internal/services/goals"
)

type GoalHandler struct {
	goalService *goals.GoalService
}

func NewGoalHandler(goalService *goals.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	userID, exists := api.CurrentUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), req.ToInput(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	responses.Created(c, "Goal created successfully", GoalToResponse(goal))
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, exists := api.CurrentUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	goal, err := h.goalService.GetGoal(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	responses.Success(c, "Goal retrieved successfully", GoalToResponse(goal))
}

func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	userID, exists := api.CurrentUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), c.Param("id"), req.ToInput(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	responses.Success(c, "Goal updated successfully", GoalToResponse(goal))
}

func (h *GoalHandler) DeactivateGoal(c *gin.Context) {
	userID, exists := api.CurrentUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.goalService.DeactivateGoal(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.fail(c, err)
		return
	}

	responses.Success(c, "Goal deactivated successfully", nil)
}

func (h *GoalHandler) GetUserGoals(c *gin.Context) {
	userID, exists := api.CurrentUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	includeInactive := c.Query("all") == "true"
	list, err := h.goalService.ListGoals(c.Request.Context(), userID, includeInactive)
	if err != nil {
		h.fail(c, err)
		return
	}

	goalResponses := GoalsToResponse(list)
	responses.Success(c, "Goals retrieved successfully", gin.H{
		"goals": goalResponses,
		"total": len(goalResponses),
	})
}

func (h *GoalHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, goals.ErrGoalNotFound):
		responses.NotFound(c, err.Error())
	case errors.Is(err, goals.ErrInvalidGoal):
		responses.BadRequest(c, err.Error())
	default:
		responses.InternalError(c, err.Error())
	}
}
