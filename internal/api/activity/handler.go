package activity

import (
	"errors"

	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/alignment-tracker/internal/api"
	"github.com/JorgeSaicoski/alignment-tracker/internal/services/activity"
	"github.com/JorgeSaicoski/alignment-tracker/internal/services/alignment"
)

type ActivityHandler struct {
	activityService *activity.ActivityService
}

func NewActivityHandler(activityService *activity.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

func (h *ActivityHandler) LogTask(c *gin.Context) {
	var req LogTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	userID, exists := api.CurrentUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	task, err := h.activityService.LogTask(c.Request.Context(), req.ToInput(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	responses.Created(c, "Task logged successfully", TaskToResponse(task))
}

func (h *ActivityHandler) GetTasksForDay(c *gin.Context) {
	userID, exists := api.CurrentUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	tasks, err := h.activityService.ListTasksForDay(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	taskResponses := TasksToResponse(tasks)
	responses.Success(c, "Tasks retrieved successfully", gin.H{
		"tasks": taskResponses,
		"total": len(taskResponses),
	})
}

func (h *ActivityHandler) AddScheduledBlock(c *gin.Context) {
	var req AddBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	userID, exists := api.CurrentUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	block, err := h.activityService.AddScheduledBlock(c.Request.Context(), req.ToInput(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	responses.Created(c, "Scheduled block added successfully", BlockToResponse(block))
}

func (h *ActivityHandler) LogCheckin(c *gin.Context) {
	var req LogCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	userID, exists := api.CurrentUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	checkin, err := h.activityService.LogCheckin(c.Request.Context(), req.ToInput(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	responses.Created(c, "Habit check-in logged successfully", CheckinToResponse(checkin))
}

func (h *ActivityHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, activity.ErrInvalidActivity) || errors.Is(err, alignment.ErrInvalidDate) {
		responses.BadRequest(c, err.Error())
		return
	}
	responses.InternalError(c, err.Error())
}
