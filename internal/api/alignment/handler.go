package alignment

import (
	"log/slog"

	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/alignment-tracker/internal/api"
	svc "github.com/JorgeSaicoski/alignment-tracker/internal/services/alignment"
)

var log = slog.Default().With(
	slog.String("layer", "handler"),
	slog.String("handler", "AlignmentHandler"),
)

type AlignmentHandler struct {
	alignmentService *svc.Service
}

func NewAlignmentHandler(alignmentService *svc.Service) *AlignmentHandler {
	return &AlignmentHandler{
		alignmentService: alignmentService,
	}
}

// GetToday recomputes and returns the day record for ?date= (default today).
func (h *AlignmentHandler) GetToday(c *gin.Context) {
	userID, exists := api.CurrentUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	record, err := h.alignmentService.ComputeDailyMetrics(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	responses.Success(c, "Daily metrics computed successfully", DailyMetricsToResponse(record))
}

func (h *AlignmentHandler) GetStreak(c *gin.Context) {
	userID, exists := api.CurrentUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	streak, err := h.alignmentService.Streak(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	responses.Success(c, "Streak retrieved successfully", streak)
}

func (h *AlignmentHandler) GetWeekly(c *gin.Context) {
	userID, exists := api.CurrentUserID(c)
	if !exists {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	summary, err := h.alignmentService.WeeklySummary(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	responses.Success(c, "Weekly summary retrieved successfully", summary)
}

func (h *AlignmentHandler) fail(c *gin.Context, err error) {
	if svc.IsClientError(err) {
		responses.BadRequest(c, err.Error())
		return
	}
	log.Error("request-failed", "path", c.FullPath(), "err", err)
	responses.InternalError(c, "failed to compute alignment metrics")
}
