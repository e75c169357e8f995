package alignment

import (
	"time"

	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
)

// Response DTOs

type GoalBreakdownResponse struct {
	GoalID          string  `json:"goalId"`
	Name            string  `json:"name"`
	Color           string  `json:"color"`
	Minutes         float64 `json:"minutes"`
	MindfulMinutes  float64 `json:"mindfulMinutes"`
	PercentageOfDay float64 `json:"percentageOfDay"`
}

type DailyMetricsResponse struct {
	Date                    string                  `json:"date"`
	TasksGoalAligned        int                     `json:"tasksGoalAligned"`
	BlockMinutes            float64                 `json:"blockMinutes"`
	HabitMinutes            float64                 `json:"habitMinutes"`
	TaskMinutes             float64                 `json:"taskMinutes"`
	TotalGoalAlignedMinutes float64                 `json:"totalGoalAlignedMinutes"`
	Score24                 float64                 `json:"score24"`
	ScorePercentage         float64                 `json:"scorePercentage"`
	GoalBreakdown           []GoalBreakdownResponse `json:"goalBreakdown"`
	MindfulTaskCount        int                     `json:"mindfulTaskCount"`
	MindfulMinutes          float64                 `json:"mindfulMinutes"`
	AverageMindfulRating    float64                 `json:"averageMindfulRating"`
	CurrentStreak           int                     `json:"currentStreak"`
	LongestStreak           int                     `json:"longestStreak"`
	TargetHours             float64                 `json:"targetHours"`
	UpdatedAt               time.Time               `json:"updatedAt"`
}

// Conversion methods

func DailyMetricsToResponse(record *db.GoalAlignedDay) DailyMetricsResponse {
	response := DailyMetricsResponse{
		Date:                    record.Day,
		TasksGoalAligned:        record.TasksGoalAligned,
		BlockMinutes:            record.BlockMinutes,
		HabitMinutes:            record.HabitMinutes,
		TaskMinutes:             record.TaskMinutes,
		TotalGoalAlignedMinutes: record.TotalGoalAlignedMinutes,
		Score24:                 record.Score24,
		ScorePercentage:         record.ScorePercentage,
		GoalBreakdown:           make([]GoalBreakdownResponse, len(record.GoalBreakdown)),
		MindfulTaskCount:        record.MindfulTaskCount,
		MindfulMinutes:          record.MindfulMinutes,
		AverageMindfulRating:    record.AverageMindfulRating,
		CurrentStreak:           record.CurrentStreak,
		LongestStreak:           record.LongestStreak,
		TargetHours:             record.TargetHours,
		UpdatedAt:               record.UpdatedAt,
	}

	// Always an array in JSON, never null
	for i, entry := range record.GoalBreakdown {
		response.GoalBreakdown[i] = GoalBreakdownResponse(entry)
	}

	return response
}
