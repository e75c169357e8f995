package activity

import (
	"time"

	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
	svc "github.com/JorgeSaicoski/alignment-tracker/internal/services/activity"
)

// Request DTOs

type LogTaskRequest struct {
	Title           string     `json:"title" binding:"required"`
	GoalIDs         []string   `json:"goalIds"`
	CompletedAt     *time.Time `json:"completedAt"`
	MindfulRating   *int       `json:"mindfulRating"`
	DurationMinutes *float64   `json:"durationMinutes"`
	IsHabit         bool       `json:"isHabit"`
	HabitCadence    string     `json:"habitCadence"` // none, daily, weekly, monthly
}

type IntervalRequest struct {
	StartTime       time.Time `json:"startTime"`
	DurationMinutes float64   `json:"durationMinutes"`
	GoalID          *string   `json:"goalId"`
	TaskID          *string   `json:"taskId"`
}

type AddBlockRequest struct {
	Date      string            `json:"date" binding:"required"` // YYYY-MM-DD format
	Intervals []IntervalRequest `json:"intervals"`
}

type LogCheckinRequest struct {
	HabitName string  `json:"habitName" binding:"required"`
	Date      string  `json:"date"` // YYYY-MM-DD or RFC3339, empty for now
	ValueMin  float64 `json:"valueMin"`
	GoalID    *string `json:"goalId"`
	Quality   *int    `json:"quality"`
}

// Response DTOs

type TaskResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	GoalIDs         []string   `json:"goalIds"`
	CompletedAt     *time.Time `json:"completedAt"`
	MindfulRating   *int       `json:"mindfulRating"`
	DurationMinutes *float64   `json:"durationMinutes"`
	IsHabit         bool       `json:"isHabit"`
	HabitCadence    string     `json:"habitCadence"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type IntervalResponse struct {
	ID              string    `json:"id"`
	StartTime       time.Time `json:"startTime"`
	DurationMinutes float64   `json:"durationMinutes"`
	GoalID          *string   `json:"goalId"`
	TaskID          *string   `json:"taskId"`
}

type BlockResponse struct {
	ID        string             `json:"id"`
	Date      time.Time          `json:"date"`
	Intervals []IntervalResponse `json:"intervals"`
}

type CheckinResponse struct {
	ID        string    `json:"id"`
	HabitName string    `json:"habitName"`
	Date      time.Time `json:"date"`
	ValueMin  float64   `json:"valueMin"`
	GoalID    *string   `json:"goalId"`
	Quality   *int      `json:"quality"`
}

// Conversion methods

func (r *LogTaskRequest) ToInput() *svc.LogTaskInput {
	return &svc.LogTaskInput{
		Title:           r.Title,
		GoalIDs:         r.GoalIDs,
		CompletedAt:     r.CompletedAt,
		MindfulRating:   r.MindfulRating,
		DurationMinutes: r.DurationMinutes,
		IsHabit:         r.IsHabit,
		HabitCadence:    r.HabitCadence,
	}
}

func (r *AddBlockRequest) ToInput() *svc.AddBlockInput {
	in := &svc.AddBlockInput{Date: r.Date}
	for _, interval := range r.Intervals {
		in.Intervals = append(in.Intervals, svc.IntervalInput(interval))
	}
	return in
}

func (r *LogCheckinRequest) ToInput() *svc.LogCheckinInput {
	return &svc.LogCheckinInput{
		HabitName: r.HabitName,
		Date:      r.Date,
		ValueMin:  r.ValueMin,
		GoalID:    r.GoalID,
		Quality:   r.Quality,
	}
}

func TaskToResponse(task *db.Task) TaskResponse {
	return TaskResponse{
		ID:              task.ID,
		Title:           task.Title,
		GoalIDs:         task.GoalIDs,
		CompletedAt:     task.CompletedAt,
		MindfulRating:   task.MindfulRating,
		DurationMinutes: task.DurationMinutes,
		IsHabit:         task.IsHabit,
		HabitCadence:    task.HabitCadence,
		CreatedAt:       task.CreatedAt,
	}
}

func TasksToResponse(tasks []db.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = TaskToResponse(&tasks[i])
	}
	return out
}

func BlockToResponse(block *db.ScheduledBlock) BlockResponse {
	response := BlockResponse{
		ID:        block.ID,
		Date:      block.Date,
		Intervals: make([]IntervalResponse, len(block.Intervals)),
	}
	for i, interval := range block.Intervals {
		response.Intervals[i] = IntervalResponse{
			ID:              interval.ID,
			StartTime:       interval.StartTime,
			DurationMinutes: interval.DurationMinutes,
			GoalID:          interval.GoalID,
			TaskID:          interval.TaskID,
		}
	}
	return response
}

func CheckinToResponse(checkin *db.HabitCheckin) CheckinResponse {
	return CheckinResponse{
		ID:        checkin.ID,
		HabitName: checkin.HabitName,
		Date:      checkin.Date,
		ValueMin:  checkin.ValueMin,
		GoalID:    checkin.GoalID,
		Quality:   checkin.Quality,
	}
}
