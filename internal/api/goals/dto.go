package goals

import (
	"time"

	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
	svc "github.com/JorgeSaicoski/alignment-tracker/internal/services/goals"
)

// Request DTOs

// matches the JSON sent by the front-end
type CreateGoalRequest struct {
	Name        string  `json:"name" binding:"required"`
	Color       string  `json:"color"`
	Category    string  `json:"category"`
	TargetHours float64 `json:"targetHours" binding:"gte=0"`
	Priority    int     `json:"priority"`
}

type UpdateGoalRequest struct {
	Name        *string  `json:"name"`
	Color       *string  `json:"color"`
	Category    *string  `json:"category"`
	TargetHours *float64 `json:"targetHours"`
	Priority    *int     `json:"priority"`
	IsActive    *bool    `json:"isActive"`
}

// Response DTOs

type GoalResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Category    string    `json:"category"`
	TargetHours float64   `json:"targetHours"`
	Priority    int       `json:"priority"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Conversion methods

func (r *CreateGoalRequest) ToInput() *svc.CreateGoalInput {
	return &svc.CreateGoalInput{
		Name:        r.Name,
		Color:       r.Color,
		Category:    r.Category,
		TargetHours: r.TargetHours,
		Priority:    r.Priority,
	}
}

func (r *UpdateGoalRequest) ToInput() *svc.UpdateGoalInput {
	return &svc.UpdateGoalInput{
		Name:        r.Name,
		Color:       r.Color,
		Category:    r.Category,
		TargetHours: r.TargetHours,
		Priority:    r.Priority,
		IsActive:    r.IsActive,
	}
}

func GoalToResponse(goal *db.Goal) GoalResponse {
	return GoalResponse{
		ID:          goal.ID,
		Name:        goal.Name,
		Color:       goal.Color,
		Category:    goal.Category,
		TargetHours: goal.TargetHours,
		Priority:    goal.Priority,
		IsActive:    goal.IsActive,
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}
}

func GoalsToResponse(goals []db.Goal) []GoalResponse {
	responses := make([]GoalResponse, len(goals))
	for i := range goals {
		responses[i] = GoalToResponse(&goals[i])
	}
	return responses
}
