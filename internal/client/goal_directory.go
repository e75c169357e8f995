package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
)

/* ---------------------------------------------------------------------
   Data-transfer objects (DTOs)
   ---------------------------------------------------------------------
   The goals service answers with the microservice-commons envelope
   {"message": ..., "data": ..., "timestamp": ...}. Only the fields the
   alignment engine reads are decoded.
   ------------------------------------------------------------------ */

type remoteGoal struct {
	ID          goalID  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Category    string  `json:"category"`
	TargetHours float64 `json:"targetHours"`
	Priority    int     `json:"priority"`
	IsActive    *bool   `json:"isActive"`
}

// goalID accepts the id as either a JSON string or a JSON number.
type goalID string

func (id *goalID) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*id = goalID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("goal id: %w", err)
	}
	*id = goalID(n.String())
	return nil
}

type goalsEnvelope struct {
	Data struct {
		Goals []remoteGoal `json:"goals"`
	} `json:"data"`
}

/* ---------------------------------------------------------------------
   HTTP implementation
   ------------------------------------------------------------------ */

// GoalDirectoryClient reads a user's active goals from a remote goals service.
type GoalDirectoryClient struct {
	baseURL string       // e.g. "http://goals:8080/api/internal"
	http    *http.Client // injected so tests can point it at httptest
}

// NewGoalDirectoryHTTPClient is the constructor used at boot time when
// GOAL_DIRECTORY_URL is set.
func NewGoalDirectoryHTTPClient(baseURL string, httpClient *http.Client) *GoalDirectoryClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &GoalDirectoryClient{
		baseURL: baseURL,
		http:    httpClient,
	}
}

/* ---------------------------------------------------------------------
   ListActiveGoals – GET /users/{id}/goals?active=true
   ------------------------------------------------------------------ */

func (c *GoalDirectoryClient) ListActiveGoals(ctx context.Context, userID string) ([]db.Goal, error) {
	endpoint := fmt.Sprintf("%s/users/%s/goals?active=true", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build goal directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-User-ID", userID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("goal directory call failed: %w", err)
	}
	defer resp.Body.Close()

	// Non-2xx → bubble up the plain body for easier troubleshooting.
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("goal directory returned %s - body: %s", resp.Status, raw)
	}

	var env goalsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}

	goals := make([]db.Goal, 0, len(env.Data.Goals))
	for _, g := range env.Data.Goals {
		// Services that ignore ?active= still mark their inactive goals.
		if g.IsActive != nil && !*g.IsActive {
			continue
		}
		goals = append(goals, db.Goal{
			ID:          string(g.ID),
			UserID:      userID,
			Name:        g.Name,
			Color:       g.Color,
			Category:    g.Category,
			TargetHours: g.TargetHours,
			Priority:    g.Priority,
			IsActive:    true,
		})
	}

	slog.Debug("goal directory answered", "userID", userID, "goals", len(goals))
	return goals, nil
}
