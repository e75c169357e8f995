package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JorgeSaicoski/alignment-tracker/internal/services/alignment"
)

var _ alignment.GoalDirectory = (*GoalDirectoryClient)(nil)

func TestListActiveGoals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/u%201/goals", r.URL.EscapedPath())
		assert.Equal(t, "true", r.URL.Query().Get("active"))
		assert.Equal(t, "u 1", r.Header.Get("X-User-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"message": "Goals retrieved successfully",
			"data": {"goals": [
				{"id": "g1", "name": "Deep Work", "color": "#3366ff", "priority": 1, "isActive": true},
				{"id": 42, "name": "Fitness"},
				{"id": "g3", "name": "Old", "isActive": false}
			], "total": 3},
			"timestamp": "2026-10-15T04:30:00Z"
		}`))
	}))
	defer srv.Close()

	client := NewGoalDirectoryHTTPClient(srv.URL+"/api", srv.Client())
	goals, err := client.ListActiveGoals(context.Background(), "u 1")
	require.NoError(t, err)

	require.Len(t, goals, 2)
	assert.Equal(t, "g1", goals[0].ID)
	assert.Equal(t, "#3366ff", goals[0].Color)
	assert.Equal(t, "42", goals[1].ID)
	assert.True(t, goals[1].IsActive)
	assert.Equal(t, "u 1", goals[1].UserID)
}

func TestListActiveGoals_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewGoalDirectoryHTTPClient(srv.URL, nil).ListActiveGoals(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestListActiveGoals_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewGoalDirectoryHTTPClient(srv.URL, nil).ListActiveGoals(context.Background(), "u1")
	assert.ErrorContains(t, err, "decode goals")
}

func TestListActiveGoals_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoalDirectoryHTTPClient(srv.URL, nil).ListActiveGoals(ctx, "u1")
	assert.ErrorIs(t, err, context.Canceled)
}
