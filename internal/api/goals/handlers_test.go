package goals

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/JorgeSaicoski/alignment-tracker/internal/services/goals"
)

func newRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	handler := NewGoalHandler(goals.NewGoalService(gdb))
	router := gin.New()
	group := router.Group("/goals", func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set("userID", userID)
		}
	})
	group.POST("", handler.CreateGoal)
	group.GET("/:id", handler.GetGoal)
	group.DELETE("/:id", handler.DeactivateGoal)
	return router, mock
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "u1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateGoalHandler(t *testing.T) {
	router, mock := newRouter(t)
	mock.ExpectExec(`INSERT INTO "goals"`).WillReturnResult(sqlmock.NewResult(0, 1))

	w := do(router, http.MethodPost, "/goals", `{"name":"Deep Work","color":"#3366ff","targetHours":10}`)

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"name":"Deep Work"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGoalHandler_MissingName(t *testing.T) {
	router, mock := newRouter(t)

	w := do(router, http.MethodPost, "/goals", `{"color":"#3366ff"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGoalHandler_NotFound(t *testing.T) {
	router, mock := newRouter(t)
	mock.ExpectQuery(`SELECT \* FROM "goals"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := do(router, http.MethodGet, "/goals/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateGoalHandler(t *testing.T) {
	router, mock := newRouter(t)
	mock.ExpectExec(`UPDATE "goals" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	w := do(router, http.MethodDelete, "/goals/g1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
