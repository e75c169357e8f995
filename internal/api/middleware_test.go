package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestUserRateLimiter_SeparateBuckets(t *testing.T) {
	limiter := NewUserRateLimiter(1, 2)

	assert.True(t, limiter.Allow("u1"))
	assert.True(t, limiter.Allow("u1"))
	assert.False(t, limiter.Allow("u1"))
	assert.True(t, limiter.Allow("u2"))
}

func TestUserRateLimiter_DropsIdleBuckets(t *testing.T) {
	limiter := NewUserRateLimiter(1, 2)
	clock := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }
	limiter.lastSweep = clock

	assert.True(t, limiter.Allow("u1"))
	assert.True(t, limiter.Allow("u2"))
	assert.Equal(t, 2, limiter.Tracked())

	// Two minutes refill a burst of two at one token per minute.
	clock = clock.Add(2 * time.Minute)
	assert.True(t, limiter.Allow("u3"))
	assert.Equal(t, 1, limiter.Tracked())

	// u1 comes back with a full bucket.
	assert.True(t, limiter.Allow("u1"))
	assert.True(t, limiter.Allow("u1"))
	assert.False(t, limiter.Allow("u1"))
}

func TestUserRateLimiter_KeepsActiveBuckets(t *testing.T) {
	limiter := NewUserRateLimiter(1, 2)
	clock := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }
	limiter.lastSweep = clock

	assert.True(t, limiter.Allow("u1"))
	assert.True(t, limiter.Allow("u1"))
	clock = clock.Add(90 * time.Second)
	assert.True(t, limiter.Allow("u1"))
	clock = clock.Add(30 * time.Second)
	assert.True(t, limiter.Allow("u2"))

	// u1 was seen 30s ago, so its partly drained bucket survives the sweep.
	assert.Equal(t, 2, limiter.Tracked())
	limiter.Allow("u1")
	assert.False(t, limiter.Allow("u1"))
}

func TestCurrentUserID_GatewayHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("userID", "u1")

	userID, ok := CurrentUserID(c)
	assert.True(t, ok)
	assert.Equal(t, "u1", userID)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/limited", func(c *gin.Context) {
		c.Set("userID", c.GetHeader("X-User-ID"))
	}, RateLimitMiddleware(NewUserRateLimiter(1, 1)), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	call := func() int {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.Header.Set("X-User-ID", "u1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, call())
	assert.Equal(t, http.StatusTooManyRequests, call())
}
