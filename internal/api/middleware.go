package api

import (
	"net/http"
	"sync"
	"time"

	keycloakauth "github.com/JorgeSaicoski/keycloak-auth"
	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/JorgeSaicoski/alignment-tracker/internal/metrics"
)

func AuthMiddleware() gin.HandlerFunc {
	config := keycloakauth.DefaultConfig()
	config.LoadFromEnv() // Loads KEYCLOAK_URL and KEYCLOAK_REALM

	config.SkipPaths = []string{"/health", "/metrics"}
	config.RequiredClaims = []string{"sub", "preferred_username"}

	tokenAuth := keycloakauth.SimpleAuthMiddleware(config)

	return func(c *gin.Context) {
		// If the upstream gateway already authenticated the user and
		// provided the ID, trust that header and skip JWT validation.
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set("userID", userID)
			c.Next()
			return
		}

		// Fallback to standard JWT based authentication.
		tokenAuth(c)
	}
}

// CurrentUserID returns the authenticated user, whether it came from the
// gateway header or from a validated token.
func CurrentUserID(c *gin.Context) (string, bool) {
	if userID := c.GetString("userID"); userID != "" {
		return userID, true
	}
	return keycloakauth.GetUserID(c)
}

// UserRateLimiter hands out one token bucket per user. Buckets idle long
// enough to have refilled completely are dropped, since a fresh bucket
// behaves the same.
type UserRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*userBucket
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type userBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewUserRateLimiter allows perMinute requests per user with the given burst.
func NewUserRateLimiter(perMinute, burst int) *UserRateLimiter {
	interval := time.Minute / time.Duration(perMinute)
	idleAfter := time.Duration(burst) * interval
	if idleAfter < time.Minute {
		idleAfter = time.Minute
	}
	return &UserRateLimiter{
		limiters:  make(map[string]*userBucket),
		limit:     rate.Every(interval),
		burst:     burst,
		idleAfter: idleAfter,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow reports whether userID may make another request now.
func (l *UserRateLimiter) Allow(userID string) bool {
	l.mu.Lock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleAfter {
		l.sweep(now)
	}
	bucket, ok := l.limiters[userID]
	if !ok {
		bucket = &userBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[userID] = bucket
	}
	bucket.lastSeen = now
	l.mu.Unlock()
	return bucket.limiter.AllowN(now, 1)
}

// sweep drops idle buckets. Callers hold mu.
func (l *UserRateLimiter) sweep(now time.Time) {
	for userID, bucket := range l.limiters {
		if now.Sub(bucket.lastSeen) >= l.idleAfter {
			delete(l.limiters, userID)
		}
	}
	l.lastSweep = now
}

// Tracked returns the number of users currently holding a bucket.
func (l *UserRateLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// RateLimitMiddleware rejects requests once the caller exhausted its bucket.
// It must run after AuthMiddleware.
func RateLimitMiddleware(limiter *UserRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			responses.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}
		if !limiter.Allow(userID) {
			metrics.RecordRateLimited()
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many recompute requests, slow down"})
			return
		}
		c.Next()
	}
}
