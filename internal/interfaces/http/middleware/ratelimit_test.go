package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(limit, window)
	t.Cleanup(rl.Stop)
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows up to the limit then refuses", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, rl.Allow("ip:1.2.3.4"), "request %d", i+1)
		}
		assert.False(t, rl.Allow("ip:1.2.3.4"))
		assert.Equal(t, 0, rl.Remaining("ip:1.2.3.4"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 1, time.Minute)

		assert.True(t, rl.Allow("a"))
		assert.False(t, rl.Allow("a"))
		assert.True(t, rl.Allow("b"))
	})

	t.Run("bucket refills over the window", func(t *testing.T) {
		rl, now := newTestLimiter(t, 1, time.Minute)

		assert.True(t, rl.Allow("a"))
		assert.False(t, rl.Allow("a"))
		assert.Equal(t, time.Minute, rl.RetryAfter("a"))

		*now = now.Add(time.Minute)
		assert.Equal(t, 1, rl.Remaining("a"))
		assert.True(t, rl.Allow("a"))
	})

	t.Run("partial refill", func(t *testing.T) {
		rl, now := newTestLimiter(t, 2, time.Minute)

		assert.True(t, rl.Allow("a"))
		assert.True(t, rl.Allow("a"))
		assert.Equal(t, 0, rl.Remaining("a"))

		*now = now.Add(30 * time.Second)
		assert.Equal(t, 1, rl.Remaining("a"))
		assert.Equal(t, 2, rl.Remaining("unseen"))
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Second)
		rl.Stop()
		rl.Stop()
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 2, time.Minute)
	router := gin.New()
	router.Use(RequestID(), RateLimit(rl))
	router.GET("/api/v1/events/", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := send()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, send().Code)

	blocked := send()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "30", blocked.Header().Get("Retry-After"))
	assert.Equal(t, "0", blocked.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, blocked.Body.String(), `"code":"RATE_LIMITED"`)
	assert.Contains(t, blocked.Body.String(), `"request_id"`)
}

func TestRateLimit_KeysByUserWhenAuthenticated(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if u := c.GetHeader("X-Test-User"); u != "" {
			c.Set(JWTUserIDKey, u)
		}
		c.Next()
	}, RateLimit(rl))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		req.Header.Set("X-Test-User", user)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("alice"))
	assert.Equal(t, http.StatusOK, send("bob"))
	assert.Equal(t, http.StatusTooManyRequests, send("alice"))
}
