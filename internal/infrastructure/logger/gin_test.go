package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newLoggedRouter(log *zap.Logger, opts ...GinOption) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-abc")
		c.Next()
	})
	router.Use(Recovery(log), GinMiddleware(log, opts...))
	return router
}

func serve(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestGinMiddleware_LogsRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router := newLoggedRouter(zap.New(core))

	var fromRequest string
	router.GET("/api/events/:id", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		fromRequest = GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	serve(router, http.MethodGet, "/api/events/123?expand=budget")

	assert.Equal(t, "req-abc", fromRequest)
	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-abc", fields["request_id"])
	assert.Equal(t, "/api/events/:id", fields["route"])
	assert.Equal(t, "expand=budget", fields["query"])
	assert.Equal(t, "user-1", fields["user_id"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestGinMiddleware_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	router := newLoggedRouter(zap.New(core))
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(router, http.MethodGet, "/missing")
	serve(router, http.MethodGet, "/broken")

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestGinMiddleware_SkipPaths(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	router := newLoggedRouter(zap.New(core), WithSkipPaths("/health"))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(router, http.MethodGet, "/health")
	assert.Zero(t, logs.FilterMessage("HTTP Request").Len())
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	router := newLoggedRouter(zap.New(core))
	router.GET("/panic", func(c *gin.Context) { panic("nil budget item") })

	w := serve(router, http.MethodGet, "/panic")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"request_id":"req-abc"`)
	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
}

func TestGetGinLogger_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetGinLogger(c))
}
