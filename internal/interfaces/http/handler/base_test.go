package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	return c, w
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
		fields  []string
	}{
		{
			name:    "not found",
			err:     shared.NotFound("Event"),
			status:  http.StatusNotFound,
			code:    dto.ErrCodeNotFound,
			message: "Event not found",
		},
		{
			name:   "validation keeps fields",
			err:    shared.NewValidationError("date", "This field is required."),
			status: http.StatusBadRequest,
			code:   dto.ErrCodeValidation,
			fields: []string{"date"},
		},
		{
			name:   "wrapped invalid state",
			err:    fmt.Errorf("approve: %w", shared.ErrInvalidState),
			status: http.StatusConflict,
			code:   dto.ErrCodeInvalidState,
		},
		{
			name:    "unknown error hides details",
			err:     errors.New("pq: connection refused"),
			status:  http.StatusInternalServerError,
			code:    dto.ErrCodeInternal,
			message: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/api/v1/events/")
			c.Set("request_id", "req-123")

			(&BaseHandler{}).HandleError(c, tt.err)

			require.Equal(t, tt.status, w.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "req-123", body.RequestID)
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Message)
			}
			for _, f := range tt.fields {
				assert.Contains(t, body.Errors, f)
			}
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestBaseHandler_HandleErrorNil(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/")
	(&BaseHandler{}).HandleError(c, nil)
	assert.Zero(t, w.Body.Len())
}

func TestBaseHandler_PathID(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/events/nope")
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	_, ok := (&BaseHandler{}).pathID(c, "id", "Event")
	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Event not found")
}

func TestBaseHandler_CurrentUserIDWithoutAuth(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/settings/")

	_, ok := (&BaseHandler{}).currentUserID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSystemHandler_ReadyReportsFailingCheck(t *testing.T) {
	h := NewSystemHandler("event-saas-api", "test",
		func(context.Context) error { return nil },
		map[string]HealthCheck{
			"redis": func(context.Context) error { return errors.New("dial tcp: connection refused") },
		})

	c, w := newTestContext(http.MethodGet, "/health/ready")
	h.Ready(c)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "ok", resp.Checks["database"])
	assert.Equal(t, "unhealthy", resp.Checks["redis"])

	c, w = newTestContext(http.MethodGet, "/health")
	h.Health(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
