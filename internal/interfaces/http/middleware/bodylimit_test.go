package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// bodyLimitRouter binds an event payload the way the planning handlers do
func bodyLimitRouter(limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(BodyLimit(limit))
	r.POST("/events/", func(c *gin.Context) {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		c.String(http.StatusCreated, req.Name)
	})
	r.GET("/events/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestBodyLimit(t *testing.T) {
	longName := `{"name":"` + strings.Repeat("a", 300) + `"}`

	tests := []struct {
		name          string
		method        string
		body          string
		contentLength int64
		limit         int64
		wantStatus    int
		wantBody      string
	}{
		{
			name:       "payload under the cap",
			method:     http.MethodPost,
			body:       `{"name":"Rahim & Sadia Wedding"}`,
			limit:      1024,
			wantStatus: http.StatusCreated,
			wantBody:   "Rahim & Sadia Wedding",
		},
		{
			name:       "declared length over the cap",
			method:     http.MethodPost,
			body:       longName,
			limit:      128,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantBody:   "REQUEST_TOO_LARGE",
		},
		{
			name:          "streamed body is cut off while binding",
			method:        http.MethodPost,
			body:          longName,
			contentLength: -1,
			limit:         128,
			wantStatus:    http.StatusBadRequest,
			wantBody:      "request body too large",
		},
		{
			name:       "bodyless request passes",
			method:     http.MethodGet,
			limit:      8,
			wantStatus: http.StatusOK,
		},
		{
			name:       "zero disables the cap",
			method:     http.MethodPost,
			body:       longName,
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body == "" {
				req = httptest.NewRequest(tt.method, "/events/", nil)
			} else {
				req = httptest.NewRequest(tt.method, "/events/", strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			}
			if tt.contentLength != 0 {
				req.ContentLength = tt.contentLength
			}
			w := httptest.NewRecorder()

			bodyLimitRouter(tt.limit).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}
