package handler

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// SystemHandler serves liveness, readiness and build information
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	database  HealthCheck
	readiness map[string]HealthCheck
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. database backs /health;
// readiness adds the checks that must also pass for /health/ready.
func NewSystemHandler(name, version string, database HealthCheck, readiness map[string]HealthCheck) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		database:  database,
		readiness: readiness,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// HealthResponse reports the result of each probe
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health pings the database.
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	checks := map[string]HealthCheck{}
	if h.database != nil {
		checks["database"] = h.database
	}
	h.respond(c, checks)
}

// Ready runs the database probe plus every readiness probe.
// GET /health/ready
func (h *SystemHandler) Ready(c *gin.Context) {
	checks := make(map[string]HealthCheck, len(h.readiness)+1)
	for name, check := range h.readiness {
		checks[name] = check
	}
	if h.database != nil {
		checks["database"] = h.database
	}
	h.respond(c, checks)
}

func (h *SystemHandler) respond(c *gin.Context, checks map[string]HealthCheck) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{Status: "healthy", Checks: make(map[string]string, len(checks))}
	status := http.StatusOK
	for _, name := range names {
		if err := checks[name](ctx); err != nil {
			logger.L(ctx).Warn("Health check failed", zap.String("check", name), zap.Error(err))
			resp.Checks[name] = "unhealthy"
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	c.JSON(status, resp)
}

// Info returns the service name, version and uptime.
// GET /api/v1/system/info
// @Summary      Service information
// @Tags         system
// @Produce      json
// @Success      200 {object} SystemInfoResponse
// @Router       /system/info [get]
func (h *SystemHandler) Info(c *gin.Context) {
	h.OK(c, SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Ping handles GET /api/v1/ping
// @Summary      Ping the API
// @Tags         system
// @Produce      json
// @Success      200 {object} object
// @Router       /ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "pong",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
