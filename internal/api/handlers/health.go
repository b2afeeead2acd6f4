// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/admin-gateway/internal/api/dto"
	"github.com/unifiedui/admin-gateway/internal/core/cache"
	"github.com/unifiedui/admin-gateway/internal/core/docdb"
	"github.com/unifiedui/admin-gateway/internal/services/gateway"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	cacheClient cache.Client
	docDBClient docdb.Client
	sessions    SessionStater
}

// SessionStater reports the upstream session state.
type SessionStater interface {
	State() gateway.SessionState
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cacheClient cache.Client, docDBClient docdb.Client, sessions SessionStater) *HealthHandler {
	return &HealthHandler{
		cacheClient: cacheClient,
		docDBClient: docDBClient,
		sessions:    sessions,
	}
}

// Health handles the /health endpoint.
// @Summary Health check
// @Description Returns the overall health status, component statuses and the upstream session state
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service healthy"
// @Failure 503 {object} dto.HealthResponse "Service unhealthy"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	components := make(map[string]string)
	healthy := true

	if err := h.cacheClient.Ping(ctx); err != nil {
		components["cache"] = "unhealthy"
		healthy = false
	} else {
		components["cache"] = "healthy"
	}

	if err := h.docDBClient.Ping(ctx); err != nil {
		components["docdb"] = "unhealthy"
		healthy = false
	} else {
		components["docdb"] = "healthy"
	}

	// A logged-out upstream session does not make the service unhealthy.
	if h.sessions != nil {
		components["session"] = string(h.sessions.State())
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, dto.HealthResponse{
		Status:     status,
		Components: components,
	})
}

// Ready handles the /ready endpoint.
// @Summary Readiness check
// @Description Returns 200 if the service is ready to accept traffic
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service ready"
// @Failure 503 {object} map[string]string "Service not ready"
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.cacheClient.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "cache unavailable",
		})
		return
	}

	if err := h.docDBClient.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "docdb unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// Live handles the /live endpoint.
// @Summary Liveness check
// @Description Returns 200 if the service is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service alive"
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
