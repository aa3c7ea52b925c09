package handler

import (
	"context"
	"net/http"
	"time"

	"vidtube/pkg/logger"
)

const healthCheckTimeout = 5 * time.Second

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler reports service and dependency health
type HealthHandler struct {
	db    HealthChecker
	cache HealthChecker
	log   *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db, cache HealthChecker, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, log: log}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}

	if err := h.db.Health(ctx); err != nil {
		h.log.WithError(err).Error("Database health check failed")
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}
	if err := h.cache.Health(ctx); err != nil {
		h.log.WithError(err).Error("Cache health check failed")
		checks["cache"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusOK {
		writeJSON(w, status, checks, "Service is healthy")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"statusCode":503,"message":"Service is unhealthy","success":false}`))
}
