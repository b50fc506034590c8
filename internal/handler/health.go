package handler

import (
	"log/slog"
	"net/http"
	"time"

	"vocastant/internal/domain/repositories"
	"vocastant/internal/httputil"
)

// HealthHandler reports service and backend health
type HealthHandler struct {
	repo   repositories.DocumentRepository
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(repo repositories.DocumentRepository, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{repo: repo, logger: logger}
}

// HealthCheck is a simple health check endpoint that also probes the backend
// GET /health
// The service itself is "ok" even when the backend is not; callers read "backend".
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	backend := map[string]interface{}{"status": "ok"}

	status, err := h.repo.Health(r.Context())
	switch {
	case err != nil:
		h.logger.Warn("backend health check failed", "error", err)
		backend["status"] = "unreachable"
		backend["error"] = err.Error()
	case !status.Healthy():
		backend["status"] = "degraded"
		backend["status_code"] = status.StatusCode
	default:
		backend["status_code"] = status.StatusCode
		backend["latency_ms"] = status.Latency.Milliseconds()
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"time":    time.Now(),
		"backend": backend,
	})
}
