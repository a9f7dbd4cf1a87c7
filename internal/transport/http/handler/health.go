package handler

import (
	"net/http"
	"time"

	"github.com/yourhostel/stat-syncer/internal/transport/http/response"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health handles GET /api/v1/health
// Used for liveness probes in Docker/Kubernetes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}

	response.OK(w, resp)
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Ready     bool      `json:"ready"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// Check represents an individual readiness check.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Ready handles GET /api/v1/ready
// Used for readiness probes to check if the service can accept traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make([]Check, 0, len(h.checks)+1)
	checks = append(checks, Check{Name: "api", Status: "ok"})

	allReady := true
	for _, c := range h.checks {
		status := "ok"
		if err := c.Probe(); err != nil {
			status = err.Error()
			allReady = false
		}
		checks = append(checks, Check{Name: c.Name, Status: status})
	}

	resp := ReadyResponse{
		Ready:     allReady,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}

	if !allReady {
		response.JSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	response.OK(w, resp)
}
