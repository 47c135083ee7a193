package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger checks connectivity of a storage backing
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime,omitempty"`
	Checks map[string]string `json:"checks,omitempty"`
}

var startTime = time.Now()

// GetHealth handles GET /health
func GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(startTime).String(),
	})
}

// GetReadiness handles GET /health/ready. The service is ready when its
// storage backing answers a ping.
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "degraded",
			Checks: map[string]string{"store": "unhealthy: " + err.Error()},
		})
		return
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Checks: map[string]string{"store": "healthy"},
	})
}
