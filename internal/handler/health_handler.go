package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"mirage-api/internal/container"
	"mirage-api/internal/middleware"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	container *container.Container
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(container *container.Container) *HealthHandler {
	return &HealthHandler{container: container}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string                           `json:"status"`
	Timestamp     time.Time                        `json:"timestamp"`
	Service       string                           `json:"service"`
	IndexReady    bool                             `json:"indexReady"`
	IndexLoadedAt *time.Time                       `json:"indexLoadedAt,omitempty"`
	Redis         string                           `json:"redis"`
	Database      string                           `json:"database"`
	Perf          map[string]middleware.RouteStats `json:"perf"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	response := HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now().UTC(),
		Service:    "mirage-api",
		IndexReady: h.container.Index.Ready(),
		Redis:      "disabled",
		Database:   "healthy",
		Perf:       h.container.Perf.Snapshot(),
	}

	if loadedAt := h.container.Index.LoadedAt(); !loadedAt.IsZero() {
		response.IndexLoadedAt = &loadedAt
	}

	if err := h.container.DB.Health(r.Context()); err != nil {
		response.Status = "degraded"
		response.Database = "unhealthy"
	}

	if h.container.HasRedis() {
		response.Redis = "healthy"
		if err := h.container.RedisClient.Health(r.Context()); err != nil {
			response.Redis = "unhealthy"
		}
	}

	if !response.IndexReady {
		response.Status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.WithError(err).Error("Failed to encode health check response")
	}
}
