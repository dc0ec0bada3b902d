package handler

import (
	"encoding/json"
	"net/http"

	"mirage-api/internal/container"
	"mirage-api/internal/domain"
	"mirage-api/internal/middleware"
	"mirage-api/pkg/errors"
	"mirage-api/pkg/geo"
)

// TargetHandler handles the discovery poll
type TargetHandler struct {
	container *container.Container
}

// NewTargetHandler creates a new target handler
func NewTargetHandler(container *container.Container) *TargetHandler {
	return &TargetHandler{container: container}
}

// GetTarget handles POST /api/getTarget
func (h *TargetHandler) GetTarget(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	var req domain.TargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, errors.NewValidationError("invalid request body"), log)
		return
	}

	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		middleware.WriteErrorResponse(w, errors.NewValidationError("coordinates out of bounds"), log)
		return
	}
	if appErr := middleware.ValidateMemberID(req.MemberID); appErr != nil {
		middleware.WriteErrorResponse(w, appErr, log)
		return
	}

	targets := h.container.Targets.FindNearby(geo.Coordinate{Lat: req.Lat, Lng: req.Lng})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(domain.TargetResponse{Questions: targets}); err != nil {
		log.WithError(err).Error("Failed to encode target response")
	}
}
