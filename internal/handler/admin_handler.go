package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"

	"mirage-api/internal/container"
	"mirage-api/internal/middleware"
	"mirage-api/pkg/errors"
)

// defaultLogLimit is how many recent log lines are returned when the caller
// does not ask for a specific count.
const defaultLogLimit = 100

// AdminHandler handles operator endpoints: index refresh and log access.
type AdminHandler struct {
	container *container.Container
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(container *container.Container) *AdminHandler {
	return &AdminHandler{container: container}
}

// authorize checks the operator token with a constant-time comparison. An
// unset token disables the operator surface entirely.
func (h *AdminHandler) authorize(r *http.Request) *errors.AppError {
	token := h.container.GetConfig().OperatorToken
	if token == "" {
		return errors.NewAuthenticationError("operator surface is disabled")
	}
	provided := r.Header.Get("X-Operator-Token")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
		return errors.NewAuthenticationError("invalid operator token")
	}
	return nil
}

// RefreshCache handles POST /api/admin/refreshCache. Concurrent calls
// collapse into one store scan; a failed refresh leaves the serving snapshot
// untouched.
func (h *AdminHandler) RefreshCache(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	if appErr := h.authorize(r); appErr != nil {
		middleware.WriteErrorResponse(w, appErr, log)
		return
	}

	if err := h.container.Index.Refresh(r.Context()); err != nil {
		middleware.WriteErrorResponse(w, errors.NewStoreUnavailableError(err), log)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"refreshed": true,
		"questions": len(h.container.Index.All()),
	})
}

// Logs handles GET /logs. Query parameters: q filters lines by substring,
// limit caps the count.
func (h *AdminHandler) Logs(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	if appErr := h.authorize(r); appErr != nil {
		middleware.WriteErrorResponse(w, appErr, log)
		return
	}

	limit := defaultLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			middleware.WriteErrorResponse(w, errors.NewValidationError("limit must be a positive integer"), log)
			return
		}
		limit = n
	}

	lines := log.Recent(r.URL.Query().Get("q"), limit)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"lines": lines,
		"count": len(lines),
	})
}
