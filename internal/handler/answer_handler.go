package handler

import (
	"encoding/json"
	"net/http"

	"mirage-api/internal/container"
	"mirage-api/internal/domain"
	"mirage-api/internal/middleware"
	"mirage-api/pkg/errors"
)

// AnswerHandler handles answer submissions
type AnswerHandler struct {
	container *container.Container
}

// NewAnswerHandler creates a new answer handler
func NewAnswerHandler(container *container.Container) *AnswerHandler {
	return &AnswerHandler{container: container}
}

// CheckAnswer handles POST /api/checkAnswer
func (h *AnswerHandler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	var req domain.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, errors.NewValidationError("invalid request body"), log)
		return
	}

	if appErr := validateAnswerRequest(&req); appErr != nil {
		middleware.WriteErrorResponse(w, appErr, log)
		return
	}

	sub := domain.Submission{
		QuestionID: req.QuestionID,
		Answer:     req.Answer,
		Position:   domain.Position{Lat: req.Lat, Lng: req.Lng},
		MemberID:   req.MemberID,
	}

	resp, err := h.container.Answers.Submit(r.Context(), sub)
	if err != nil {
		appErr, ok := errors.AsAppError(err)
		if !ok {
			appErr = errors.NewInternalError("submission failed", err)
		}
		middleware.WriteErrorResponse(w, appErr, log)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.WithError(err).Error("Failed to encode answer response")
	}
}

func validateAnswerRequest(req *domain.AnswerRequest) *errors.AppError {
	if len(req.QuestionID) != domain.QuestionIDLength {
		return errors.NewValidationError("questionId is malformed")
	}
	if req.Answer == "" {
		return errors.NewValidationError("answer is required")
	}
	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		return errors.NewValidationError("coordinates out of bounds")
	}
	return middleware.ValidateMemberID(req.MemberID)
}
