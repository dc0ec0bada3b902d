package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mirage-api/pkg/errors"
	"mirage-api/pkg/logger"

	"github.com/google/uuid"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// maxMemberIDLength bounds the member credential so the store is never
// queried with arbitrary oversized input.
const maxMemberIDLength = 64

// ValidateMemberID checks the shape of a member credential. Membership
// itself is resolved against the team store later; this only rejects input
// that cannot possibly be a member ID.
func ValidateMemberID(memberID string) *errors.AppError {
	if memberID == "" {
		return errors.NewAuthenticationError("memberId is required")
	}
	if len(memberID) > maxMemberIDLength {
		return errors.NewAuthenticationError("memberId is malformed")
	}
	return nil
}

// RequestID creates a middleware that adds a unique request ID to each request
func RequestID(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			r = r.WithContext(ctx)

			w.Header().Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r)
		})
	}
}

// errorBody is the wire shape of every error response: the reason string for
// rejections, the message otherwise.
type errorBody struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// WriteErrorResponse writes an AppError to the client. Rejections are
// expected traffic and logged at debug; infrastructure failures at error.
func WriteErrorResponse(w http.ResponseWriter, appErr *errors.AppError, log *logger.Logger) {
	switch appErr.Type {
	case errors.ErrorTypeRejection:
		log.WithField("reason", string(appErr.Reason)).Debug("Submission rejected")
	case errors.ErrorTypeValidation, errors.ErrorTypeAuthentication:
		log.WithField("message", appErr.Message).Debug("Request rejected")
	default:
		log.WithError(appErr).Error("Request failed")
	}

	body := errorBody{
		Error:     appErr.Message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if appErr.Reason != "" {
		body.Error = string(appErr.Reason)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	_ = json.NewEncoder(w).Encode(body)
}
