package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mirage-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func answerRequest() domain.AnswerRequest {
	return domain.AnswerRequest{
		QuestionID: testQuestionID,
		Answer:     "seven",
		Lat:        30.3539,
		Lng:        76.3683,
		MemberID:   "m1",
	}
}

func TestCheckAnswerAccepted(t *testing.T) {
	h := NewAnswerHandler(newTestContainer(t))

	rec := postJSON(t, h.CheckAnswer, "/api/checkAnswer", answerRequest())

	require.Equal(t, http.StatusOK, rec.Code)
	var resp domain.AnswerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.NextHint)
}

func TestCheckAnswerRejectionStatuses(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*domain.AnswerRequest)
		wantStatus int
		wantError  string
	}{
		{
			name:       "unknown question",
			mutate:     func(r *domain.AnswerRequest) { r.QuestionID = "q9999999999999999999" },
			wantStatus: http.StatusNotFound,
			wantError:  "Not found",
		},
		{
			name:       "out of range",
			mutate:     func(r *domain.AnswerRequest) { r.Lat, r.Lng = 30.400, 76.400 },
			wantStatus: http.StatusNotFound,
			wantError:  "Out of range",
		},
		{
			name:       "unknown member",
			mutate:     func(r *domain.AnswerRequest) { r.MemberID = "stranger" },
			wantStatus: http.StatusNotFound,
			wantError:  "Team not found",
		},
		{
			name:       "wrong answer",
			mutate:     func(r *domain.AnswerRequest) { r.Answer = "eight" },
			wantStatus: http.StatusBadRequest,
			wantError:  "Incorrect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAnswerHandler(newTestContainer(t))

			req := answerRequest()
			tt.mutate(&req)
			rec := postJSON(t, h.CheckAnswer, "/api/checkAnswer", req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, decodeError(t, rec))
		})
	}
}

func TestCheckAnswerReplayConflict(t *testing.T) {
	h := NewAnswerHandler(newTestContainer(t))

	rec := postJSON(t, h.CheckAnswer, "/api/checkAnswer", answerRequest())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h.CheckAnswer, "/api/checkAnswer", answerRequest())
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Already answered", decodeError(t, rec))
}

func TestCheckAnswerValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.AnswerRequest)
	}{
		{"short question id", func(r *domain.AnswerRequest) { r.QuestionID = "q1" }},
		{"long question id", func(r *domain.AnswerRequest) { r.QuestionID = testQuestionID + "x" }},
		{"empty answer", func(r *domain.AnswerRequest) { r.Answer = "" }},
		{"latitude out of bounds", func(r *domain.AnswerRequest) { r.Lat = 91 }},
		{"longitude out of bounds", func(r *domain.AnswerRequest) { r.Lng = 181 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAnswerHandler(newTestContainer(t))

			req := answerRequest()
			tt.mutate(&req)
			rec := postJSON(t, h.CheckAnswer, "/api/checkAnswer", req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCheckAnswerMissingMemberID(t *testing.T) {
	h := NewAnswerHandler(newTestContainer(t))

	req := answerRequest()
	req.MemberID = ""
	rec := postJSON(t, h.CheckAnswer, "/api/checkAnswer", req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckAnswerMalformedBody(t *testing.T) {
	h := NewAnswerHandler(newTestContainer(t))

	req := httptest.NewRequest(http.MethodPost, "/api/checkAnswer", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.CheckAnswer(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
