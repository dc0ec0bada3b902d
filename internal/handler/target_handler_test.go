package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"mirage-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTargetInRange(t *testing.T) {
	h := NewTargetHandler(newTestContainer(t))

	rec := postJSON(t, h.GetTarget, "/api/getTarget", domain.TargetRequest{
		Lat: 30.3539, Lng: 76.3683, MemberID: "m1",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp domain.TargetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, testQuestionID, resp.Questions[0].ID)
	assert.Equal(t, "Fountain", resp.Questions[0].Title)
	assert.Equal(t, "How many jets?", resp.Questions[0].Prompt)
}

func TestGetTargetOutOfRange(t *testing.T) {
	h := NewTargetHandler(newTestContainer(t))

	rec := postJSON(t, h.GetTarget, "/api/getTarget", domain.TargetRequest{
		Lat: 30.300, Lng: 76.300, MemberID: "m1",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp domain.TargetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Questions)
	assert.Empty(t, resp.Questions)
}

func TestGetTargetNeverLeaksAnswer(t *testing.T) {
	h := NewTargetHandler(newTestContainer(t))

	rec := postJSON(t, h.GetTarget, "/api/getTarget", domain.TargetRequest{
		Lat: 30.3539, Lng: 76.3683, MemberID: "m1",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "seven")
	assert.NotContains(t, rec.Body.String(), "falling water")
}

func TestGetTargetValidation(t *testing.T) {
	h := NewTargetHandler(newTestContainer(t))

	rec := postJSON(t, h.GetTarget, "/api/getTarget", domain.TargetRequest{
		Lat: 91, Lng: 76.3683, MemberID: "m1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.GetTarget, "/api/getTarget", domain.TargetRequest{
		Lat: 30.3539, Lng: 76.3683,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
