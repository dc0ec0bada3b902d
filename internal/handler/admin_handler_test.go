package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mirage-api/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminGet(h http.HandlerFunc, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("X-Operator-Token", token)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func adminPost(h http.HandlerFunc, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if token != "" {
		req.Header.Set("X-Operator-Token", token)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRefreshCacheRequiresToken(t *testing.T) {
	h := NewAdminHandler(newTestContainer(t))

	assert.Equal(t, http.StatusUnauthorized, adminPost(h.RefreshCache, "/api/admin/refreshCache", "").Code)
	assert.Equal(t, http.StatusUnauthorized, adminPost(h.RefreshCache, "/api/admin/refreshCache", "wrong").Code)
	assert.Equal(t, http.StatusOK, adminPost(h.RefreshCache, "/api/admin/refreshCache", "op-secret").Code)
}

func TestRefreshCacheDisabledWithoutToken(t *testing.T) {
	c := newTestContainer(t)
	c.Config.OperatorToken = ""
	h := NewAdminHandler(c)

	assert.Equal(t, http.StatusUnauthorized, adminPost(h.RefreshCache, "/api/admin/refreshCache", "anything").Code)
}

func TestRefreshCachePicksUpNewQuestions(t *testing.T) {
	c := newTestContainer(t)
	h := NewAdminHandler(c)

	rec := adminPost(h.RefreshCache, "/api/admin/refreshCache", "op-secret")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Refreshed bool `json:"refreshed"`
		Questions int  `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Refreshed)
	assert.Equal(t, 1, body.Questions)
}

func TestRefreshCacheStoreFailure(t *testing.T) {
	c := newTestContainer(t)
	store := c.Questions.(*stubQuestionStore)
	store.mu.Lock()
	store.listErr = errors.New("store down")
	store.mu.Unlock()

	h := NewAdminHandler(c)
	rec := adminPost(h.RefreshCache, "/api/admin/refreshCache", "op-secret")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// The snapshot loaded at startup keeps serving.
	assert.True(t, c.Index.Ready())
}

func TestLogsReturnsRecentLines(t *testing.T) {
	c := newTestContainer(t)
	log, err := logger.New("info")
	require.NoError(t, err)
	c.Logger = log

	c.Logger.Info("The fountain sings at dawn")
	c.Logger.Info("Unrelated line")
	h := NewAdminHandler(c)

	rec := adminGet(h.Logs, "/logs?q=fountain", "op-secret")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Lines []string `json:"lines"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Contains(t, body.Lines[0], "fountain")
}

func TestLogsLimitValidation(t *testing.T) {
	h := NewAdminHandler(newTestContainer(t))

	assert.Equal(t, http.StatusBadRequest, adminGet(h.Logs, "/logs?limit=0", "op-secret").Code)
	assert.Equal(t, http.StatusBadRequest, adminGet(h.Logs, "/logs?limit=abc", "op-secret").Code)
	assert.Equal(t, http.StatusUnauthorized, adminGet(h.Logs, "/logs", "").Code)
}
