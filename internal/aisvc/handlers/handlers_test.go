package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avvvet/fantasy-services/internal/aisvc/service"
	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *chi.Mux {
	r := chi.NewRouter()
	NewHandler(service.NewLineupService(nil, nil), false).SetRoutes(r)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestPredictLineup(t *testing.T) {
	rec := post(newRouter(), "/api/ai/predict-lineup",
		`{"leagueId":3,"playerAddress":"0x1","availablePlayers":[1,2,3],"positions":["PG","C"],"optimizationGoal":"conservative"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var rsp models.LineupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rsp))
	assert.True(t, rsp.Success)
	assert.Len(t, rsp.Lineup.Positions, 2)
	assert.Equal(t, "rule-based", rsp.Lineup.AIMethod)
	assert.Equal(t, "conservative", rsp.Metadata.Strategy)
	assert.Equal(t, uint64(3), rsp.Metadata.LeagueID)
}

func TestPredictLineup_BadRequest(t *testing.T) {
	rec := post(newRouter(), "/api/ai/predict-lineup", `{"leagueId":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(newRouter(), "/api/ai/predict-lineup", `nope`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlayerAnalysis(t *testing.T) {
	rec := post(newRouter(), "/api/ai/player-analysis", `{"playerId":9}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var rsp models.PlayerAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rsp))
	assert.Equal(t, 9, rsp.PlayerID)

	rec = post(newRouter(), "/api/ai/player-analysis", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing playerId")
}

func TestPredictionHistory_NoStore(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ai/history/0x1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"predictions":[]}`, rec.Body.String())
}
