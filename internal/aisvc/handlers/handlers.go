package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/avvvet/fantasy-services/internal/aisvc/service"
	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	lineups *service.LineupService
	gemini  bool
}

func NewHandler(lineups *service.LineupService, gemini bool) *Handler {
	return &Handler{lineups: lineups, gemini: gemini}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("Error encoding response: %v", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		msg := strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
		h.CreateResponse(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}
	log.Errorf("Error handling AI request: %v", err)
	h.CreateResponse(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, http.StatusOK, map[string]any{
		"status":            "healthy",
		"service":           "Flow Fantasy Fusion AI",
		"version":           "1.0.0",
		"gemini_configured": h.gemini,
	})
}

func (h *Handler) PredictLineup(w http.ResponseWriter, r *http.Request) {
	var req models.LineupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rsp, err := h.lineups.Predict(r.Context(), &req)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.CreateResponse(w, http.StatusOK, rsp)
}

func (h *Handler) PlayerAnalysis(w http.ResponseWriter, r *http.Request) {
	var req models.PlayerAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rsp, err := h.lineups.Analyze(req.PlayerID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.CreateResponse(w, http.StatusOK, rsp)
}

func (h *Handler) PredictionHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	history, err := h.lineups.History(r.Context(), chi.URLParam(r, "address"), limit)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.CreateResponse(w, http.StatusOK, map[string]any{"success": true, "predictions": history})
}
