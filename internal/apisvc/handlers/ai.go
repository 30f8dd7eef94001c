package handlers

import (
	"net/http"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
)

func (h *Handler) PredictLineup(w http.ResponseWriter, r *http.Request) {
	var req models.LineupRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	raw, err := h.svc.AI.PredictLineup(r.Context(), &req)
	if err != nil {
		h.serviceError(w, err, "AI service error")
		return
	}
	h.raw(w, raw)
}

func (h *Handler) PlayerAnalysis(w http.ResponseWriter, r *http.Request) {
	var req models.PlayerAnalysisRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	raw, err := h.svc.AI.PlayerAnalysis(r.Context(), req.PlayerID)
	if err != nil {
		h.serviceError(w, err, "Player analysis failed")
		return
	}
	h.raw(w, raw)
}

func (h *Handler) raw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
