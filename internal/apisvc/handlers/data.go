package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	h.CreateResponse(w, http.StatusOK, M{
		"success": true,
		"players": h.svc.Data.Players(limit),
	})
}

func (h *Handler) NFT(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "nftId"))
	if err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid NFT ID", nil)
		return
	}
	h.CreateResponse(w, http.StatusOK, M{"success": true, "nft": h.svc.Data.NFT(id)})
}

func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "leagueId")
	if !ok {
		h.fail(w, http.StatusBadRequest, "Invalid league ID", nil)
		return
	}

	perf := h.svc.Data.Performance(id)
	h.CreateResponse(w, http.StatusOK, M{
		"success":         true,
		"leagueId":        perf.LeagueID,
		"performanceData": perf.PerformanceData,
		"timestamp":       perf.Timestamp,
	})
}
