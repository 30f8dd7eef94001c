package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avvvet/fantasy-services/internal/apisvc/service"
)

func (h *Handler) SettlementRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := h.svc.Settlements.RecentRuns(r.Context(), limit)
	if err != nil {
		h.serviceError(w, err, "Failed to fetch settlement runs")
		return
	}
	h.CreateResponse(w, http.StatusOK, M{"success": true, "data": runs, "count": len(runs)})
}

func (h *Handler) RunSettlement(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Settlements.RunNow(r.Context())
	if errors.Is(err, service.ErrTriggerUnavailable) {
		h.fail(w, http.StatusServiceUnavailable, "Settlement service unavailable", nil)
		return
	}
	if err != nil {
		h.serviceError(w, err, "Failed to run settlement check")
		return
	}
	h.CreateResponse(w, http.StatusOK, M{"success": report.Error == "", "report": report})
}
