package handlers

import (
	"net/http"

	"github.com/avvvet/fantasy-services/internal/apisvc/service"
	"github.com/go-chi/chi"
)

func (h *Handler) Stake(w http.ResponseWriter, r *http.Request) {
	var req service.StakeRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	stake, err := h.svc.Staking.Stake(r.Context(), &req)
	if err != nil {
		h.serviceError(w, err, "Failed to stake tokens")
		return
	}

	h.CreateResponse(w, http.StatusOK, M{
		"success":       true,
		"txId":          stake.TxID,
		"leagueId":      stake.LeagueID,
		"playerAddress": stake.PlayerAddress,
		"amount":        stake.Amount.InexactFloat64(),
		"tokenType":     stake.TokenType,
		"timestamp":     stake.CreatedAt.UnixMilli(),
	})
}

func (h *Handler) StakeInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "leagueId")
	if !ok {
		h.fail(w, http.StatusBadRequest, "Invalid league ID", nil)
		return
	}

	info, err := h.svc.Staking.StakeInfo(r.Context(), id, chi.URLParam(r, "playerAddress"))
	if err != nil {
		h.serviceError(w, err, "Failed to fetch stake info")
		return
	}

	h.CreateResponse(w, http.StatusOK, M{"success": true, "stakeInfo": info})
}

func (h *Handler) ScheduleSettlement(w http.ResponseWriter, r *http.Request) {
	var req service.ScheduleRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sc, err := h.svc.Staking.ScheduleSettlement(r.Context(), &req)
	if err != nil {
		h.serviceError(w, err, "Failed to schedule settlement")
		return
	}

	h.CreateResponse(w, http.StatusOK, M{
		"success":       true,
		"leagueId":      sc.LeagueID,
		"scheduledTime": req.ScheduledTime,
		"txId":          sc.TxID,
		"message":       "Settlement scheduled successfully",
	})
}

func (h *Handler) AccountBalance(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	balance := h.svc.Staking.AccountBalance(r.Context(), address)

	h.CreateResponse(w, http.StatusOK, M{
		"success": true,
		"address": address,
		"balance": balance.InexactFloat64(),
		"token":   "FLOW",
	})
}

func (h *Handler) AccountStakes(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	stakes, err := h.svc.Staking.OnchainStakes(r.Context(), address)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, "Failed to fetch user stakes", err)
		return
	}

	h.CreateResponse(w, http.StatusOK, M{
		"success": true,
		"address": address,
		"stakes":  stakes,
		"count":   len(stakes),
	})
}
