package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/avvvet/fantasy-services/internal/apisvc/service"
	"github.com/avvvet/fantasy-services/internal/apisvc/store"
	"github.com/go-chi/chi"
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"
)

func source(cached bool) string {
	if cached {
		return "cache"
	}
	return "blockchain"
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	// the chain limiter only counts requests that miss the cache
	allow := func() bool {
		key, err := httprate.KeyByIP(r)
		if err != nil {
			return true
		}
		return !h.chainLimiter.OnLimit(w, r, key)
	}

	leagues, cached, err := h.svc.Leagues.ListLeagues(r.Context(), allow)
	switch {
	case errors.Is(err, service.ErrRateLimited):
		h.CreateResponse(w, http.StatusTooManyRequests, ErrorResponse{
			Error:      "Too many requests. Please wait a moment and try again.",
			RetryAfter: int(h.limits.ChainWindow.Seconds()),
		})
		return
	case err != nil:
		log.Errorf("Error fetching leagues: %v", err)
		h.fail(w, http.StatusInternalServerError, "Failed to fetch leagues from blockchain", err)
		return
	}

	rsp := M{
		"success": true,
		"data":    leagues,
		"cached":  cached,
		"source":  source(cached),
	}
	if !cached {
		rsp["count"] = len(leagues)
		log.Infof("Successfully fetched %d leagues from blockchain", len(leagues))
	}
	h.CreateResponse(w, http.StatusOK, rsp)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "leagueId")
	if !ok {
		h.fail(w, http.StatusBadRequest, "Invalid league ID", nil)
		return
	}

	league, cached, err := h.svc.Leagues.GetLeague(r.Context(), id)
	switch {
	case errors.Is(err, service.ErrLeagueNotFound):
		h.fail(w, http.StatusNotFound, fmt.Sprintf("League %d not found on blockchain", id), nil)
		return
	case err != nil:
		log.Errorf("Error fetching league %d: %v", id, err)
		h.fail(w, http.StatusInternalServerError, "Failed to fetch league details from blockchain", err)
		return
	}

	h.CreateResponse(w, http.StatusOK, M{
		"success": true,
		"league":  league,
		"cached":  cached,
		"source":  source(cached),
	})
}

func (h *Handler) LeagueParticipants(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "leagueId")
	if !ok {
		h.fail(w, http.StatusBadRequest, "Invalid league ID", nil)
		return
	}

	participants, err := h.svc.Leagues.Participants(r.Context(), id)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, "Failed to fetch participants", err)
		return
	}

	h.CreateResponse(w, http.StatusOK, M{
		"success": true,
		"data":    participants,
		"count":   len(participants),
		"source":  "blockchain",
	})
}

func (h *Handler) LeagueStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "leagueId")
	if !ok {
		h.fail(w, http.StatusBadRequest, "Invalid league ID", nil)
		return
	}

	status, err := h.svc.Leagues.Status(r.Context(), id)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, "Failed to fetch league status", err)
		return
	}

	h.CreateResponse(w, http.StatusOK, M{
		"success": true,
		"data":    status,
		"source":  "blockchain",
	})
}

func (h *Handler) ClearLeagueCache(w http.ResponseWriter, r *http.Request) {
	h.svc.Leagues.FlushCache()
	h.CreateResponse(w, http.StatusOK, M{
		"success": true,
		"message": "Cache cleared successfully",
	})
}

func (h *Handler) GetLeagueRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "requestId"), 10, 64)
	if err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid request ID", nil)
		return
	}

	req, err := h.svc.Leagues.LeagueRequest(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.fail(w, http.StatusNotFound, "League request not found", nil)
		return
	}
	if err != nil {
		h.serviceError(w, err, "Failed to fetch league request")
		return
	}
	h.CreateResponse(w, http.StatusOK, M{"success": true, "request": req})
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	var req models.LeagueRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.svc.Leagues.CreateLeague(r.Context(), &req); err != nil {
		h.serviceError(w, err, "Failed to create league")
		return
	}

	h.CreateResponse(w, http.StatusOK, M{
		"success":  true,
		"leagueId": req.ID,
		"status":   req.Status,
		"message":  "League created successfully",
	})
}
