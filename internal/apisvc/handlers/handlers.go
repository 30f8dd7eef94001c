package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/avvvet/fantasy-services/internal/apisvc/service"
	"github.com/avvvet/fantasy-services/internal/apisvc/store"
	"github.com/go-chi/chi"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

const Version = "1.0.0"

// M is a JSON object body.
type M map[string]any

type Limits struct {
	API         int
	APIWindow   time.Duration
	Chain       int
	ChainWindow time.Duration
}

type Services struct {
	Leagues     *service.LeagueService
	Staking     *service.StakingService
	AI          *service.AIService
	Data        *service.DataService
	Settlements *service.SettlementService
}

type Handler struct {
	tokenAuth    *jwtauth.JWTAuth
	svc          Services
	limits       Limits
	chainLimiter *httprate.RateLimiter
	started      time.Time
}

func NewHandler(svc Services, limits Limits) *Handler {
	if limits.API <= 0 {
		limits.API = 100
	}
	if limits.APIWindow <= 0 {
		limits.APIWindow = 15 * time.Minute
	}
	if limits.Chain <= 0 {
		limits.Chain = 5
	}
	if limits.ChainWindow <= 0 {
		limits.ChainWindow = 10 * time.Second
	}

	return &Handler{
		svc:          svc,
		limits:       limits,
		chainLimiter: httprate.NewRateLimiter(limits.Chain, limits.ChainWindow, httprate.WithKeyFuncs(httprate.KeyByIP)),
		started:      time.Now(),
	}
}

type ErrorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

type ErrorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("Error encoding response: %v", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, code int, msg string, err error) {
	rsp := ErrorResponse{Error: msg}
	if err != nil {
		rsp.Details = err.Error()
	}
	h.CreateResponse(w, code, rsp)
}

// serviceError maps service and store errors onto HTTP statuses.
func (h *Handler) serviceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		text := strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
		h.fail(w, http.StatusBadRequest, text, nil)
	case errors.Is(err, store.ErrDuplicate):
		h.fail(w, http.StatusConflict, msg, err)
	case service.Throttled(err):
		w.Header().Set("Retry-After", "1")
		h.fail(w, http.StatusTooManyRequests, msg, err)
	default:
		log.Errorf("%s: %v", msg, err)
		h.fail(w, http.StatusInternalServerError, msg, err)
	}
}

func decode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func uintParam(r *http.Request, name string) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, http.StatusOK, M{
		"name":    "Flow Fantasy Fusion API",
		"version": Version,
		"status":  "operational",
		"endpoints": M{
			"health":  "/api/health",
			"leagues": "/api/leagues",
			"staking": "/api/staking",
			"ai":      "/api/ai",
			"data":    "/api/data",
		},
	})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	h.CreateResponse(w, http.StatusOK, M{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"uptime":    time.Since(h.started).Seconds(),
		"memory": M{
			"alloc":      mem.Alloc,
			"heapInuse":  mem.HeapInuse,
			"sys":        mem.Sys,
			"goroutines": runtime.NumGoroutine(),
		},
		"services": M{
			"api":        "operational",
			"blockchain": "connected",
			"ai":         "operational",
			"cache":      "operational",
		},
	})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, http.StatusNotFound, M{
		"error": ErrorBody{Message: "Endpoint not found", Status: http.StatusNotFound},
	})
}

func (h *Handler) tooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.fail(w, http.StatusTooManyRequests, "Too many requests from this IP, please try again later.", nil)
}

// Recoverer turns panics into a JSON 500.
func (h *Handler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			log.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, rvr)
			h.CreateResponse(w, http.StatusInternalServerError, M{
				"error": ErrorBody{Message: "Internal server error", Status: http.StatusInternalServerError},
			})
		}()
		next.ServeHTTP(w, r)
	})
}
