package handlers

import (
	"time"

	config "github.com/avvvet/fantasy-services/configs"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

// Router builds the service mux: middleware first, then the routes.
// InitAuth must run before it.
func (h *Handler) Router(origins string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(h.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(config.CORS(origins).Handler)

	h.SetRoutes(r)
	return r
}

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Get("/", h.Root)

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.Limit(h.limits.API, h.limits.APIWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(h.tooManyRequests),
		))

		r.Get("/health", h.HealthHandler)

		r.Route("/leagues", func(r chi.Router) {
			r.Get("/", h.ListLeagues)
			r.Post("/", h.CreateLeague)
			r.Delete("/cache", h.ClearLeagueCache)
			r.Get("/requests/{requestId}", h.GetLeagueRequest)
			r.Get("/{leagueId}", h.GetLeague)
			r.Get("/{leagueId}/participants", h.LeagueParticipants)
			r.Get("/{leagueId}/status", h.LeagueStatus)
		})

		r.Route("/staking", func(r chi.Router) {
			r.Post("/stake", h.Stake)
			r.Post("/schedule-settlement", h.ScheduleSettlement)
			r.Get("/{leagueId}/{playerAddress}", h.StakeInfo)
		})

		r.Route("/accounts/{address}", func(r chi.Router) {
			r.Get("/balance", h.AccountBalance)
			r.Get("/stakes", h.AccountStakes)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Post("/predict-lineup", h.PredictLineup)
			r.Post("/player-analysis", h.PlayerAnalysis)
		})

		r.Route("/data", func(r chi.Router) {
			r.Get("/players", h.Players)
			r.Get("/nft/{nftId}", h.NFT)
			r.Get("/performance/{leagueId}", h.Performance)
		})

		// Secure routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/settlements", h.SettlementRuns)
			r.Post("/settlements/run", h.RunSettlement)
		})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)
}

// InitAuth must run before SetRoutes.
func (h *Handler) InitAuth(secret string, debug bool) {
	h.tokenAuth = jwtauth.New("HS256", []byte(secret), nil)

	if !debug {
		return
	}

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()
	_, tokenString, _ := h.tokenAuth.Encode(map[string]interface{}{
		"role": "admin",
		"exp":  expirationTime,
	})

	// For debugging only, never enabled in production
	log.Infof("DEBUG: admin JWT for testing : %s", tokenString)
}
