package handlers

import "github.com/go-chi/chi"

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Get("/health", h.HealthHandler)

	r.Route("/api/ai", func(r chi.Router) {
		r.Post("/predict-lineup", h.PredictLineup)
		r.Post("/player-analysis", h.PlayerAnalysis)
		r.Get("/history/{address}", h.PredictionHistory)
	})
}
