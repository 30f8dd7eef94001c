package routes

import (
	"time"

	"github.com/avvvet/fantasy-services/internal/socketsvc/handlers"
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

func SetRoutes(r *chi.Mux, h *handlers.Handler, tokenAuth *jwtauth.JWTAuth) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/ws", h.HandleWebSocket)
		r.Get("/health", h.HealthHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/stats", h.StatsHandler)
		})
	})
}

func InitAuth(secret string, debug bool) *jwtauth.JWTAuth {
	tokenAuth := jwtauth.New("HS256", []byte(secret), nil)
	if !debug {
		return tokenAuth
	}

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()
	_, tokenString, _ := tokenAuth.Encode(map[string]interface{}{
		"role": "admin",
		"exp":  expirationTime,
	})

	// For debugging only, never enabled in production
	log.Infof("DEBUG: socket stats JWT for testing : %s", tokenString)
	return tokenAuth
}
