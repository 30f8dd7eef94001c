package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/fantasy-services/configs"
	"github.com/avvvet/fantasy-services/internal/aisvc/handlers"
	"github.com/avvvet/fantasy-services/internal/aisvc/predictor"
	"github.com/avvvet/fantasy-services/internal/aisvc/service"
	"github.com/avvvet/fantasy-services/internal/aisvc/store"
	"github.com/avvvet/fantasy-services/internal/db"
)

const SERVICE_NAME = "ai"

var settings config.Settings

func init() {
	config.LoadEnv(SERVICE_NAME)
	settings = config.Load()
	config.Logging(SERVICE_NAME+"_service", settings.LogLevel)
	config.CreateUniqueInstance(SERVICE_NAME)
}

func main() {
	ctx := context.Background()

	var gen predictor.Generator
	if settings.GeminiAPIKey != "" {
		g, err := predictor.NewGemini(ctx, settings.GeminiAPIKey, settings.GeminiModel)
		if err != nil {
			log.Warnf("Gemini unavailable, using rule based predictions: %v", err)
		} else {
			gen = g
			log.Infof("Gemini predictions enabled (%s)", settings.GeminiModel)
		}
	}

	// prediction history is optional
	var history service.History
	if settings.MongoURI != "" {
		mdb, err := db.ConnectToMongo(ctx, settings.MongoURI)
		if err != nil {
			log.Warnf("MongoDB unavailable, prediction history disabled: %v", err)
		} else {
			if err := db.CreateTTLIndexForCollection(ctx, mdb, store.PredictionCollection); err != nil {
				log.Warnf("unable to create TTL index on %s: %v", store.PredictionCollection, err)
			}
			defer mdb.Client().Disconnect(context.Background())
			history = store.NewPredictionStore(mdb, settings.PredictionTTL)
			log.Printf("mongo connection established successfully")
		}
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(settings.FrontendURL)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	h := handlers.NewHandler(service.NewLineupService(gen, history), gen != nil)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + settings.AIPort,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
