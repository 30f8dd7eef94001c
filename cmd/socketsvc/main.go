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
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/fantasy-services/configs"
	"github.com/avvvet/fantasy-services/internal/comm"
	"github.com/avvvet/fantasy-services/internal/nats"
	"github.com/avvvet/fantasy-services/internal/socketsvc/broker"
	"github.com/avvvet/fantasy-services/internal/socketsvc/handlers"
	"github.com/avvvet/fantasy-services/internal/socketsvc/routes"
	"github.com/avvvet/fantasy-services/internal/socketsvc/ws"
)

const SERVICE_NAME = "socket"

var settings config.Settings

func init() {
	config.LoadEnv(SERVICE_NAME)
	settings = config.Load()
	config.Logging(SERVICE_NAME+"_service", settings.LogLevel)
	config.CreateUniqueInstance(SERVICE_NAME)
}

func main() {
	// Connect to NATS
	n, err := nats.Connect(settings.NatsURL, settings.NatsToken, SERVICE_NAME+"_service")
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(1)
	}
	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(settings.FrontendURL)

	// Middleware, no Timeout: websocket connections are long lived
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(settings.APIRateLimit, settings.APIRateWindow))

	s := ws.NewWs()
	tokenAuth := routes.InitAuth(settings.JWTSecret, settings.Env == "development")
	routes.SetRoutes(r, handlers.NewHandler(s, settings.SocketPort), tokenAuth)

	// league events from the api and settlement services
	b := broker.NewBroker(n.Conn, s.Deliver)
	sub, err := b.Subscribe(comm.LeagueTopic)
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:        ":" + settings.SocketPort,
		Handler:     r,
		ReadTimeout: 60 * time.Second,
		IdleTimeout: 60 * time.Second,
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

	sub.Unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
