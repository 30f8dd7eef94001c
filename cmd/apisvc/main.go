package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/fantasy-services/configs"
	"github.com/avvvet/fantasy-services/internal/apisvc/aiclient"
	"github.com/avvvet/fantasy-services/internal/apisvc/broker"
	"github.com/avvvet/fantasy-services/internal/apisvc/cache"
	"github.com/avvvet/fantasy-services/internal/apisvc/handlers"
	"github.com/avvvet/fantasy-services/internal/apisvc/service"
	"github.com/avvvet/fantasy-services/internal/apisvc/store"
	"github.com/avvvet/fantasy-services/internal/db"
	"github.com/avvvet/fantasy-services/internal/flow"
	nats "github.com/avvvet/fantasy-services/internal/nats"
)

const SERVICE_NAME = "api"

var settings config.Settings

func init() {
	config.LoadEnv(SERVICE_NAME)
	settings = config.Load()
	config.Logging(SERVICE_NAME+"_service", settings.LogLevel)
	config.CreateUniqueInstance(SERVICE_NAME)
}

func main() {
	// pg connection
	if err := db.Migrate(settings.PostgresURL); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}
	dbpool, err := db.Connect(settings.PostgresURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	leagueStore := store.NewLeagueStore(dbpool)
	stakeStore := store.NewStakeStore(dbpool)
	settlementStore := store.NewSettlementStore(dbpool)

	// blockchain access node
	client, err := flow.Dial(settings.FlowAccessNode)
	if err != nil {
		log.Fatalf("Failed to create flow client: %v", err)
	}
	contracts := flow.NewContracts(client, flow.Addresses{
		LeagueFactory: settings.LeagueFactoryAddress,
		Staking:       settings.StakingAddress,
		Settlement:    settings.SettlementAddress,
		FlowToken:     settings.FlowTokenAddress,
		FungibleToken: settings.FungibleTokenAddress,
	})
	log.Infof("Flow %s access node: %s", settings.FlowNetwork, settings.FlowAccessNode)

	// Connect to NATS
	n, err := nats.Connect(settings.NatsURL, settings.NatsToken, SERVICE_NAME+"_service")
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(1)
	}
	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	leagueCache := cache.New(settings.LeagueCacheTTL)
	b := broker.NewBroker(n.Conn, nil)

	leagueService := service.NewLeagueService(contracts, leagueCache, leagueStore, b)
	b.Leagues = leagueService

	// league-settled events flush the league cache
	sub, err := b.SubscribeLeagueEvents()
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(1)
	}

	// Init handlers and routes
	h := handlers.NewHandler(handlers.Services{
		Leagues:     leagueService,
		Staking:     service.NewStakingService(stakeStore, settlementStore, contracts, b),
		AI:          service.NewAIService(aiclient.New(settings.AIServiceURL)),
		Data:        service.NewDataService(),
		Settlements: service.NewSettlementService(settlementStore, b),
	}, handlers.Limits{
		API:         settings.APIRateLimit,
		APIWindow:   settings.APIRateWindow,
		Chain:       settings.ChainRateLimit,
		ChainWindow: settings.ChainRateWindow,
	})
	h.InitAuth(settings.JWTSecret, settings.Env == "development")
	r := h.Router(settings.FrontendURL)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + settings.APIPort,
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
	log.Infof("%s service running at port %s (%s)", SERVICE_NAME, server.Addr, settings.Env)

	// Wait for interrupt signal to gracefully shutdown the server
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
