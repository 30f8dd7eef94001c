package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/fantasy-services/configs"
	"github.com/avvvet/fantasy-services/internal/apisvc/store"
	"github.com/avvvet/fantasy-services/internal/db"
	"github.com/avvvet/fantasy-services/internal/flow"
	nats "github.com/avvvet/fantasy-services/internal/nats"
	"github.com/avvvet/fantasy-services/internal/settlesvc/broker"
	"github.com/avvvet/fantasy-services/internal/settlesvc/settler"
)

const SERVICE_NAME = "settlement"

var settings config.Settings

func init() {
	config.LoadEnv(SERVICE_NAME)
	settings = config.Load()
	config.Logging(SERVICE_NAME+"_service", settings.LogLevel)
	config.CreateUniqueInstance(SERVICE_NAME)
}

func main() {
	signer, err := flow.NewSigner(settings.SignerAddress, uint32(settings.SignerKeyIndex),
		settings.SignerPrivateKey, settings.SignerHashAlgo)
	if err != nil {
		log.Fatalf("Invalid settlement signer: %v", err)
	}

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
	}, flow.WithSigner(signer), flow.WithSettleTransactionFile(settings.SettleTxPath))
	log.Infof("Settling on %s as %s", settings.FlowNetwork, signer.Address.Hex())

	// pg connection, schedules and run history
	dbpool, err := db.Connect(settings.PostgresURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	// Connect to NATS
	n, err := nats.Connect(settings.NatsURL, settings.NatsToken, SERVICE_NAME+"_service")
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(1)
	}
	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	b := broker.NewBroker(n.Conn)
	s := settler.New(contracts,
		settler.WithSchedules(store.NewSettlementStore(dbpool)),
		settler.WithPublisher(b),
		settler.WithPause(settings.SettlementPause),
	)

	// on demand checks from the admin api
	sub, err := b.SubscribeTrigger(s)
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx, settings.SettlementInterval)
	}()
	log.Infof("%s service running", SERVICE_NAME)

	<-ctx.Done()
	sub.Unsubscribe()
	<-done

	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
