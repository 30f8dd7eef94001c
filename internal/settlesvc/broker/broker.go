package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avvvet/fantasy-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Checker runs one settlement pass.
type Checker interface {
	Check(ctx context.Context) *comm.SettlementReport
}

type Broker struct {
	Conn         *nats.Conn
	Checker      Checker
	CheckTimeout time.Duration
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{
		Conn:         nc,
		CheckTimeout: 5 * time.Minute,
	}
}

// Publish sends a league event on the league topic.
func (b *Broker) Publish(msgType string, data any) error {
	payload, err := comm.Envelope(msgType, data, "")
	if err != nil {
		return fmt.Errorf("unable to marshal %s: %w", msgType, err)
	}
	return b.Conn.Publish(comm.LeagueTopic, payload)
}

// SubscribeTrigger answers settlement.trigger requests with a report.
func (b *Broker) SubscribeTrigger(checker Checker) (*nats.Subscription, error) {
	b.Checker = checker
	return b.Conn.Subscribe(comm.SettlementTrigger, b.handleTrigger)
}

func (b *Broker) handleTrigger(msg *nats.Msg) {
	log.Info("[Settlement] check requested over NATS")

	ctx, cancel := context.WithTimeout(context.Background(), b.CheckTimeout)
	defer cancel()

	reply, err := b.report(ctx)
	if err != nil {
		log.Errorf("Error encoding settlement report: %v", err)
		return
	}
	if msg.Reply == "" {
		return
	}
	if err := msg.Respond(reply); err != nil {
		log.Errorf("Error replying to settlement trigger: %v", err)
	}
}

func (b *Broker) report(ctx context.Context) ([]byte, error) {
	return json.Marshal(b.Checker.Check(ctx))
}
