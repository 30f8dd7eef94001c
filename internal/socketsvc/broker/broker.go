package broker

import (
	"encoding/json"

	"github.com/avvvet/fantasy-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

type Broker struct {
	Conn    *nats.Conn
	Deliver func(*comm.WSMessage)
}

func NewBroker(conn *nats.Conn, fncDeliver func(*comm.WSMessage)) *Broker {
	return &Broker{
		Conn:    conn,
		Deliver: fncDeliver,
	}
}

// consume league events
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// handleMessages receives events from the league and settlement services
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.WSMessage{}
	if err := json.Unmarshal(msgNats.Data, message); err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch message.Type {
	case comm.LeagueCreated, comm.StakePlaced, comm.LeagueSettled:
		b.Deliver(message)
	default:
		log.Errorf("Unknown message %s", message.Type)
	}
}
