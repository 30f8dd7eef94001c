package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avvvet/fantasy-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// CacheFlusher is notified when cached league reads become stale.
type CacheFlusher interface {
	FlushCache()
}

type Broker struct {
	Conn    *nats.Conn
	Leagues CacheFlusher
}

func NewBroker(nc *nats.Conn, leagues CacheFlusher) *Broker {
	return &Broker{
		Conn:    nc,
		Leagues: leagues,
	}
}

// Publish wraps data in a WSMessage envelope and publishes it on the league topic.
func (b *Broker) Publish(msgType string, data any) error {
	payload, err := comm.Envelope(msgType, data, "")
	if err != nil {
		return fmt.Errorf("unable to marshal %s: %w", msgType, err)
	}

	if err := b.Conn.Publish(comm.LeagueTopic, payload); err != nil {
		log.Errorf("Error publishing to topic %s: %s", comm.LeagueTopic, err)
		return err
	}
	return nil
}

func (b *Broker) SubscribeLeagueEvents() (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(comm.LeagueTopic, b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// handles league events, settled leagues invalidate the cache
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	msg := &comm.WSMessage{}
	if err := json.Unmarshal(msgNat.Data, msg); err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	switch msg.Type {
	case comm.LeagueSettled:
		id, _ := comm.LeagueOf(msg)
		log.Infof("League %d settled, clearing league cache", id)
		b.Leagues.FlushCache()
	case comm.LeagueCreated, comm.StakePlaced:
		// nothing cached depends on these
	default:
		log.Debugf("ignoring message type %q", msg.Type)
	}
}

// TriggerSettlement asks the settlement service to run a check now and
// waits for its report.
func (b *Broker) TriggerSettlement(ctx context.Context) (*comm.SettlementReport, error) {
	resp, err := b.Conn.RequestWithContext(ctx, comm.SettlementTrigger, nil)
	if err != nil {
		return nil, fmt.Errorf("settlement trigger: %w", err)
	}

	report := &comm.SettlementReport{}
	if err := json.Unmarshal(resp.Data, report); err != nil {
		return nil, fmt.Errorf("settlement report: %w", err)
	}
	return report, nil
}
