package ws

import (
	"encoding/json"
	"sync"

	"github.com/avvvet/fantasy-services/internal/comm"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Client message types.
const (
	WatchLeague   = "watch-league"
	UnwatchLeague = "unwatch-league"
	Watching      = "watching"
)

// client serializes writes, gorilla connections allow one concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

type Ws struct {
	connMap sync.Map // socketId -> *client

	mu      sync.RWMutex
	leagues map[uint64]map[string]struct{} // leagueId -> watching sockets
}

func NewWs() *Ws {
	return &Ws{leagues: map[uint64]map[string]struct{}{}}
}

// handle socket message from web clients
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case WatchLeague, UnwatchLeague:
		var payload comm.LeagueWatch
		if err := json.Unmarshal(message.Data, &payload); err != nil || payload.LeagueId == 0 {
			log.Errorf("Error: invalid %s payload from socket %s", message.Type, socketId)
			s.SendError(socketId, "invalid league_id")
			return
		}

		watching := message.Type == WatchLeague
		if watching {
			s.Watch(socketId, payload.LeagueId)
		} else {
			s.Unwatch(socketId, payload.LeagueId)
		}
		s.reply(socketId, Watching, map[string]any{"league_id": payload.LeagueId, "watching": watching})
	default:
		log.Warnf("unknown event received: %s", message.Type)
		s.SendError(socketId, "unknown message type")
	}
}

func (s *Ws) Watch(socketId string, leagueId uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sockets, ok := s.leagues[leagueId]
	if !ok {
		sockets = map[string]struct{}{}
		s.leagues[leagueId] = sockets
	}
	sockets[socketId] = struct{}{}
}

func (s *Ws) Unwatch(socketId string, leagueId uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sockets, ok := s.leagues[leagueId]; ok {
		delete(sockets, socketId)
		if len(sockets) == 0 {
			delete(s.leagues, leagueId)
		}
	}
}

func (s *Ws) Watchers(leagueId uint64) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sockets := make([]string, 0, len(s.leagues[leagueId]))
	for id := range s.leagues[leagueId] {
		sockets = append(sockets, id)
	}
	return sockets
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, &client{conn: conn})
}

func (s *Ws) getClient(socketId string) (*client, bool) {
	c, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return c.(*client), true
}

// HandleDisconnect forgets the socket and all of its watches.
func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sockets := range s.leagues {
		delete(sockets, socketId)
		if len(sockets) == 0 {
			delete(s.leagues, id)
		}
	}
}

// Deliver forwards a league event to the sockets watching that league.
// league-created goes to every socket.
func (s *Ws) Deliver(m *comm.WSMessage) {
	if m.Type == comm.LeagueCreated {
		s.connMap.Range(func(key, value any) bool {
			s.sendTo(key.(string), m)
			return true
		})
		return
	}

	leagueId, ok := comm.LeagueOf(m)
	if !ok {
		log.Warnf("event %s without league id dropped", m.Type)
		return
	}
	for _, socketId := range s.Watchers(leagueId) {
		s.sendTo(socketId, m)
	}
}

func (s *Ws) Stats() map[string]int {
	conns := 0
	s.connMap.Range(func(_, _ any) bool {
		conns++
		return true
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{"connections": conns, "leagues": len(s.leagues)}
}

// SendError tells a client its message could not be handled.
func (s *Ws) SendError(socketId, errorMsg string) {
	s.reply(socketId, "error", map[string]string{"error": errorMsg})
}

func (s *Ws) reply(socketId, msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Errorf("Failed to marshal %s reply: %v", msgType, err)
		return
	}
	s.sendTo(socketId, &comm.WSMessage{Type: msgType, Data: raw})
}

func (s *Ws) sendTo(socketId string, m *comm.WSMessage) {
	c, ok := s.getClient(socketId)
	if !ok {
		return
	}
	out := *m
	out.SocketId = ""
	if err := c.send(&out); err != nil {
		log.Errorf("Failed to send %s to socket %s: %v", m.Type, socketId, err)
	}
}
