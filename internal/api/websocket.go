package api

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"sync"

	"brawl/internal/game"
	"brawl/internal/protocol"
	"brawl/internal/room"

	"github.com/gorilla/websocket"
)

const (
	// MaxWSConnectionsTotal is the maximum number of WebSocket connections allowed
	MaxWSConnectionsTotal = 500

	// MaxWSConnectionsPerIP is the maximum WebSocket connections per IP
	MaxWSConnectionsPerIP = 10

	// sessionSendBuffer is the per-connection outbound queue depth. A client
	// that cannot drain it fast enough starts losing snapshots, which the
	// reconciliation path absorbs.
	sessionSendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if IsAllowedOrigin(origin) {
			return true
		}

		log.Printf("⚠️ WebSocket connection rejected from origin: %s", origin)
		RecordConnectionRejected("origin")
		return false
	},
}

// RoomService is the slice of the room manager the WebSocket layer drives.
type RoomService interface {
	JoinLobby(connID, username string, s room.Sender)
	SelectCharacter(connID, characterID string)
	SelectStage(connID, stageID string)
	SubmitInput(connID string, in game.Input, sequence uint64)
	Leave(connID string)
}

// session is one client connection. It satisfies room.Sender: Send queues
// without blocking so a slow client never stalls a room's tick loop.
type session struct {
	id   string
	ip   string
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

func newSession(conn *websocket.Conn, ip string) *session {
	return &session{
		id:   newConnID(),
		ip:   ip,
		conn: conn,
		send: make(chan []byte, sessionSendBuffer),
	}
}

// Send implements room.Sender. Called from room tick goroutines.
func (s *session) Send(event string, payload any) {
	raw, err := protocol.Encode(event, payload)
	if err != nil {
		return
	}
	select {
	case s.send <- raw:
		IncrementWSMessages()
	default:
		IncrementWSDropped()
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.send)
	})
}

// writePump drains the send queue onto the wire. One per session.
func (s *session) writePump() {
	defer s.conn.Close()
	for raw := range s.send {
		if err := s.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			return
		}
	}
}

// WebSocketGateway upgrades connections and routes their messages into the
// room manager, with per-IP and total connection limits.
type WebSocketGateway struct {
	rooms RoomService

	mu       sync.Mutex
	sessions map[string]*session

	wsLimiter *WebSocketRateLimiter
}

// NewWebSocketGateway creates a gateway bound to the given room service.
func NewWebSocketGateway(rooms RoomService) *WebSocketGateway {
	return &WebSocketGateway{
		rooms:     rooms,
		sessions:  make(map[string]*session),
		wsLimiter: NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
	}
}

// ConnectionCount returns the number of live sessions.
func (g *WebSocketGateway) ConnectionCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sessions)
}

// HandleWebSocket handles incoming WebSocket connections with DoS protection.
func (g *WebSocketGateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	if g.ConnectionCount() >= MaxWSConnectionsTotal {
		log.Printf("⚠️ WebSocket connection rejected: total limit reached")
		RecordConnectionRejected("ws_total_limit")
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}

	if !g.wsLimiter.Allow(ip) {
		log.Printf("⚠️ WebSocket connection rejected from %s: per-IP limit reached", ip)
		RecordConnectionRejected("ws_ip_limit")
		http.Error(w, "Too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		g.wsLimiter.Release(ip)
		return
	}

	s := newSession(conn, ip)

	g.mu.Lock()
	g.sessions[s.id] = s
	count := len(g.sessions)
	g.mu.Unlock()

	log.Printf("📱 Client %s connected from %s (%d total)", s.id, ip, count)
	UpdateWSConnections(count)

	go s.writePump()
	go g.readPump(s)
}

// readPump reads client envelopes until the connection drops, then tears the
// session down and removes its player from whatever room it sits in.
func (g *WebSocketGateway) readPump(s *session) {
	defer func() {
		g.rooms.Leave(s.id)
		s.close()

		g.mu.Lock()
		delete(g.sessions, s.id)
		count := len(g.sessions)
		g.mu.Unlock()

		g.wsLimiter.Release(s.ip)
		log.Printf("📱 Client %s disconnected (%d remaining)", s.id, count)
		UpdateWSConnections(count)
	}()

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		g.dispatch(s, raw)
	}
}

// dispatch routes one decoded envelope. Malformed frames are dropped; a
// misbehaving client costs us nothing beyond the read.
func (g *WebSocketGateway) dispatch(s *session, raw []byte) {
	env, err := protocol.Decode(raw)
	if err != nil {
		return
	}

	switch env.Event {
	case protocol.EventJoinLobby:
		var p protocol.JoinLobby
		if env.Payload(&p) != nil || p.Username == "" {
			return
		}
		g.rooms.JoinLobby(s.id, p.Username, s)

	case protocol.EventSelectCharacter:
		var p protocol.SelectCharacter
		if env.Payload(&p) != nil {
			return
		}
		g.rooms.SelectCharacter(s.id, p.Character)

	case protocol.EventSelectStage:
		var p protocol.SelectStage
		if env.Payload(&p) != nil {
			return
		}
		g.rooms.SelectStage(s.id, p.Stage)

	case protocol.EventPlayerInput:
		var p protocol.PlayerInput
		if env.Payload(&p) != nil {
			return
		}
		g.rooms.SubmitInput(s.id, p.Input, p.Sequence)
	}
}

func newConnID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
