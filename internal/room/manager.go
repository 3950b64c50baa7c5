package room

import (
	"crypto/rand"
	"log"
	"math/big"
	"sync"
	"time"

	"brawl/internal/config"
	"brawl/internal/game"
)

// Manager owns every room in the process and the connection-id -> room index.
// All lookups that serve a client message are O(1) through the index; only
// joinLobby scans, and only over the (small) set of rooms looking for a seat.
type Manager struct {
	mu     sync.Mutex
	cfg    config.RoomConfig
	rooms  map[string]*Room
	byConn map[string]*Room

	// onTick is forwarded to every room for tick-duration metrics. Optional.
	onTick func(time.Duration)

	now func() time.Time
}

// NewManager creates a room manager with the given per-room settings.
func NewManager(cfg config.RoomConfig) *Manager {
	return &Manager{
		cfg:    cfg,
		rooms:  make(map[string]*Room),
		byConn: make(map[string]*Room),
		now:    time.Now,
	}
}

// SetTickObserver installs a per-tick duration callback applied to rooms
// created afterwards. Call before serving traffic.
func (m *Manager) SetTickObserver(fn func(time.Duration)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTick = fn
}

// JoinLobby places a connection in the first joinable room, creating a fresh
// one when every room is full or mid-match. The new player joins with
// default character and full stocks; the room's roster broadcast follows.
func (m *Manager) JoinLobby(connID, username string, s Sender) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byConn[connID]; ok {
		// Already seated; joining twice is a no-op.
		return
	}

	player := game.NewPlayer(connID, username, m.cfg.StockCount)

	for _, r := range m.rooms {
		if r.tryJoin(player, s) {
			m.byConn[connID] = r
			return
		}
	}

	r := newRoom(m.newRoomID(), m.cfg)
	r.onDestroy = m.destroyRoom
	r.onTick = m.onTick
	m.rooms[r.id] = r
	r.start()

	r.tryJoin(player, s)
	m.byConn[connID] = r
	log.Printf("🏟️ Room %s created (%s joined)", r.id, username)
}

// SelectCharacter updates the sender's character choice. Ignored when the
// connection is not seated in any room.
func (m *Manager) SelectCharacter(connID, characterID string) {
	if r := m.roomFor(connID); r != nil {
		r.selectCharacter(connID, characterID)
	}
}

// SelectStage updates the room's stage choice. Ignored when the connection
// is not seated in any room.
func (m *Manager) SelectStage(connID, stageID string) {
	if r := m.roomFor(connID); r != nil {
		r.selectStage(connID, stageID)
	}
}

// SubmitInput stores one input sample for the next tick and relays it to
// room peers. Ignored when the connection is not seated in any room.
func (m *Manager) SubmitInput(connID string, in game.Input, sequence uint64) {
	if r := m.roomFor(connID); r != nil {
		r.submitInput(connID, in, sequence)
	}
}

// Leave removes the connection's player from its room. Closing a connection
// routes here, so a drop is a normal lifecycle transition, not an error. An
// emptied room is destroyed immediately.
func (m *Manager) Leave(connID string) {
	m.mu.Lock()
	r, ok := m.byConn[connID]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(m.byConn, connID)
	m.mu.Unlock()

	if r.removePlayer(connID) == 0 {
		m.destroyRoom(r.id)
	}
}

// destroyRoom stops a room's tick loop and forgets it. Called from Leave and
// from the room itself when its reset cooldown fires on an empty roster.
func (m *Manager) destroyRoom(roomID string) {
	m.mu.Lock()
	r, ok := m.rooms[roomID]
	if ok {
		delete(m.rooms, roomID)
	}
	m.mu.Unlock()

	if ok {
		r.stop()
		log.Printf("🧹 Room %s destroyed", roomID)
	}
}

// Snapshots returns owned copies of every room, for the HTTP surface.
func (m *Manager) Snapshots() []Snapshot {
	m.mu.Lock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.Unlock()

	out := make([]Snapshot, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Snapshot())
	}
	return out
}

// RoomSnapshot returns a copy of one room by id.
func (m *Manager) RoomSnapshot(roomID string) (Snapshot, bool) {
	m.mu.Lock()
	r, ok := m.rooms[roomID]
	m.mu.Unlock()
	if !ok {
		return Snapshot{}, false
	}
	return r.Snapshot(), true
}

// Counts returns the current number of rooms and seated players.
func (m *Manager) Counts() (rooms, players int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms), len(m.byConn)
}

// Shutdown stops every room's tick loop.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.rooms = make(map[string]*Room)
	m.byConn = make(map[string]*Room)
	m.mu.Unlock()

	for _, r := range rooms {
		r.stop()
	}
}

func (m *Manager) roomFor(connID string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byConn[connID]
}

const roomIDChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// newRoomID generates a short unique room code. Callers must hold mu.
func (m *Manager) newRoomID() string {
	for {
		b := make([]byte, 6)
		max := big.NewInt(int64(len(roomIDChars)))
		for i := range b {
			n, _ := rand.Int(rand.Reader, max)
			b[i] = roomIDChars[n.Int64()]
		}
		id := string(b)
		if _, exists := m.rooms[id]; !exists {
			return id
		}
	}
}
