// Package room owns the authoritative side of a match: per-room rosters, the
// lobby/countdown/active/ended state machine, and the fixed-tick simulation
// loop that drives the rule engine and broadcasts snapshots.
package room

import (
	"log"
	"sort"
	"sync"
	"time"

	"brawl/internal/config"
	"brawl/internal/game"
	"brawl/internal/protocol"
)

// Phase is a room's position in its lifecycle.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseCountdown
	PhaseActive
	PhaseEnded
	PhaseDestroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseCountdown:
		return "countdown"
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	default:
		return "destroyed"
	}
}

// Sender delivers one event to a single connection. Sends are fire-and-forget
// relative to the tick: implementations must never block the caller.
type Sender interface {
	Send(event string, payload any)
}

// Room is one isolated match instance. All mutation happens under mu, taken
// by the command methods (join/select/input/leave) and by the tick handler,
// so command handling interleaves with ticks but never splits one.
//
// Deferred effects (start countdown, post-match reset) are deadline fields
// checked inside tick rather than detached timers, so a room that empties or
// disbands before a deadline fires simply skips the stale action.
type Room struct {
	mu  sync.Mutex
	id  string
	cfg config.RoomConfig

	stage   string
	phase   Phase
	players map[string]game.Player
	order   []string // join order; first entry is host
	senders map[string]Sender

	startTime   time.Time
	lastUpdate  time.Time
	countdownAt time.Time // when Countdown fires
	resetAt     time.Time // when Ended resets or destroys

	stopChan chan struct{}
	stopOnce sync.Once
	running  bool

	// now is swappable for deterministic tests.
	now func() time.Time

	// onDestroy tells the manager this room emptied out and removed
	// itself. Called without mu held.
	onDestroy func(roomID string)

	// onTick observes tick handler duration for metrics. Optional.
	onTick func(time.Duration)
}

func newRoom(id string, cfg config.RoomConfig) *Room {
	return &Room{
		id:       id,
		cfg:      cfg,
		stage:    game.DefaultStageID,
		phase:    PhaseLobby,
		players:  make(map[string]game.Player),
		senders:  make(map[string]Sender),
		stopChan: make(chan struct{}),
		now:      time.Now,
	}
}

// ID returns the room identifier.
func (r *Room) ID() string { return r.id }

// start launches the room's tick loop. One goroutine per room; stopped
// exactly once when the room is destroyed.
func (r *Room) start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	ticker := time.NewTicker(time.Second / time.Duration(r.cfg.TickRate))

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-r.stopChan:
				return
			case <-ticker.C:
				started := time.Now()
				r.tick(r.now())
				if r.onTick != nil {
					r.onTick(time.Since(started))
				}
			}
		}
	}()
}

// stop cancels the tick loop. Safe to call more than once.
func (r *Room) stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
	})
}

// tryJoin adds a player if the room is joinable (not active, not full).
// Ended rooms still accept joins during the reset cooldown; the newcomer is
// seated on the next rematch reset. Reaching two players arms the start
// countdown.
func (r *Room) tryJoin(p game.Player, s Sender) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == PhaseActive || r.phase == PhaseDestroyed {
		return false
	}
	if len(r.players) >= r.cfg.MaxPlayers {
		return false
	}

	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
	r.senders[p.ID] = s

	r.broadcastRoomState(protocol.EventLobbyUpdate)

	if len(r.players) >= 2 && r.phase == PhaseLobby {
		r.phase = PhaseCountdown
		r.countdownAt = r.now().Add(r.cfg.Countdown)
	}
	return true
}

// selectCharacter updates a member's character choice and rebroadcasts the
// roster. Unknown ids fall back to the default character.
func (r *Room) selectCharacter(playerID, characterID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		return
	}
	if !game.ValidCharacterID(characterID) {
		characterID = game.DefaultCharacterID
	}
	p.Character = characterID
	r.players[playerID] = p

	r.broadcastRoomState(protocol.EventLobbyUpdate)
}

// selectStage updates the room's stage choice and rebroadcasts the roster.
// Unknown ids fall back to the default stage.
func (r *Room) selectStage(playerID, stageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[playerID]; !ok {
		return
	}
	if !game.ValidStageID(stageID) {
		stageID = game.DefaultStageID
	}
	r.stage = stageID

	r.broadcastRoomState(protocol.EventLobbyUpdate)
}

// submitInput stores a member's latest input sample and relays it to the
// rest of the room. Physics consumes the stored input on the next tick.
func (r *Room) submitInput(playerID string, in game.Input, sequence uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		return
	}
	p.LastInput = in.Clone()
	p.LastProcessedInput = sequence
	r.players[playerID] = p

	relay := protocol.PlayerInputRelay{PlayerID: playerID, Input: in, Sequence: sequence}
	for id, s := range r.senders {
		if id == playerID {
			continue
		}
		s.Send(protocol.EventPlayerInput, relay)
	}
}

// removePlayer drops a member and returns the remaining count. An active
// match with exactly one player left ends immediately as a
// last-player-standing win.
func (r *Room) removePlayer(playerID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[playerID]; !ok {
		return len(r.players)
	}
	delete(r.players, playerID)
	delete(r.senders, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	remaining := len(r.players)
	if remaining > 0 {
		r.broadcastRoomState(protocol.EventLobbyUpdate)
		if r.phase == PhaseActive && remaining == 1 {
			r.endMatch(r.now())
		}
	}
	return remaining
}

// tick is the per-room heartbeat. Lobby rooms idle; countdowns and reset
// cooldowns fire here; active rooms simulate and broadcast.
func (r *Room) tick(now time.Time) {
	r.mu.Lock()
	destroy := false

	switch r.phase {
	case PhaseCountdown:
		if !now.Before(r.countdownAt) {
			if len(r.players) >= 2 {
				r.startMatch(now)
			} else {
				// Roster shrank while counting down; back to lobby.
				r.phase = PhaseLobby
			}
		}

	case PhaseActive:
		dt := now.Sub(r.lastUpdate).Seconds()
		r.lastUpdate = now
		r.simulate(dt)
		r.broadcastUpdate(now)
		r.checkTermination(now)

	case PhaseEnded:
		if !now.Before(r.resetAt) {
			if len(r.players) == 0 {
				r.phase = PhaseDestroyed
				destroy = true
			} else {
				r.resetForRematch(now)
			}
		}
	}

	r.mu.Unlock()

	if destroy && r.onDestroy != nil {
		r.onDestroy(r.id)
	}
}

// startMatch transitions to Active: players are placed on spawn slots 200 px
// apart in join order with fresh stocks, and game_start goes out.
func (r *Room) startMatch(now time.Time) {
	r.phase = PhaseActive
	r.startTime = now
	r.lastUpdate = now

	startX := 200.0
	for _, id := range r.order {
		p := r.players[id]
		p.Position = game.Vec2{X: startX, Y: 100}
		p.Velocity = game.Vec2{}
		p.Damage = 0
		p.Stocks = r.cfg.StockCount
		p.IsJumping = false
		p.IsAttacking = false
		p.AttackType = game.AttackNone
		p.AttackTimeLeft = 0
		r.players[id] = p
		startX += 200
	}

	log.Printf("🥊 Room %s: match started (%d players, stage %s)", r.id, len(r.players), r.stage)
	r.broadcastRoomState(protocol.EventGameStart)
}

// simulate advances every player by dt using their stored input, then runs
// the all-pairs combat pass. Players are processed in join order so the tick
// is deterministic for a given roster.
func (r *Room) simulate(dt float64) {
	stage := game.StageByID(r.stage)

	roster := make([]game.Player, 0, len(r.order))
	for _, id := range r.order {
		p := r.players[id]
		p = game.Advance(p, dt, p.LastInput, stage.Platforms, stage.Bounds)
		roster = append(roster, p)
	}

	roster = game.ResolveAttacks(roster)

	for _, p := range roster {
		r.players[p.ID] = p
	}
}

// checkTermination ends the match on time-limit expiry or when at most one
// player still has stocks (with more than one player in the room).
func (r *Room) checkTermination(now time.Time) {
	if now.Sub(r.startTime) >= r.cfg.TimeLimit {
		r.endMatch(now)
		return
	}

	withStocks := 0
	for _, p := range r.players {
		if p.Stocks > 0 {
			withStocks++
		}
	}
	if withStocks <= 1 && len(r.players) > 1 {
		r.endMatch(now)
	}
}

// endMatch broadcasts final standings and arms the reset cooldown.
func (r *Room) endMatch(now time.Time) {
	r.phase = PhaseEnded
	r.resetAt = now.Add(r.cfg.ResetCooldown)

	results := r.results()
	log.Printf("🏁 Room %s: match over, winner %s", r.id, winnerName(results))
	r.broadcast(protocol.EventGameEnd, protocol.GameEnd{Results: results})
}

// resetForRematch returns an ended room to the lobby with the same roster:
// fresh stocks, zero damage, default positions. With two or more players
// still present the start countdown arms again right away.
func (r *Room) resetForRematch(now time.Time) {
	for id, p := range r.players {
		p.Position = game.Vec2{X: 400, Y: 300}
		p.Velocity = game.Vec2{}
		p.Damage = 0
		p.Stocks = r.cfg.StockCount
		p.IsJumping = false
		p.IsAttacking = false
		p.AttackType = game.AttackNone
		p.AttackTimeLeft = 0
		r.players[id] = p
	}

	r.phase = PhaseLobby
	r.broadcastRoomState(protocol.EventLobbyUpdate)

	if len(r.players) >= 2 {
		r.phase = PhaseCountdown
		r.countdownAt = now.Add(r.cfg.Countdown)
	}
}

// results builds the ordered standings: stocks descending, then damage
// ascending. The sort is stable, so ties preserve join order.
func (r *Room) results() []protocol.Result {
	results := make([]protocol.Result, 0, len(r.order))
	for _, id := range r.order {
		p := r.players[id]
		results = append(results, protocol.Result{
			ID:        p.ID,
			Username:  p.Username,
			Character: p.Character,
			Stocks:    p.Stocks,
			Damage:    p.Damage,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Stocks != results[j].Stocks {
			return results[i].Stocks > results[j].Stocks
		}
		return results[i].Damage < results[j].Damage
	})
	return results
}

func winnerName(results []protocol.Result) string {
	if len(results) == 0 {
		return "nobody"
	}
	return results[0].Username
}

// rosterLocked returns the players in join order. Callers must hold mu.
func (r *Room) rosterLocked() []game.Player {
	roster := make([]game.Player, 0, len(r.order))
	for _, id := range r.order {
		roster = append(roster, r.players[id])
	}
	return roster
}

func (r *Room) broadcastRoomState(event string) {
	r.broadcast(event, protocol.RoomState{
		RoomID:     r.id,
		Players:    r.rosterLocked(),
		Stage:      r.stage,
		StockCount: r.cfg.StockCount,
		TimeLimit:  int(r.cfg.TimeLimit.Seconds()),
	})
}

func (r *Room) broadcastUpdate(now time.Time) {
	r.broadcast(protocol.EventGameUpdate, protocol.GameUpdate{
		Players:   r.rosterLocked(),
		Timestamp: now.UnixMilli(),
	})
}

func (r *Room) broadcast(event string, payload any) {
	for _, s := range r.senders {
		s.Send(event, payload)
	}
}

// Snapshot is a point-in-time copy of a room for the HTTP surface and the
// preview renderer. It shares nothing with live room state.
type Snapshot struct {
	ID         string
	Phase      Phase
	Stage      string
	Players    []game.Player
	StockCount int
	TimeLimit  int
}

// Snapshot returns an owned copy of the room's current state.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		ID:         r.id,
		Phase:      r.phase,
		Stage:      r.stage,
		Players:    r.rosterLocked(),
		StockCount: r.cfg.StockCount,
		TimeLimit:  int(r.cfg.TimeLimit.Seconds()),
	}
}
