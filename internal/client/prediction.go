package client

import (
	"sync"

	"brawl/internal/game"
	"brawl/internal/protocol"
)

// Transport carries sampled inputs to the server. The WebSocket client in
// cmd/bot implements it; tests use an in-memory recorder.
type Transport interface {
	SendInput(in game.Input, sequence uint64) error
}

type pendingInput struct {
	seq   uint64
	input game.Input
}

// Engine holds the predicted world. The local player runs ahead of the
// server by the inputs in pending; remote players are whatever the last
// snapshot said, advanced by their relayed inputs between snapshots.
type Engine struct {
	mu      sync.Mutex
	localID string
	stage   game.Stage
	players map[string]game.Player

	pending []pendingInput
	seq     uint64

	transport Transport
}

func NewEngine(transport Transport) *Engine {
	return &Engine{
		players:   make(map[string]game.Player),
		stage:     game.StageByID(game.DefaultStageID),
		transport: transport,
	}
}

// Init seeds the engine from a match-start roster. Pending inputs from a
// previous match are discarded.
func (e *Engine) Init(localID string, state protocol.RoomState) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.localID = localID
	e.stage = game.StageByID(state.Stage)
	e.players = make(map[string]game.Player, len(state.Players))
	for _, p := range state.Players {
		e.players[p.ID] = p
	}
	e.pending = nil
	e.seq = 0
}

// Frame advances the predicted world by one nominal step: the sampled input
// is applied locally, queued for reconciliation, and sent to the server.
// Remote players coast on their last relayed input.
func (e *Engine) Frame(in game.Input) error {
	e.mu.Lock()

	local, ok := e.players[e.localID]
	if !ok {
		e.mu.Unlock()
		return nil
	}

	e.seq++
	seq := e.seq
	sample := in.Clone()

	e.players[e.localID] = game.Advance(local, game.NominalDT, sample, e.stage.Platforms, e.stage.Bounds)
	e.pending = append(e.pending, pendingInput{seq: seq, input: sample})

	for id, p := range e.players {
		if id == e.localID {
			continue
		}
		e.players[id] = game.Advance(p, game.NominalDT, p.LastInput, e.stage.Platforms, e.stage.Bounds)
	}
	e.mu.Unlock()

	return e.transport.SendInput(sample, seq)
}

// HandleSnapshot reconciles against an authoritative update. Remote players
// are replaced outright. The local player is rebased onto the server state,
// acknowledged inputs are dropped, and the remainder is replayed so the
// predicted position stays ahead of the server by exactly the unacked
// inputs. Replaying the same snapshot twice converges to the same state.
func (e *Engine) HandleSnapshot(update protocol.GameUpdate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range update.Players {
		if p.ID != e.localID {
			// Keep the relayed input across snapshot replacement.
			prev := e.players[p.ID]
			p.LastInput = prev.LastInput
			e.players[p.ID] = p
			continue
		}

		ack := p.LastProcessedInput
		keep := e.pending[:0]
		for _, pi := range e.pending {
			if pi.seq > ack {
				keep = append(keep, pi)
			}
		}
		e.pending = keep

		local := p
		for _, pi := range e.pending {
			local = game.Advance(local, game.NominalDT, pi.input, e.stage.Platforms, e.stage.Bounds)
		}
		e.players[e.localID] = local
	}
}

// HandleRelay stores a peer's input so remote prediction between snapshots
// uses their real keys instead of stale ones.
func (e *Engine) HandleRelay(relay protocol.PlayerInputRelay) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if relay.PlayerID == e.localID {
		return
	}
	if p, ok := e.players[relay.PlayerID]; ok {
		p.LastInput = relay.Input.Clone()
		e.players[relay.PlayerID] = p
	}
}

// RemovePlayer drops a departed peer from the predicted world.
func (e *Engine) RemovePlayer(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.players, id)
}

// Player returns a copy of one player's predicted state.
func (e *Engine) Player(id string) (game.Player, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.players[id]
	return p, ok
}

// Players returns copies of every predicted player.
func (e *Engine) Players() []game.Player {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]game.Player, 0, len(e.players))
	for _, p := range e.players {
		out = append(out, p)
	}
	return out
}

// PendingCount reports how many inputs await server acknowledgement.
func (e *Engine) PendingCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}
