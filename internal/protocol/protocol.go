// Package protocol defines the logical events exchanged between client and
// server and the JSON envelope they travel in. The transport underneath is
// assumed to be an ordered bidirectional event channel; framing and
// reconnection live in the adapter, not here.
package protocol

import "brawl/internal/game"

// Client -> server events.
const (
	EventJoinLobby       = "join_lobby"
	EventSelectCharacter = "select_character"
	EventSelectStage     = "select_stage"
	EventPlayerInput     = "player_input"
)

// Server -> room events. EventPlayerInput is also used server->room as the
// peer-visibility relay with a PlayerInputRelay payload.
const (
	EventLobbyUpdate = "lobby_update"
	EventGameStart   = "game_start"
	EventGameUpdate  = "game_update"
	EventGameEnd     = "game_end"
)

// JoinLobby asks the server to place the connection in a joinable room,
// creating one if none exists.
type JoinLobby struct {
	Username string `json:"username"`
}

// SelectCharacter updates the sender's character choice.
type SelectCharacter struct {
	Character string `json:"character"`
}

// SelectStage updates the sender's room stage choice.
type SelectStage struct {
	Stage string `json:"stage"`
}

// PlayerInput carries one input sample with its client-assigned sequence
// number.
type PlayerInput struct {
	Input    game.Input `json:"input"`
	Sequence uint64     `json:"sequence"`
}

// PlayerInputRelay is the server's rebroadcast of a peer's input to the rest
// of the room (excluding the sender).
type PlayerInputRelay struct {
	PlayerID string     `json:"playerId"`
	Input    game.Input `json:"input"`
	Sequence uint64     `json:"sequence"`
}

// RoomState is the full roster broadcast, used by both lobby_update and
// game_start.
type RoomState struct {
	RoomID     string        `json:"roomId"`
	Players    []game.Player `json:"players"`
	Stage      string        `json:"stage"`
	StockCount int           `json:"stockCount"`
	TimeLimit  int           `json:"timeLimit"`
}

// GameUpdate is the per-tick authoritative snapshot.
type GameUpdate struct {
	Players   []game.Player `json:"players"`
	Timestamp int64         `json:"timestamp"`
}

// Result is one row of the final standings.
type Result struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Character string  `json:"character"`
	Stocks    int     `json:"stocks"`
	Damage    float64 `json:"damage"`
}

// GameEnd carries the ordered standings, winner first.
type GameEnd struct {
	Results []Result `json:"results"`
}
