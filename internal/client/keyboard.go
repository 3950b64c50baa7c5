// Package client implements the game-side view of a match: input capture,
// local prediction, and reconciliation against server snapshots.
package client

import (
	"sync"

	"brawl/internal/game"
)

// Keyboard accumulates key state between frames. Press and Release are
// driven by whatever UI layer hosts the client; Snapshot is read once per
// frame by the loop.
type Keyboard struct {
	mu    sync.Mutex
	state game.Input
}

func NewKeyboard() *Keyboard {
	return &Keyboard{state: make(game.Input)}
}

func (k *Keyboard) Press(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.state[key] = true
}

func (k *Keyboard) Release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.state[key] = false
}

// Reset clears all held keys. Used when the window loses focus, otherwise a
// key released off-window stays stuck down.
func (k *Keyboard) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.state = make(game.Input)
}

// Snapshot returns an owned copy of the current state.
func (k *Keyboard) Snapshot() game.Input {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state.Clone()
}
