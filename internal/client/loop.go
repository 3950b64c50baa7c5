package client

import (
	"log"
	"sync"
	"time"

	"brawl/internal/game"
)

// Loop drives the prediction engine at the nominal frame rate, sampling the
// keyboard once per frame. Start after game_start, Stop at game_end; the
// same loop restarts cleanly for a rematch.
type Loop struct {
	engine   *Engine
	keyboard *Keyboard

	mu      sync.Mutex
	stop    chan struct{}
	running bool
}

func NewLoop(engine *Engine, keyboard *Keyboard) *Loop {
	return &Loop{engine: engine, keyboard: keyboard}
}

// Start begins the frame loop. Starting while running restarts it, so a
// game_start arriving mid-match never leaks a second ticker.
func (l *Loop) Start() {
	l.mu.Lock()
	if l.running {
		stop := l.stop
		l.running = false
		l.mu.Unlock()
		close(stop)
		l.mu.Lock()
	}
	stop := make(chan struct{})
	l.stop = stop
	l.running = true
	l.mu.Unlock()

	go l.run(stop)
}

// Stop halts the frame loop. Safe to call when not running.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	close(l.stop)
}

func (l *Loop) run(stop chan struct{}) {
	interval := float64(time.Second) * game.NominalDT
	ticker := time.NewTicker(time.Duration(interval))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := l.engine.Frame(l.keyboard.Snapshot()); err != nil {
				log.Printf("⚠️ Input send failed: %v", err)
			}
		}
	}
}
