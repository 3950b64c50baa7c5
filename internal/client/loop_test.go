package client

import (
	"testing"
	"time"

	"brawl/internal/game"
)

// TestKeyboardPressRelease tests sampling held keys
func TestKeyboardPressRelease(t *testing.T) {
	kb := NewKeyboard()

	kb.Press(game.KeyRight)
	kb.Press(game.KeyJump)
	kb.Release(game.KeyJump)

	in := kb.Snapshot()
	if !in.Right() {
		t.Error("Right should be held")
	}
	if in.Jump() {
		t.Error("Jump should be released")
	}

	// Snapshots are owned copies.
	in[game.KeyLeft] = true
	if kb.Snapshot().Left() {
		t.Error("Mutating a snapshot should not affect the keyboard")
	}

	kb.Reset()
	if kb.Snapshot().Right() {
		t.Error("Reset should clear held keys")
	}
}

// TestLoopRunsFrames tests that a started loop drives the engine
func TestLoopRunsFrames(t *testing.T) {
	tr := &fakeTransport{}
	e := NewEngine(tr)
	e.Init("me", startState())
	kb := NewKeyboard()
	l := NewLoop(e, kb)

	l.Start()
	time.Sleep(80 * time.Millisecond)
	l.Stop()

	if tr.count() == 0 {
		t.Error("Running loop should send frames")
	}
}

// TestLoopRestart tests that Start while running replaces the old ticker
// instead of stacking a second one
func TestLoopRestart(t *testing.T) {
	tr := &fakeTransport{}
	e := NewEngine(tr)
	e.Init("me", startState())
	l := NewLoop(e, NewKeyboard())

	l.Start()
	l.Start()
	time.Sleep(60 * time.Millisecond)
	l.Stop()

	frames := tr.count()
	// Two stacked loops at 60 Hz would roughly double this.
	if frames > 8 {
		t.Errorf("Restart appears to have stacked loops: %d frames in 60ms", frames)
	}

	// Stop twice is safe; a stopped loop can start again.
	l.Stop()
	l.Start()
	time.Sleep(40 * time.Millisecond)
	l.Stop()

	if tr.count() <= frames {
		t.Error("Loop should run again after restart")
	}
}
