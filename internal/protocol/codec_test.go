package protocol

import (
	"testing"

	"brawl/internal/game"
)

// TestEncodeDecodeRoundTrip tests the envelope through a full cycle
func TestEncodeDecodeRoundTrip(t *testing.T) {
	raw, err := Encode(EventPlayerInput, PlayerInput{
		Input:    game.Input{game.KeyRight: true, game.KeyJump: true},
		Sequence: 42,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	env, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if env.Event != EventPlayerInput {
		t.Errorf("Expected event %q, got %q", EventPlayerInput, env.Event)
	}

	var p PlayerInput
	if err := env.Payload(&p); err != nil {
		t.Fatalf("Payload failed: %v", err)
	}
	if p.Sequence != 42 {
		t.Errorf("Expected sequence 42, got %d", p.Sequence)
	}
	if !p.Input.Right() || !p.Input.Jump() {
		t.Errorf("Expected right+jump pressed, got %v", p.Input)
	}
}

// TestDecodeMalformed tests that garbage frames error instead of panicking
func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Error("Decoding garbage should fail")
	}
	if _, err := Decode(nil); err == nil {
		t.Error("Decoding nil should fail")
	}
}

// TestPayloadMismatch tests payload decoding into the wrong shape
func TestPayloadMismatch(t *testing.T) {
	raw, err := Encode(EventJoinLobby, JoinLobby{Username: "alice"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	env, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	// Object payload into a slice target must error.
	var wrong []string
	if err := env.Payload(&wrong); err == nil {
		t.Error("Payload into mismatched type should fail")
	}

	var join JoinLobby
	if err := env.Payload(&join); err != nil {
		t.Fatalf("Payload failed: %v", err)
	}
	if join.Username != "alice" {
		t.Errorf("Expected username alice, got %q", join.Username)
	}
}
