package room

import (
	"testing"
	"time"
)

func testManager() *Manager {
	cfg := testRoomConfig()
	return NewManager(cfg)
}

// TestManagerJoinReusesOpenRoom tests that players fill an existing lobby
// before a new room is created
func TestManagerJoinReusesOpenRoom(t *testing.T) {
	m := testManager()
	defer m.Shutdown()

	m.JoinLobby("c1", "alice", &recordingSender{})
	m.JoinLobby("c2", "bob", &recordingSender{})

	rooms, players := m.Counts()
	if rooms != 1 {
		t.Errorf("Expected 1 room, got %d", rooms)
	}
	if players != 2 {
		t.Errorf("Expected 2 seated players, got %d", players)
	}
}

// TestManagerJoinOverflowCreatesRoom tests room creation when every room is full
func TestManagerJoinOverflowCreatesRoom(t *testing.T) {
	cfg := testRoomConfig()
	cfg.MaxPlayers = 2
	m := NewManager(cfg)
	defer m.Shutdown()

	m.JoinLobby("c1", "alice", &recordingSender{})
	m.JoinLobby("c2", "bob", &recordingSender{})
	m.JoinLobby("c3", "carol", &recordingSender{})

	rooms, players := m.Counts()
	if rooms != 2 {
		t.Errorf("Expected overflow into a second room, got %d rooms", rooms)
	}
	if players != 3 {
		t.Errorf("Expected 3 seated players, got %d", players)
	}
}

// TestManagerDoubleJoinIsNoop tests that a connection cannot occupy two seats
func TestManagerDoubleJoinIsNoop(t *testing.T) {
	m := testManager()
	defer m.Shutdown()

	m.JoinLobby("c1", "alice", &recordingSender{})
	m.JoinLobby("c1", "alice-again", &recordingSender{})

	rooms, players := m.Counts()
	if rooms != 1 || players != 1 {
		t.Errorf("Expected 1 room with 1 player, got %d rooms %d players", rooms, players)
	}
}

// TestManagerLeaveDestroysEmptyRoom tests room teardown on last leave
func TestManagerLeaveDestroysEmptyRoom(t *testing.T) {
	m := testManager()
	defer m.Shutdown()

	m.JoinLobby("c1", "alice", &recordingSender{})
	m.Leave("c1")

	rooms, players := m.Counts()
	if rooms != 0 || players != 0 {
		t.Errorf("Expected empty manager after last leave, got %d rooms %d players", rooms, players)
	}
}

// TestManagerUnknownConnIgnored tests that operations for unseated
// connections are silently dropped
func TestManagerUnknownConnIgnored(t *testing.T) {
	m := testManager()
	defer m.Shutdown()

	m.SelectCharacter("ghost", "ninja")
	m.SelectStage("ghost", "castle")
	m.SubmitInput("ghost", nil, 1)
	m.Leave("ghost")

	rooms, players := m.Counts()
	if rooms != 0 || players != 0 {
		t.Errorf("Unknown connection should change nothing, got %d rooms %d players", rooms, players)
	}
}

// TestManagerRoutesByConnection tests that commands reach the right room via
// the connection index
func TestManagerRoutesByConnection(t *testing.T) {
	m := testManager()
	defer m.Shutdown()

	m.JoinLobby("c1", "alice", &recordingSender{})
	m.SelectCharacter("c1", "brute")
	m.SelectStage("c1", "final_destination")

	snaps := m.Snapshots()
	if len(snaps) != 1 {
		t.Fatalf("Expected 1 snapshot, got %d", len(snaps))
	}
	snap := snaps[0]
	if snap.Stage != "final_destination" {
		t.Errorf("Expected stage final_destination, got %q", snap.Stage)
	}
	if len(snap.Players) != 1 || snap.Players[0].Character != "brute" {
		t.Errorf("Expected brute selected, got %+v", snap.Players)
	}

	byID, ok := m.RoomSnapshot(snap.ID)
	if !ok {
		t.Fatalf("RoomSnapshot(%q) should exist", snap.ID)
	}
	if byID.ID != snap.ID {
		t.Errorf("Snapshot id mismatch: %q vs %q", byID.ID, snap.ID)
	}

	if _, ok := m.RoomSnapshot("NOPE99"); ok {
		t.Error("Unknown room id should not resolve")
	}
}

// TestManagerRoomIDs tests the generated code alphabet and uniqueness
func TestManagerRoomIDs(t *testing.T) {
	m := testManager()
	defer m.Shutdown()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := m.newRoomID()
		if len(id) != 6 {
			t.Fatalf("Expected 6-char room id, got %q", id)
		}
		for _, c := range id {
			if !containsRune(roomIDChars, c) {
				t.Fatalf("Room id %q uses a character outside the alphabet", id)
			}
		}
		if seen[id] {
			t.Fatalf("Duplicate room id %q", id)
		}
		seen[id] = true
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

// TestManagerShutdownStopsRooms tests that Shutdown halts every room loop
func TestManagerShutdownStopsRooms(t *testing.T) {
	m := testManager()
	m.JoinLobby("c1", "alice", &recordingSender{})
	m.JoinLobby("c2", "bob", &recordingSender{})

	m.Shutdown()

	rooms, players := m.Counts()
	if rooms != 0 || players != 0 {
		t.Errorf("Shutdown should clear all state, got %d rooms %d players", rooms, players)
	}

	// Give stopped loops a beat; nothing should panic afterwards.
	time.Sleep(20 * time.Millisecond)
}
