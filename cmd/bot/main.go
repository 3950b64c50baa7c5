// Command bot is a headless client for load testing and soaking rooms. It
// joins a lobby, runs the same prediction loop a real client would, and
// mashes keys on a simple script.
package main

import (
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"brawl/internal/client"
	"brawl/internal/game"
	"brawl/internal/protocol"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err == nil {
		log.Println("✅ Loaded environment from .env")
	}

	serverURL := getEnv("BOT_SERVER_URL", "ws://localhost:3001/ws")
	username := getEnv("BOT_USERNAME", "bot")

	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		log.Fatalf("❌ Dial %s: %v", serverURL, err)
	}
	defer conn.Close()
	log.Printf("🤖 %s connected to %s", username, serverURL)

	transport := &wsTransport{conn: conn}
	keyboard := client.NewKeyboard()
	engine := client.NewEngine(transport)
	loop := client.NewLoop(engine, keyboard)

	if err := transport.send(protocol.EventJoinLobby, protocol.JoinLobby{Username: username}); err != nil {
		log.Fatalf("❌ Join: %v", err)
	}

	stopScript := make(chan struct{})
	go script(keyboard, stopScript)

	done := make(chan struct{})
	go func() {
		defer close(done)
		readLoop(conn, username, engine, loop)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Println("🛑 Shutting down...")
	case <-done:
		log.Println("🔌 Server closed the connection")
	}

	loop.Stop()
	close(stopScript)
}

// readLoop dispatches server envelopes until the connection drops. The bot's
// own player id is learned from the first roster broadcast after joining.
func readLoop(conn *websocket.Conn, username string, engine *client.Engine, loop *client.Loop) {
	var localID string

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := protocol.Decode(raw)
		if err != nil {
			continue
		}

		switch env.Event {
		case protocol.EventLobbyUpdate:
			var state protocol.RoomState
			if env.Payload(&state) != nil {
				continue
			}
			if localID == "" {
				// We are the newest roster entry carrying our name.
				for _, p := range state.Players {
					if p.Username == username {
						localID = p.ID
					}
				}
				log.Printf("🏟️ In room %s as %s (%d players)", state.RoomID, localID, len(state.Players))
			}

		case protocol.EventGameStart:
			var state protocol.RoomState
			if env.Payload(&state) != nil {
				continue
			}
			engine.Init(localID, state)
			loop.Start()
			log.Printf("🥊 Match started on %s", state.Stage)

		case protocol.EventGameUpdate:
			var update protocol.GameUpdate
			if env.Payload(&update) != nil {
				continue
			}
			engine.HandleSnapshot(update)

		case protocol.EventPlayerInput:
			var relay protocol.PlayerInputRelay
			if env.Payload(&relay) != nil {
				continue
			}
			engine.HandleRelay(relay)

		case protocol.EventGameEnd:
			var end protocol.GameEnd
			if env.Payload(&end) != nil {
				continue
			}
			loop.Stop()
			if len(end.Results) > 0 {
				log.Printf("🏁 Match over, winner: %s", end.Results[0].Username)
			}
		}
	}
}

// script mashes keys on a timer: wander, hop, swing.
func script(kb *client.Keyboard, stop chan struct{}) {
	ticker := time.NewTicker(400 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			kb.Reset()
			if rand.Intn(2) == 0 {
				kb.Press(game.KeyLeft)
			} else {
				kb.Press(game.KeyRight)
			}
			if rand.Intn(3) == 0 {
				kb.Press(game.KeyJump)
			}
			switch rand.Intn(4) {
			case 0:
				kb.Press(game.KeyLight)
			case 1:
				kb.Press(game.KeyHeavy)
			}
		}
	}
}

// wsTransport serializes writes; gorilla connections allow one writer at a time.
type wsTransport struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (t *wsTransport) SendInput(in game.Input, sequence uint64) error {
	return t.send(protocol.EventPlayerInput, protocol.PlayerInput{Input: in, Sequence: sequence})
}

func (t *wsTransport) send(event string, payload any) error {
	raw, err := protocol.Encode(event, payload)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn.WriteMessage(websocket.TextMessage, raw)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
