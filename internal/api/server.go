package api

import (
	"log"
	"net/http"
	"time"

	"brawl/internal/room"

	"github.com/go-chi/chi/v5"
)

// Server is the HTTP API server with WebSocket support.
type Server struct {
	manager     *room.Manager
	router      *chi.Mux
	gateway     *WebSocketGateway
	rateLimiter *IPRateLimiter
}

// NewServer creates a new API server with default production configuration.
//
// IMPORTANT: No listeners are opened until Start() is called, so tests can
// construct the server and drive Router() through httptest.
func NewServer(manager *room.Manager) *Server {
	s := &Server{
		manager: manager,
		gateway: NewWebSocketGateway(manager),
	}

	// Create rate limiter (we track it for cleanup)
	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)

	s.router = NewRouter(RouterConfig{
		Rooms:       manager,
		RateLimiter: s.rateLimiter,
	})

	// The gateway needs its own instance, so the route can't live in the
	// pure NewRouter factory.
	s.router.Get("/ws", s.gateway.HandleWebSocket)

	return s
}

// Start begins serving and blocks. It also starts the gauge refresh loop.
func (s *Server) Start(addr string) error {
	go s.statsLoop()

	log.Printf("🌐 API server starting on %s", addr)
	log.Printf("🎮 WebSocket endpoint: ws://localhost%s/ws", addr)

	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Stop performs cleanup of background workers.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// statsLoop refreshes the room and player gauges.
func (s *Server) statsLoop() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		rooms, players := s.manager.Counts()
		UpdateRoomStats(rooms, players)
	}
}
