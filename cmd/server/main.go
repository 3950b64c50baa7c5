package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"brawl/internal/api"
	"brawl/internal/config"
	"brawl/internal/room"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		// Try current directory as fallback
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	} else {
		log.Println("✅ Loaded environment from ../.env")
	}

	log.Println("🥊 ================================")
	log.Println("🥊  BRAWL - GAME SERVER")
	log.Println("🥊 ================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	roomCfg := appConfig.Room
	serverCfg := appConfig.Server

	log.Printf("🎮 Rooms: %d players max, %d stocks, %s matches, %d Hz tick",
		roomCfg.MaxPlayers, roomCfg.StockCount, roomCfg.TimeLimit, roomCfg.TickRate)

	// Start debug server
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(api.DefaultObservabilityConfig()); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	// Create room manager and wire tick metrics
	manager := room.NewManager(roomCfg)
	manager.SetTickObserver(api.RecordTick)

	// Create API server
	server := api.NewServer(manager)

	// Start API server in goroutine
	go func() {
		addr := ":" + strconv.Itoa(serverCfg.Port)
		if err := server.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	manager.Shutdown()
	server.Stop()
	log.Println("👋 Goodbye!")
}
