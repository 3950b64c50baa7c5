// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for server and match settings.
//
// IMPORTANT: When changing defaults, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
	"time"
)

// =============================================================================
// MATCH / ROOM CONFIGURATION
// =============================================================================

// RoomConfig holds per-room match settings. New rooms are stamped with these
// values at creation; changing them does not affect rooms already running.
type RoomConfig struct {
	MaxPlayers    int           // Room capacity
	StockCount    int           // Starting lives per player
	TimeLimit     time.Duration // Match time limit
	TickRate      int           // Authoritative simulation ticks per second
	Countdown     time.Duration // Lobby-to-active delay once >=2 players present
	ResetCooldown time.Duration // Delay between match end and room reset
}

// DefaultRoom returns the default room configuration.
func DefaultRoom() RoomConfig {
	return RoomConfig{
		MaxPlayers:    4,
		StockCount:    3,
		TimeLimit:     180 * time.Second,
		TickRate:      60, // ~16 ms ticks
		Countdown:     3 * time.Second,
		ResetCooldown: 10 * time.Second,
	}
}

// RoomFromEnv returns room configuration with environment variable overrides.
// Environment variables take precedence over defaults.
func RoomFromEnv() RoomConfig {
	cfg := DefaultRoom()

	if mp := getEnvInt("ROOM_MAX_PLAYERS", 0); mp > 0 {
		cfg.MaxPlayers = mp
	}
	if sc := getEnvInt("ROOM_STOCK_COUNT", 0); sc > 0 {
		cfg.StockCount = sc
	}
	if tl := getEnvInt("ROOM_TIME_LIMIT_SECONDS", 0); tl > 0 {
		cfg.TimeLimit = time.Duration(tl) * time.Second
	}
	if tr := getEnvInt("ROOM_TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP/websocket server settings.
type ServerConfig struct {
	Port int
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port: 3001,
	}
}

// ServerFromEnv returns server configuration with environment variable
// overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Server ServerConfig
	Room   RoomConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Server: ServerFromEnv(),
		Room:   RoomFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
