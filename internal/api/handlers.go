package api

import (
	"encoding/json"
	"net/http"
	"time"

	"brawl/internal/game"
	"brawl/internal/preview"

	"github.com/go-chi/chi/v5"
)

// Handler methods for routerHandlers.
// These are used by both the standalone router (for testing) and the full Server.

func (h *routerHandlers) handleListRooms(w http.ResponseWriter, r *http.Request) {
	snaps := h.rooms.Snapshots()

	rooms := make([]map[string]interface{}, 0, len(snaps))
	for _, s := range snaps {
		rooms = append(rooms, map[string]interface{}{
			"id":          s.ID,
			"phase":       s.Phase.String(),
			"stage":       s.Stage,
			"playerCount": len(s.Players),
		})
	}

	writeJSON(w, map[string]interface{}{"rooms": rooms})
}

func (h *routerHandlers) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.rooms.RoomSnapshot(chi.URLParam(r, "roomID"))
	if !ok {
		writeError(w, "Room not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]interface{}{
		"id":         snap.ID,
		"phase":      snap.Phase.String(),
		"stage":      snap.Stage,
		"players":    snap.Players,
		"stockCount": snap.StockCount,
		"timeLimit":  snap.TimeLimit,
	})
}

func (h *routerHandlers) handleRoomPreview(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.rooms.RoomSnapshot(chi.URLParam(r, "roomID"))
	if !ok {
		writeError(w, "Room not found", http.StatusNotFound)
		return
	}

	start := time.Now()
	png, err := preview.Render(game.StageByID(snap.Stage), snap.Players)
	if err != nil {
		writeError(w, "Render failed", http.StatusInternalServerError)
		return
	}
	RecordPreviewRender(time.Since(start))

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

func (h *routerHandlers) handleListStages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{"stages": game.Stages()})
}

func (h *routerHandlers) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{"characters": game.Characters()})
}

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	rooms, players := h.rooms.Counts()
	writeJSON(w, map[string]interface{}{
		"rooms":   rooms,
		"players": players,
	})
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
