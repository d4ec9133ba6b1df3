package session

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// PresenceManager tracks each user's live cursor position and selection
// within one room. Entries live only as long as the user's connection.
type PresenceManager struct {
	mu        sync.RWMutex
	presences map[string]*PresencePayload // userID -> presence
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{presences: make(map[string]*PresencePayload)}
}

func (pm *PresenceManager) Update(userID string, p *PresencePayload) {
	pm.mu.Lock()
	pm.presences[userID] = p
	pm.mu.Unlock()
}

func (pm *PresenceManager) Remove(userID string) {
	pm.mu.Lock()
	delete(pm.presences, userID)
	pm.mu.Unlock()
}

// Snapshot returns a copy of every user's current presence.
func (pm *PresenceManager) Snapshot() map[string]*PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	out := make(map[string]*PresencePayload, len(pm.presences))
	for userID, p := range pm.presences {
		out[userID] = p
	}
	return out
}

// StateMessage builds the full-state message sent to a newly joined
// client. Returns nil if the state cannot be marshalled.
func (pm *PresenceManager) StateMessage() *Message {
	payload, err := json.Marshal(PresenceStatePayload{Presences: pm.Snapshot()})
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return &Message{Type: TypePresenceState, Payload: payload}
}
