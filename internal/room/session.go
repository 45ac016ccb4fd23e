package room

import "sync"

// Session ties a player to the room they joined. Sessions outlive
// individual socket connections so a player who drops can rejoin the
// same room and recover their seat.
type Session struct {
	RoomCode string
	PlayerID string
}

// SessionRegistry is an explicit, injectable replacement for ambient
// per-process session state. Keyed by player id.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]Session)}
}

// Put records or refreshes a player's session.
func (sr *SessionRegistry) Put(playerID, roomCode string) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	sr.sessions[playerID] = Session{RoomCode: roomCode, PlayerID: playerID}
}

// Lookup returns the session for a player, if any.
func (sr *SessionRegistry) Lookup(playerID string) (Session, bool) {
	sr.mu.RLock()
	defer sr.mu.RUnlock()
	s, ok := sr.sessions[playerID]
	return s, ok
}

// Remove drops a player's session on explicit leave.
func (sr *SessionRegistry) Remove(playerID string) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	delete(sr.sessions, playerID)
}

// Len reports the number of live sessions.
func (sr *SessionRegistry) Len() int {
	sr.mu.RLock()
	defer sr.mu.RUnlock()
	return len(sr.sessions)
}
