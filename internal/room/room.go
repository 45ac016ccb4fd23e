package room

import (
	"strings"
	"sync"
	"time"
)

// Mode selects the variant a room is played in.
type Mode string

const (
	ModeSuave  Mode = "suave"
	ModeNormal Mode = "normal"
	ModeSpicy  Mode = "spicy"
)

// ParseMode validates a raw mode string against the closed set.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeSuave:
		return ModeSuave, nil
	case ModeNormal:
		return ModeNormal, nil
	case ModeSpicy:
		return ModeSpicy, nil
	}
	return "", ErrInvalidMode
}

const (
	// MinPlayers is the smallest lobby that can start a game.
	MinPlayers = 4
	// MaxPlayers is the hard membership cap.
	MaxPlayers = 16
)

// Room is the aggregate root for one game lobby. It exclusively owns
// its players; callers never hold a mutable Player reference outside
// the room's lock.
type Room struct {
	mu      sync.Mutex
	code    Code
	mode    Mode
	players []*Player
}

// NewRoom requires an already-validated Code.
func NewRoom(code Code, mode Mode) *Room {
	return &Room{code: code, mode: mode}
}

func (r *Room) Code() Code { return r.code }

func (r *Room) Mode() Mode { return r.mode }

// AddPlayer admits a new player. The duplicate-alias and capacity
// checks happen atomically with the append, so concurrent joins cannot
// race past either invariant. Join order is preserved.
func (r *Room) AddPlayer(alias, id string, joinedAt time.Time) (*Player, error) {
	p, err := newPlayer(alias, id, joinedAt)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) >= MaxPlayers {
		return nil, ErrRoomFull
	}
	for _, existing := range r.players {
		if strings.EqualFold(existing.alias, p.alias) {
			return nil, ErrDuplicateAlias
		}
	}
	r.players = append(r.players, p)
	return p, nil
}

// CanStartGame reports whether the lobby has reached the minimum size.
func (r *Room) CanStartGame() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players) >= MinPlayers
}

// PlayerCount returns the current membership size.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// RecordActivity touches the named player's activity timestamp.
func (r *Room) RecordActivity(playerID string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.id == playerID {
			return p.RecordActivity(now)
		}
	}
	return ErrPlayerNotFound
}

// MarkDisconnected forces the named player to disconnected.
func (r *Room) MarkDisconnected(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.id == playerID {
			p.MarkDisconnected()
			return nil
		}
	}
	return ErrPlayerNotFound
}

// SweepStatuses recomputes every player's status from now. It returns
// true when at least one player changed, which is the monitor's signal
// to persist and broadcast.
func (r *Room) SweepStatuses(now time.Time, inactiveAfter, disconnectAfter time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	changed := false
	for _, p := range r.players {
		if p.UpdateStatus(now, inactiveAfter, disconnectAfter) {
			changed = true
		}
	}
	return changed
}
