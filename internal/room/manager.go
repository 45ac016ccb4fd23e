package room

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Store is the persistence boundary the manager talks to. The in-memory
// implementation lives in internal/store.
type Store interface {
	Exists(code string) bool
	// Add inserts a new room and fails with store.ErrRoomExists when the
	// code is already taken; it never overwrites.
	Add(r *Room) error
	Get(code string) (*Room, bool)
	Update(r *Room)
	All() []*Room
}

// Manager orchestrates the room use cases: unique code allocation,
// creation, joining and activity recording. It is the only entry point
// the transport layers use.
type Manager struct {
	store        Store
	clock        Clock
	ids          IDSource
	hub          Broadcaster
	codeAttempts int
	log          zerolog.Logger
}

func NewManager(s Store, clock Clock, ids IDSource, hub Broadcaster, codeAttempts int, log zerolog.Logger) *Manager {
	return &Manager{
		store:        s,
		clock:        clock,
		ids:          ids,
		hub:          hub,
		codeAttempts: codeAttempts,
		log:          log,
	}
}

// SetHub wires the broadcaster after construction. The hub subscribes
// through the manager, so the two are built in sequence at startup.
func (m *Manager) SetHub(hub Broadcaster) {
	m.hub = hub
}

func (m *Manager) publish(code string, snap Snapshot) {
	if m.hub == nil {
		return
	}
	m.hub.Publish(code, snap)
}

// CreateRoom allocates a unique code, persists a fresh room and returns
// its snapshot. ErrCodeExhausted means the attempt budget ran out; no
// room is persisted in that case.
func (m *Manager) CreateRoom(ctx context.Context, mode Mode) (Snapshot, error) {
	code, err := m.allocateCode(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	r := NewRoom(code, mode)
	if err := m.store.Add(r); err != nil {
		// Lost a race on the final insert; surface it as exhaustion
		// rather than overwriting someone else's room.
		m.log.Warn().Str("room_code", code.String()).Err(err).Msg("room insert collided after allocation")
		return Snapshot{}, ErrCodeExhausted
	}

	m.log.Info().Str("room_code", code.String()).Str("mode", string(mode)).Msg("room created")
	return r.Snapshot(), nil
}

func (m *Manager) allocateCode(ctx context.Context) (Code, error) {
	for attempt := 1; attempt <= m.codeAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Code{}, err
		}
		candidate := GenerateCode()
		m.log.Debug().
			Str("candidate", candidate.String()).
			Int("attempt", attempt).
			Int("max_attempts", m.codeAttempts).
			Msg("allocating room code")
		if !m.store.Exists(candidate.String()) {
			return candidate, nil
		}
		m.log.Warn().
			Str("candidate", candidate.String()).
			Int("attempt", attempt).
			Msg("room code collision, retrying")
	}
	m.log.Error().Int("max_attempts", m.codeAttempts).Msg("room code allocation exhausted")
	return Code{}, ErrCodeExhausted
}

// JoinRoom admits a player into the room identified by rawCode and
// broadcasts the refreshed state. Validation, capacity and duplicate
// alias errors from the aggregate propagate verbatim.
func (m *Manager) JoinRoom(ctx context.Context, rawCode, alias string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	code, err := ParseCode(rawCode)
	if err != nil {
		return Snapshot{}, err
	}
	r, ok := m.store.Get(code.String())
	if !ok {
		return Snapshot{}, ErrRoomNotFound
	}

	p, err := r.AddPlayer(alias, m.ids.NewID(), m.clock.Now())
	if err != nil {
		return Snapshot{}, err
	}
	m.store.Update(r)

	snap := r.Snapshot()
	m.publish(code.String(), snap)
	m.log.Info().
		Str("room_code", code.String()).
		Str("player_id", p.ID()).
		Str("alias", p.Alias()).
		Int("players", len(snap.Players)).
		Msg("player joined room")
	return snap, nil
}

// RecordActivity refreshes a player's activity timestamp, forcing them
// back to connected, and broadcasts the new state.
func (m *Manager) RecordActivity(rawCode, playerID string) (Snapshot, error) {
	code, err := ParseCode(rawCode)
	if err != nil {
		return Snapshot{}, err
	}
	r, ok := m.store.Get(code.String())
	if !ok {
		return Snapshot{}, ErrRoomNotFound
	}
	if err := r.RecordActivity(playerID, m.clock.Now()); err != nil {
		return Snapshot{}, err
	}
	m.store.Update(r)

	snap := r.Snapshot()
	m.publish(code.String(), snap)
	return snap, nil
}

// DisconnectPlayer forces a player to disconnected, used on explicit
// leave. Unknown rooms or players are reported, not ignored.
func (m *Manager) DisconnectPlayer(rawCode, playerID string) error {
	code, err := ParseCode(rawCode)
	if err != nil {
		return err
	}
	r, ok := m.store.Get(code.String())
	if !ok {
		return ErrRoomNotFound
	}
	if err := r.MarkDisconnected(playerID); err != nil {
		return err
	}
	m.store.Update(r)
	m.publish(code.String(), r.Snapshot())
	m.log.Info().Str("room_code", code.String()).Str("player_id", playerID).Msg("player disconnected")
	return nil
}

// RoomURL composes the join URL shared out-of-band (QR, chat).
func (m *Manager) RoomURL(rawCode, baseURL string) (string, error) {
	code, err := ParseCode(rawCode)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(baseURL, "/") + "/join/" + code.String(), nil
}

// GetRoom is a read-only lookup.
func (m *Manager) GetRoom(rawCode string) (Snapshot, bool) {
	code, err := ParseCode(rawCode)
	if err != nil {
		return Snapshot{}, false
	}
	r, ok := m.store.Get(code.String())
	if !ok {
		return Snapshot{}, false
	}
	return r.Snapshot(), true
}
