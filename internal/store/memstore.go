package store

import (
	"errors"
	"sync"

	"game-tribunal/internal/room"
)

// ErrRoomExists is returned by Add when the code is already taken.
var ErrRoomExists = errors.New("room code already exists")

// MemoryStore keeps all rooms for the lifetime of the process. Rooms
// are never deleted.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]*room.Room{},
	}
}

func (m *MemoryStore) Exists(code string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.rooms[code]
	return ok
}

// Add inserts r only if its code is free. It never overwrites an
// existing room.
func (m *MemoryStore) Add(r *room.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	code := r.Code().String()
	if _, ok := m.rooms[code]; ok {
		return ErrRoomExists
	}
	m.rooms[code] = r
	return nil
}

func (m *MemoryStore) Get(code string) (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

// Update is a no-op for rooms already held by the store: aggregates
// are mutated in place under their own lock. Unknown rooms are stored.
func (m *MemoryStore) Update(r *room.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.Code().String()] = r
}

func (m *MemoryStore) All() []*room.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*room.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}
