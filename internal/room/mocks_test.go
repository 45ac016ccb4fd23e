package room

import (
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

// --- Store ---

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Exists(code string) bool {
	args := m.Called(code)
	return args.Bool(0)
}

func (m *MockStore) Add(r *Room) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockStore) Get(code string) (*Room, bool) {
	args := m.Called(code)
	r, _ := args.Get(0).(*Room)
	return r, args.Bool(1)
}

func (m *MockStore) Update(r *Room) {
	m.Called(r)
}

func (m *MockStore) All() []*Room {
	args := m.Called()
	rooms, _ := args.Get(0).([]*Room)
	return rooms
}

// --- Broadcaster ---

// recordingHub captures publishes so tests can assert on exactly what
// went out, without a real websocket in the loop.
type recordingHub struct {
	mu        sync.Mutex
	published []publishedState
}

type publishedState struct {
	roomCode string
	snap     Snapshot
}

func (h *recordingHub) Publish(roomCode string, snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.published = append(h.published, publishedState{roomCode: roomCode, snap: snap})
}

func (h *recordingHub) all() []publishedState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]publishedState(nil), h.published...)
}

// --- Clock / IDSource ---

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type seqIDs struct {
	mu   sync.Mutex
	next int
}

func (s *seqIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("id-%d", s.next)
}
