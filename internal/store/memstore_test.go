package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-tribunal/internal/room"
)

func newRoom(t *testing.T, rawCode string) *room.Room {
	t.Helper()
	code, err := room.ParseCode(rawCode)
	require.NoError(t, err)
	return room.NewRoom(code, room.ModeNormal)
}

func TestMemoryStore_AddIfAbsent(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	r := newRoom(t, "ABCDEF")

	assert.False(t, s.Exists("ABCDEF"))
	require.NoError(t, s.Add(r))
	assert.True(t, s.Exists("ABCDEF"))

	// Second add with the same code must fail, not overwrite.
	dup := newRoom(t, "ABCDEF")
	assert.ErrorIs(t, s.Add(dup), ErrRoomExists)

	got, ok := s.Get("ABCDEF")
	require.True(t, ok)
	assert.Same(t, r, got)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	_, ok := s.Get("ABCDEF")
	assert.False(t, ok)
}

func TestMemoryStore_UpdateAndAll(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	a := newRoom(t, "ABCDEF")
	b := newRoom(t, "GHJKLM")
	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))

	_, err := a.AddPlayer("Ana", "id-1", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	s.Update(a)

	got, ok := s.Get("ABCDEF")
	require.True(t, ok)
	assert.Equal(t, 1, got.PlayerCount())

	assert.ElementsMatch(t, []*room.Room{a, b}, s.All())
}

func TestMemoryStore_ConcurrentAdds(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()

	// Many goroutines race to insert the same code; exactly one wins.
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Add(newRoom(t, "ABCDEF"))
		}()
	}
	wg.Wait()
	close(errs)

	wins := 0
	for err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrRoomExists)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Len(t, s.All(), 1)
}

func TestMemoryStore_ConcurrentDistinctCodes(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	codes := []string{"AAAAAA", "BBBBBB", "CCCCCC", "DDDDDD", "EEEEEE"}

	var wg sync.WaitGroup
	for i, c := range codes {
		wg.Add(1)
		go func(i int, c string) {
			defer wg.Done()
			require.NoError(t, s.Add(newRoom(t, c)))
		}(i, c)
	}
	wg.Wait()

	assert.Len(t, s.All(), len(codes))
	for _, c := range codes {
		assert.True(t, s.Exists(c), fmt.Sprintf("missing %s", c))
	}
}
