package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-tribunal/internal/room"
	"game-tribunal/internal/store"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqIDs struct{ next int }

func (s *seqIDs) NewID() string {
	s.next++
	return fmt.Sprintf("id-%d", s.next)
}

type nopHub struct{}

func (nopHub) Publish(string, room.Snapshot) {}

func newTestRouter(t *testing.T) (*gin.Engine, *room.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	rm := room.NewManager(store.NewMemoryStore(), clock, &seqIDs{}, nopHub{}, 10, zerolog.Nop())

	r := gin.New()
	r.POST("/create-room", CreateRoomHandler(rm))
	r.POST("/join-room", JoinRoomHandler(rm))
	r.GET("/rooms/:code", GetRoomHandler(rm))
	r.GET("/room-url", RoomURLHandler(rm, "http://localhost:8080"))
	return r, rm
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createdRoomCode(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/create-room", CreateRoomRequest{Mode: "normal"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		RoomCode string `json:"roomCode"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.RoomCode, 6)
	return resp.RoomCode
}

func TestCreateRoomHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	t.Run("creates a room", func(t *testing.T) {
		code := createdRoomCode(t, r)
		w := doJSON(t, r, http.MethodGet, "/rooms/"+code, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/create-room", CreateRoomRequest{Mode: "ranked"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed payload", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/create-room", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestJoinRoomHandler(t *testing.T) {
	r, _ := newTestRouter(t)
	code := createdRoomCode(t, r)

	t.Run("joins with valid alias", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/join-room", JoinRoomRequest{RoomCode: code, Alias: "Ana"})
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Room room.Snapshot `json:"room"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Room.Players, 1)
		assert.Equal(t, "Ana", resp.Room.Players[0].Alias)
		assert.False(t, resp.Room.CanStart)
	})

	t.Run("duplicate alias conflicts", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/join-room", JoinRoomRequest{RoomCode: code, Alias: "ana"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("bad alias rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/join-room", JoinRoomRequest{RoomCode: code, Alias: "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid code rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/join-room", JoinRoomRequest{RoomCode: "short", Alias: "Ana"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing room", func(t *testing.T) {
		missing := "ZZZZZZ"
		if missing == code {
			missing = "YYYYYY"
		}
		w := doJSON(t, r, http.MethodPost, "/join-room", JoinRoomRequest{RoomCode: missing, Alias: "Ana"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("can start after fourth player", func(t *testing.T) {
		var resp struct {
			Room room.Snapshot `json:"room"`
		}
		for _, alias := range []string{"Bob", "Caz", "Dee"} {
			w := doJSON(t, r, http.MethodPost, "/join-room", JoinRoomRequest{RoomCode: code, Alias: alias})
			require.Equal(t, http.StatusOK, w.Code)
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		}
		assert.True(t, resp.Room.CanStart)
		assert.Len(t, resp.Room.Players, 4)
	})
}

func TestGetRoomHandler_NotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/rooms/ZZZZZZ", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoomURLHandler(t *testing.T) {
	r, _ := newTestRouter(t)
	code := createdRoomCode(t, r)

	t.Run("default base", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/room-url?code="+code, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			URL string `json:"url"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "http://localhost:8080/join/"+code, resp.URL)
	})

	t.Run("explicit base with trailing slash", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/room-url?code="+code+"&base=https://t.example/", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			URL string `json:"url"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "https://t.example/join/"+code, resp.URL)
	})

	t.Run("invalid code", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/room-url?code=bogus", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
