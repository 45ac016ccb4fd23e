package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"game-tribunal/internal/room"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Per-connection budget for client actions. Activity pings are cheap
// but fan out a broadcast, so runaway clients get throttled.
const (
	actionRate  = rate.Limit(2)
	actionBurst = 5
)

// Hub tracks websocket subscribers grouped by room code and fans room
// snapshots out to them. It is the Broadcaster the coordinator and the
// status monitor publish through.
type Hub struct {
	mu          sync.RWMutex
	rooms       map[string]map[*websocket.Conn]struct{}
	coordinator Coordinator
	sessions    *room.SessionRegistry
	log         zerolog.Logger
}

func NewHub(coordinator Coordinator, sessions *room.SessionRegistry, log zerolog.Logger) *Hub {
	return &Hub{
		rooms:       make(map[string]map[*websocket.Conn]struct{}),
		coordinator: coordinator,
		sessions:    sessions,
		log:         log,
	}
}

// envelope is the wire format in both directions.
type envelope struct {
	Action string `json:"action"`
	Data   any    `json:"data,omitempty"`
}

// HandleWS upgrades the connection, subscribes it to the room's
// broadcast group and pumps client actions until the socket closes.
func (h *Hub) HandleWS(c *gin.Context) {
	roomCode := c.Query("room_code")
	if roomCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing room_code"})
		return
	}
	playerID := c.Query("player_id")

	snap, ok := h.coordinator.GetRoom(roomCode)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	// Late subscribers start from the current authoritative state. The
	// write happens before subscribing so it cannot interleave with a
	// concurrent Publish on the same connection.
	if err := conn.WriteJSON(envelope{Action: "room_state", Data: snap}); err != nil {
		h.log.Warn().Err(err).Str("room_code", roomCode).Msg("initial snapshot write failed")
		conn.Close()
		return
	}

	h.subscribe(roomCode, conn)
	defer h.unsubscribe(roomCode, conn)

	if playerID != "" {
		// The session outlives this socket so the player can reconnect.
		h.sessions.Put(playerID, roomCode)
	}

	h.readPump(conn, roomCode, playerID)
}

func (h *Hub) subscribe(roomCode string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomCode]; !ok {
		h.rooms[roomCode] = make(map[*websocket.Conn]struct{})
	}
	h.rooms[roomCode][conn] = struct{}{}
}

func (h *Hub) unsubscribe(roomCode string, conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.rooms[roomCode], conn)
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *Hub) readPump(conn *websocket.Conn, roomCode, playerID string) {
	limiter := rate.NewLimiter(actionRate, actionBurst)

	for {
		var msg envelope
		if err := conn.ReadJSON(&msg); err != nil {
			h.log.Debug().Err(err).Str("room_code", roomCode).Msg("websocket read ended")
			return
		}
		if !limiter.Allow() {
			h.log.Warn().Str("room_code", roomCode).Str("player_id", playerID).Msg("client action rate limited")
			continue
		}

		switch msg.Action {
		case "record_activity":
			if playerID == "" {
				continue
			}
			if _, err := h.coordinator.RecordActivity(roomCode, playerID); err != nil {
				h.log.Warn().Err(err).Str("room_code", roomCode).Str("player_id", playerID).Msg("record activity failed")
			}
		case "leave":
			if playerID == "" {
				continue
			}
			h.sessions.Remove(playerID)
			if err := h.coordinator.DisconnectPlayer(roomCode, playerID); err != nil {
				h.log.Warn().Err(err).Str("room_code", roomCode).Str("player_id", playerID).Msg("leave failed")
			}
		default:
			h.log.Debug().Str("action", msg.Action).Msg("unknown websocket action")
		}
	}
}

// Publish sends the snapshot to every subscriber of the room. A write
// failure drops that one connection; the publish itself never fails.
func (h *Hub) Publish(roomCode string, snap room.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[roomCode]
	if !ok {
		return
	}

	msg := envelope{Action: "room_state", Data: snap}
	for conn := range clients {
		if err := conn.WriteJSON(msg); err != nil {
			h.log.Warn().Err(err).Str("room_code", roomCode).Msg("dropping dead subscriber")
			conn.Close()
			delete(clients, conn)
		}
	}
}
