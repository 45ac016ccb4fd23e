package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"game-tribunal/internal/room"
)

// @Summary Create new room
// @Description Allocate a unique room code and create an empty room
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.CreateRoomRequest true "Room mode"
// @Success 200 {object} map[string]interface{}
// @Router /create-room [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		mode, err := room.ParseMode(req.Mode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		snap, err := rm.CreateRoom(c.Request.Context(), mode)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"roomCode": snap.Code, "room": snap})
	}
}

// @Summary Join a room
// @Description Add a player with the given alias to an existing room
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.JoinRoomRequest true "Room code and alias"
// @Success 200 {object} map[string]interface{}
// @Router /join-room [post]
func JoinRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		snap, err := rm.JoinRoom(c.Request.Context(), req.RoomCode, req.Alias)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

// @Summary Get room state
// @Description Return the current snapshot of a room
// @Tags Room
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code} [get]
func GetRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, ok := rm.GetRoom(c.Param("code"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

// @Summary Get shareable room URL
// @Description Compose the join URL used for QR codes and invites
// @Tags Room
// @Produce json
// @Param code query string true "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /room-url [get]
func RoomURLHandler(rm *room.Manager, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		base := c.Query("base")
		if base == "" {
			base = baseURL
		}
		url, err := rm.RoomURL(c.Query("code"), base)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}

// statusFor maps domain errors onto HTTP statuses. Unknown errors are
// treated as internal so nothing leaks silently.
func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrInvalidCode),
		errors.Is(err, room.ErrInvalidAlias),
		errors.Is(err, room.ErrInvalidMode),
		errors.Is(err, room.ErrNotUTC):
		return http.StatusBadRequest
	case errors.Is(err, room.ErrRoomNotFound),
		errors.Is(err, room.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrDuplicateAlias),
		errors.Is(err, room.ErrRoomFull):
		return http.StatusConflict
	case errors.Is(err, room.ErrCodeExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
