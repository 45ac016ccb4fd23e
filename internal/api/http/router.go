package http

import (
	"github.com/gin-gonic/gin"

	"game-tribunal/internal/api/ws"
	"game-tribunal/internal/config"
	"game-tribunal/internal/room"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, cfg config.Config) *gin.Engine {
	r := gin.Default()

	// WebSocket for live room state
	r.GET("/ws", hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	r.POST("/create-room", CreateRoomHandler(rm))
	r.POST("/join-room", JoinRoomHandler(rm))
	r.GET("/rooms/:code", GetRoomHandler(rm))
	r.GET("/room-url", RoomURLHandler(rm, cfg.BaseURL))

	return r
}
