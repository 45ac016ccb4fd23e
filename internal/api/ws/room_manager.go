package ws

import "game-tribunal/internal/room"

// Coordinator is the slice of the room manager the hub needs.
type Coordinator interface {
	GetRoom(rawCode string) (room.Snapshot, bool)
	RecordActivity(rawCode, playerID string) (room.Snapshot, error)
	DisconnectPlayer(rawCode, playerID string) error
}
