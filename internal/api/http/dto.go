package http

// CreateRoomRequest represents the payload for /create-room.
type CreateRoomRequest struct {
	Mode string `json:"mode"`
}

// JoinRoomRequest represents the payload for /join-room.
type JoinRoomRequest struct {
	RoomCode string `json:"roomCode"`
	Alias    string `json:"alias"`
}
