package room

import "errors"

var (
	ErrInvalidCode    = errors.New("invalid room code")
	ErrInvalidAlias   = errors.New("invalid alias")
	ErrNotUTC         = errors.New("timestamp must be UTC")
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room full")
	ErrDuplicateAlias = errors.New("alias already taken in this room")
	ErrCodeExhausted  = errors.New("could not allocate a unique room code")
	ErrInvalidMode    = errors.New("unknown game mode")
	ErrPlayerNotFound = errors.New("player not found in room")
)
