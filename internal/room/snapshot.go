package room

// PlayerView is the broadcast-facing projection of one player.
type PlayerView struct {
	ID     string `json:"id"`
	Alias  string `json:"alias"`
	Status Status `json:"status"`
}

// Snapshot is an immutable, fully denormalized projection of a room.
// Every broadcast and API response carries one of these; nothing ever
// hands out the live aggregate.
type Snapshot struct {
	Code     string       `json:"code"`
	Mode     Mode         `json:"mode"`
	Players  []PlayerView `json:"players"`
	CanStart bool         `json:"canStart"`
}

// Snapshot builds the projection under the room's lock so it can never
// observe a half-applied join or sweep.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := make([]PlayerView, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, PlayerView{
			ID:     p.id,
			Alias:  p.alias,
			Status: p.status,
		})
	}
	return Snapshot{
		Code:     r.code.String(),
		Mode:     r.mode,
		Players:  players,
		CanStart: len(r.players) >= MinPlayers,
	}
}
