package room

// Broadcaster fans a snapshot out to every subscriber of a room.
// Publishing is fire-and-forget: a slow or dead subscriber must never
// fail the create/join/sweep that triggered the publish.
type Broadcaster interface {
	Publish(roomCode string, snap Snapshot)
}
