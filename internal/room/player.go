package room

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Status is a player's connection state as derived from their last
// recorded activity.
type Status string

const (
	StatusConnected    Status = "connected"
	StatusInactive     Status = "inactive"
	StatusDisconnected Status = "disconnected"
)

const (
	MinAliasLength = 2
	MaxAliasLength = 20
)

// Player belongs to exactly one Room; the owning room's lock guards
// all mutation.
type Player struct {
	id           string
	alias        string
	lastActivity time.Time
	status       Status
}

// newPlayer validates and trims the alias. joinedAt must be UTC.
func newPlayer(alias, id string, joinedAt time.Time) (*Player, error) {
	trimmed := strings.TrimSpace(alias)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: alias is blank", ErrInvalidAlias)
	}
	if n := utf8.RuneCountInString(trimmed); n < MinAliasLength {
		return nil, fmt.Errorf("%w: alias must be at least %d characters", ErrInvalidAlias, MinAliasLength)
	} else if n > MaxAliasLength {
		return nil, fmt.Errorf("%w: alias cannot exceed %d characters", ErrInvalidAlias, MaxAliasLength)
	}
	if joinedAt.Location() != time.UTC {
		return nil, fmt.Errorf("%w: joined-at is %s", ErrNotUTC, joinedAt.Location())
	}
	return &Player{
		id:           id,
		alias:        trimmed,
		lastActivity: joinedAt,
		status:       StatusConnected,
	}, nil
}

func (p *Player) ID() string    { return p.id }
func (p *Player) Alias() string { return p.alias }

func (p *Player) Status() Status { return p.status }

func (p *Player) LastActivity() time.Time { return p.lastActivity }

var statusRank = map[Status]int{
	StatusConnected:    0,
	StatusInactive:     1,
	StatusDisconnected: 2,
}

// UpdateStatus recomputes the status from the elapsed inactivity time
// and returns true when the status actually changed. It only ever
// moves forward: RecordActivity is the single way back to connected,
// so a manual disconnect survives subsequent sweeps.
func (p *Player) UpdateStatus(now time.Time, inactiveAfter, disconnectAfter time.Duration) bool {
	elapsed := now.Sub(p.lastActivity)

	next := StatusConnected
	switch {
	case elapsed >= disconnectAfter:
		next = StatusDisconnected
	case elapsed >= inactiveAfter:
		next = StatusInactive
	}

	if statusRank[next] <= statusRank[p.status] {
		return false
	}
	p.status = next
	return true
}

// RecordActivity moves lastActivity forward and forces the player back
// to connected. lastActivity never moves backward.
func (p *Player) RecordActivity(now time.Time) error {
	if now.Location() != time.UTC {
		return fmt.Errorf("%w: activity timestamp is %s", ErrNotUTC, now.Location())
	}
	if now.After(p.lastActivity) {
		p.lastActivity = now
	}
	p.status = StatusConnected
	return nil
}

// MarkDisconnected forces the disconnected state regardless of recent
// activity. Calling it twice is a no-op.
func (p *Player) MarkDisconnected() {
	p.status = StatusDisconnected
}
