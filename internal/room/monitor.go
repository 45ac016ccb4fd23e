package room

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Monitor periodically re-derives every player's connection status
// from their last activity. It is best effort: a failed sweep is
// logged and the next tick runs anyway.
type Monitor struct {
	store           Store
	clock           Clock
	hub             Broadcaster
	interval        time.Duration
	inactiveAfter   time.Duration
	disconnectAfter time.Duration
	log             zerolog.Logger
}

func NewMonitor(s Store, clock Clock, hub Broadcaster, interval, inactiveAfter, disconnectAfter time.Duration, log zerolog.Logger) *Monitor {
	return &Monitor{
		store:           s,
		clock:           clock,
		hub:             hub,
		interval:        interval,
		inactiveAfter:   inactiveAfter,
		disconnectAfter: disconnectAfter,
		log:             log,
	}
}

// Run blocks until ctx is cancelled. The in-flight sweep always
// finishes before Run returns.
func (m *Monitor) Run(ctx context.Context) {
	m.log.Info().Dur("interval", m.interval).Msg("status monitor starting")
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("status monitor stopping")
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Sweep runs one monitor tick over every room. A status transition
// becomes visible at the first sweep after its threshold passes, so
// observers lag real time by at most one interval.
func (m *Monitor) Sweep() {
	defer func() {
		if rec := recover(); rec != nil {
			m.log.Error().Interface("panic", rec).Msg("status sweep panicked")
		}
	}()

	now := m.clock.Now()
	for _, r := range m.store.All() {
		if !r.SweepStatuses(now, m.inactiveAfter, m.disconnectAfter) {
			continue
		}
		m.store.Update(r)
		snap := r.Snapshot()
		m.hub.Publish(snap.Code, snap)
		m.log.Info().Str("room_code", snap.Code).Msg("player statuses changed, state broadcast")
	}
}
