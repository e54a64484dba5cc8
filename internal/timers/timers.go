// Package timers runs the two background sweeps the coordinator relies on:
// turn-timeout enforcement and idle-room eviction. Both sweeps run from one
// select loop over two tickers, which lasts until its context is cancelled.
package timers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"scrabblesrv/internal/model"
	"scrabblesrv/internal/registry"
)

// Dispatcher is the subset of coordinator.Coordinator the timers call into.
type Dispatcher interface {
	ForceTimeoutPass(room *registry.Room)
}

// Config holds the timer intervals and thresholds, pulled from the
// process-wide configuration.
type Config struct {
	TickInterval   time.Duration
	SweepInterval  time.Duration
	IdleThreshold  time.Duration
}

// Run blocks, driving both sweeps until ctx is cancelled.
func Run(ctx context.Context, reg *registry.Registry, dispatcher Dispatcher, cfg Config) {
	tick := time.NewTicker(cfg.TickInterval)
	sweep := time.NewTicker(cfg.SweepInterval)
	defer tick.Stop()
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			enforceTurnTimeouts(reg, dispatcher)
		case <-sweep.C:
			sweepIdleRooms(reg, cfg.IdleThreshold)
		}
	}
}

func enforceTurnTimeouts(reg *registry.Registry, dispatcher Dispatcher) {
	for _, room := range reg.Snapshot() {
		room.Lock()
		due := room.M.Status == model.RoomPlaying && room.M.Game != nil && time.Now().After(room.M.Game.TurnDeadline)
		room.Unlock()
		if due {
			dispatcher.ForceTimeoutPass(room)
		}
	}
}

func sweepIdleRooms(reg *registry.Registry, idleThreshold time.Duration) {
	evicted := reg.SweepIdle(func(lastActivity time.Time) bool {
		return time.Since(lastActivity) > idleThreshold
	})
	for _, code := range evicted {
		log.Info().Str("roomCode", code).Msg("evicted idle room")
	}
}
