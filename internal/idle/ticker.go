// Package idle drives the passive income loop.
package idle

import (
	"context"
	"log/slog"
	"time"

	"aurora/internal/game"
)

// Ticker applies the idle income tick at the game's tick rate.
type Ticker struct {
	engine *game.Engine
	log    *slog.Logger
	every  time.Duration
}

// NewTicker builds an idle ticker at the standard tick rate. A nil
// logger falls back to the default.
func NewTicker(engine *game.Engine, logger *slog.Logger) *Ticker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ticker{engine: engine, log: logger, every: game.TickRate}
}

// Run ticks until ctx is canceled. Blocks.
func (t *Ticker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.every)
	defer ticker.Stop()
	t.log.Info("idle loop started", "tick_every", t.every.String())
	for {
		select {
		case <-ctx.Done():
			t.log.Info("idle loop stopped")
			return
		case <-ticker.C:
			t.engine.ApplyIdleTick()
		}
	}
}
