package game

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/whereim/internal/config"
	"github.com/vovakirdan/whereim/internal/geo"
	"github.com/vovakirdan/whereim/internal/sim"
	"github.com/vovakirdan/whereim/internal/viewer"
)

// New builds a session, tracker and controller from configuration.
// A nil sched selects the wall-clock ticker; seed 0 seeds from the clock.
func New(cfg config.Config, sched sim.Scheduler, seed int64) (*Controller, error) {
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	session, err := sim.NewSession(sim.ParamsFromConfig(cfg.Game), sched, rng)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	limits := geo.SpanLimits{MinDelta: cfg.Viewport.MinDelta, MaxDelta: cfg.Viewport.MaxDelta}
	if limits.MinDelta <= 0 || limits.MaxDelta < limits.MinDelta {
		limits = geo.DefaultSpanLimits()
	}
	loc := cfg.Location
	tracker := viewer.NewTracker(
		geo.NewRegion(loc.Lat, loc.Lon, loc.LatDelta, loc.LonDelta),
		limits,
		cfg.Game.MarkerGlyph,
	)
	return NewController(session, tracker), nil
}
