// Package viewer tracks the region the player is looking at.
//
// Before a game the region follows the location provider and its span is
// clamped on every change; a star marker sits at its center. Once a game
// starts the region is pinned and provider updates are ignored until unpinned.
package viewer

import (
	"sync"

	"github.com/vovakirdan/whereim/internal/geo"
	"github.com/vovakirdan/whereim/internal/sim"
)

// MarkerGlyph is the default pre-game star.
const MarkerGlyph = "⭐"

// Tracker holds the free and fixed regions. Safe for concurrent use.
type Tracker struct {
	mu          sync.RWMutex
	limits      geo.SpanLimits
	free        geo.Region
	fixed       *geo.Region
	markerGlyph string
}

// NewTracker creates a tracker whose free region starts at initial (clamped).
func NewTracker(initial geo.Region, limits geo.SpanLimits, markerGlyph string) *Tracker {
	if markerGlyph == "" {
		markerGlyph = MarkerGlyph
	}
	initial.Span = limits.Clamp(initial.Span)
	return &Tracker{
		limits:      limits,
		free:        initial,
		markerGlyph: markerGlyph,
	}
}

// Update applies a region change from the location source. The span is
// clamped. Returns false, changing nothing, while a region is pinned.
func (t *Tracker) Update(r geo.Region) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fixed != nil {
		return false
	}
	r.Span = t.limits.Clamp(r.Span)
	t.free = r
	return true
}

// Pin fixes the visible region for the duration of a game.
func (t *Tracker) Pin(r geo.Region) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fixed = &r
}

// Unpin returns to following the location source.
func (t *Tracker) Unpin() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fixed = nil
}

// Pinned reports whether a fixed region is set.
func (t *Tracker) Pinned() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.fixed != nil
}

// Region returns the fixed region if pinned, otherwise the free region.
func (t *Tracker) Region() geo.Region {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.fixed != nil {
		return *t.fixed
	}
	return t.free
}

// Free returns the last clamped free region.
func (t *Tracker) Free() geo.Region {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.free
}

// Limits returns the span limits.
func (t *Tracker) Limits() geo.SpanLimits {
	return t.limits
}

// Marker returns the pre-game star at the free region center.
// There is no marker while pinned; the game's own target replaces it.
func (t *Tracker) Marker() (sim.Entity, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.fixed != nil {
		return sim.Entity{}, false
	}
	return sim.Entity{
		ID:    sim.TargetID,
		Kind:  sim.KindTarget,
		Pos:   t.free.Center,
		Glyph: t.markerGlyph,
	}, true
}
