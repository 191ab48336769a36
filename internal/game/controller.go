// Package game wires a simulation session to the viewer region so the
// presentation layers share one start/stop flow.
package game

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/whereim/internal/geo"
	"github.com/vovakirdan/whereim/internal/sim"
	"github.com/vovakirdan/whereim/internal/viewer"
)

// View is everything a renderer needs for one frame.
type View struct {
	Sim      sim.Snapshot `json:"sim"`
	Viewport geo.Region   `json:"viewport"`
	Marker   *sim.Entity  `json:"marker,omitempty"` // Pre-game star, absent while running
}

// Controller starts and ends games. Start pins the viewer at the region the
// game runs in; End releases it.
type Controller struct {
	mu      sync.Mutex // Serializes Start/End pairs
	session *sim.Session
	tracker *viewer.Tracker
}

// NewController creates a controller over an existing session and tracker.
func NewController(session *sim.Session, tracker *viewer.Tracker) *Controller {
	return &Controller{session: session, tracker: tracker}
}

// Session returns the underlying session.
func (c *Controller) Session() *sim.Session {
	return c.session
}

// Tracker returns the viewer tracker.
func (c *Controller) Tracker() *viewer.Tracker {
	return c.tracker
}

// Start begins a game at the viewer's current region.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLocked(c.tracker.Region())
}

// StartAt begins a game at an explicit region. The span is clamped the same
// way viewer updates are.
func (c *Controller) StartAt(r geo.Region) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	r.Span = c.tracker.Limits().Clamp(r.Span)
	return c.startLocked(r)
}

func (c *Controller) startLocked(r geo.Region) error {
	if err := c.session.Start(r); err != nil {
		return fmt.Errorf("game: start at %v: %w", r.Center, err)
	}
	c.tracker.Pin(r)
	return nil
}

// End stops the running game, if any, and unpins the viewer.
func (c *Controller) End() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Stop()
	c.tracker.Unpin()
}

// Pan moves the free viewer region. It is ignored during a game.
func (c *Controller) Pan(latFrac, lonFrac float64) bool {
	return c.tracker.Update(c.tracker.Free().Pan(latFrac, lonFrac))
}

// Zoom scales the free viewer span, subject to clamping.
func (c *Controller) Zoom(factor float64) bool {
	return c.tracker.Update(c.tracker.Free().Zoom(factor))
}

// View captures the current frame.
func (c *Controller) View() View {
	return c.ViewOf(c.session.Snapshot())
}

// ViewOf pairs snap, usually taken from a session event, with the current
// viewport.
func (c *Controller) ViewOf(snap sim.Snapshot) View {
	v := View{
		Sim:      snap,
		Viewport: c.tracker.Region(),
	}
	if m, ok := c.tracker.Marker(); ok {
		v.Marker = &m
	}
	return v
}
