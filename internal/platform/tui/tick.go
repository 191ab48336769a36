// Package tui provides the Bubble Tea front end: the intro and game
// screens, input mapping, map rendering and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/whereim/internal/sim"
)

// frameInterval is the redraw rate. Car movement is tweened between ticks.
const frameInterval = 100 * time.Millisecond

// TickMsg is sent to trigger a redraw.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// EventMsg carries a session event into the update loop.
type EventMsg struct {
	Event sim.Event
}

// eventsClosedMsg reports that the subscription channel closed.
type eventsClosedMsg struct{}

// waitForEvent blocks on the next session event.
func waitForEvent(events <-chan sim.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return EventMsg{Event: evt}
	}
}
