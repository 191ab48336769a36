package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/whereim/internal/config"
	"github.com/vovakirdan/whereim/internal/game"
	"github.com/vovakirdan/whereim/internal/geo"
	"github.com/vovakirdan/whereim/internal/sim"
	"github.com/vovakirdan/whereim/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) (Model, *sim.ManualScheduler) {
	t.Helper()
	sched := sim.NewManualScheduler()
	ctrl, err := game.New(config.DefaultConfig(), sched, 3)
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	m := NewModel(ctrl, Options{Owner: "tester", Store: store, Width: 100, Height: 30})
	t.Cleanup(m.Close)
	return m, sched
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

// nextEvent pulls one event from the model's subscription.
func nextEvent(t *testing.T, m Model) EventMsg {
	t.Helper()
	select {
	case evt := <-m.events:
		return EventMsg{Event: evt}
	case <-time.After(2 * time.Second):
		t.Fatal("no session event")
		return EventMsg{}
	}
}

func TestModelStartsOnIntro(t *testing.T) {
	m, _ := newTestModel(t, nil)

	if m.Screen() != storage.ScreenIntro {
		t.Fatalf("initial screen = %q, expected intro", m.Screen())
	}
	view := m.View()
	if !strings.Contains(view, "Start game") {
		t.Error("intro should offer Start game")
	}
	if !strings.Contains(view, "⭐") {
		t.Error("intro map should show the pre-game star")
	}
}

func TestModelStartAndEnd(t *testing.T) {
	m, sched := newTestModel(t, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen() != storage.ScreenGame {
		t.Fatalf("screen after start = %q, expected game", m.Screen())
	}
	if !m.ctrl.Session().Running() {
		t.Fatal("session should be running")
	}

	m = update(t, m, nextEvent(t, m))
	if len(m.view.Sim.Cars) != 6 {
		t.Errorf("cars = %d, expected 6", len(m.view.Sim.Cars))
	}

	sched.Fire()
	m = update(t, m, nextEvent(t, m))
	if m.view.Sim.Tick != 1 {
		t.Errorf("tick = %d, expected 1", m.view.Sim.Tick)
	}
	if !strings.Contains(m.View(), "level 6") {
		t.Error("HUD should show the level")
	}

	m = update(t, m, runeKey("x"))
	if m.Screen() != storage.ScreenIntro {
		t.Errorf("screen after end = %q, expected intro", m.Screen())
	}
	if m.ctrl.Session().Running() {
		t.Error("session should be stopped")
	}
	if m.ctrl.Tracker().Pinned() {
		t.Error("viewer should be unpinned after end")
	}
}

func TestModelPanOnlyBeforeGame(t *testing.T) {
	m, _ := newTestModel(t, nil)
	before := m.ctrl.Tracker().Region().Center

	m = update(t, m, runeKey("k"))
	after := m.ctrl.Tracker().Region().Center
	if after.Lat <= before.Lat {
		t.Errorf("pan north moved %v -> %v", before, after)
	}

	m = update(t, m, runeKey("s"))
	pinned := m.ctrl.Tracker().Region()
	m = update(t, m, runeKey("l"))
	if m.ctrl.Tracker().Region() != pinned {
		t.Error("pan should not move the pinned game region")
	}
}

func TestModelZoomClamped(t *testing.T) {
	m, _ := newTestModel(t, nil)

	for range 10 {
		m = update(t, m, runeKey("-"))
	}
	span := m.ctrl.Tracker().Region().Span
	if span.LatDelta != geo.DefaultMaxDelta {
		t.Errorf("zoomed-out span = %v, expected clamp at %v", span.LatDelta, geo.DefaultMaxDelta)
	}
}

func TestModelPersistsScreen(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	if err := store.SetScreen("tester", storage.ScreenGame); err != nil {
		t.Fatal(err)
	}

	m, _ := newTestModel(t, store)
	if s, _ := store.Screen("tester"); s != storage.ScreenIntro {
		t.Errorf("stored screen at launch = %q, expected intro", s)
	}

	m = update(t, m, runeKey("s"))
	if s, _ := store.Screen("tester"); s != storage.ScreenGame {
		t.Errorf("stored screen after start = %q, expected game", s)
	}

	update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if s, _ := store.Screen("tester"); s != storage.ScreenIntro {
		t.Errorf("stored screen after end = %q, expected intro", s)
	}
}

func TestModelStoppedElsewhere(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = update(t, m, runeKey("s"))
	m = update(t, m, nextEvent(t, m)) // started

	m.ctrl.End()
	m = update(t, m, nextEvent(t, m)) // stopped
	if m.Screen() != storage.ScreenIntro {
		t.Errorf("screen after external stop = %q, expected intro", m.Screen())
	}
}

func TestModelStartedElsewhere(t *testing.T) {
	m, _ := newTestModel(t, nil)

	if err := m.ctrl.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	m = update(t, m, nextEvent(t, m)) // started
	if m.Screen() != storage.ScreenGame {
		t.Fatalf("screen after external start = %q, expected game", m.Screen())
	}
	view := m.View()
	if strings.Contains(view, "Start game") {
		t.Error("game started elsewhere should not offer Start game")
	}
	if !strings.Contains(view, "🌟") {
		t.Error("game started elsewhere should draw the target")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Status() != "" {
		t.Errorf("status after enter = %q, expected none", m.Status())
	}
}

func TestModelJoinsRunningGame(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	ctrl, err := game.New(config.DefaultConfig(), sim.NewManualScheduler(), 3)
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	if err := ctrl.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	m := NewModel(ctrl, Options{Owner: "tester", Store: store, Width: 100, Height: 30})
	defer m.Close()

	if m.Screen() != storage.ScreenGame {
		t.Errorf("screen = %q, expected game", m.Screen())
	}
	if s, _ := store.Screen("tester"); s != storage.ScreenGame {
		t.Errorf("stored screen = %q, expected game", s)
	}
}

func TestModelTableToggle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = update(t, m, runeKey("s"))
	m = update(t, m, nextEvent(t, m))

	m = update(t, m, runeKey("t"))
	if !m.showTable {
		t.Fatal("t should show the car table")
	}
	if got := len(m.table.Rows()); got != 6 {
		t.Errorf("table rows = %d, expected 6", got)
	}
	if !strings.Contains(m.View(), "Dist") {
		t.Error("wide terminal should render the table sidebar")
	}
}

func TestModelQuitEndsGame(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = update(t, m, runeKey("s"))

	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model should render nothing")
	}
	if m.ctrl.Session().Running() {
		t.Error("quit should end the running game")
	}
}
