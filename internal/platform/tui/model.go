package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/whereim/internal/core"
	"github.com/vovakirdan/whereim/internal/game"
	"github.com/vovakirdan/whereim/internal/geo"
	"github.com/vovakirdan/whereim/internal/sim"
	"github.com/vovakirdan/whereim/internal/storage"
)

// Layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show the car table beside the map
	sidebarWidth       = 44 // Width of car table sidebar
	headerHeight       = 2
	footerHeight       = 2
	panFraction        = 0.25 // Share of the span moved per pan key
	zoomStep           = 1.25
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("28")).
			Padding(0, 2)
	endButtonStyle = buttonStyle.
			Background(lipgloss.Color("160"))
	hudStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Options configures a Model.
type Options struct {
	// Owner keys the persisted screen flag (local user or SSH user).
	Owner string

	// Store persists the screen flag. Optional.
	Store *storage.Store

	// Logger receives non-fatal errors. Optional.
	Logger *log.Logger

	// Width and Height are the initial terminal size.
	Width  int
	Height int
}

// Model is the Bubble Tea model with an intro screen and a game screen.
type Model struct {
	ctrl   *game.Controller
	store  *storage.Store
	logger *log.Logger
	owner  string

	events      <-chan sim.Event
	unsubscribe func()

	keys     KeyMap
	help     help.Model
	table    table.Model
	canvas   *core.Screen
	screen   storage.Screen
	view     game.View
	from     map[int]geo.GeoPoint // Car positions when the last tick arrived
	tickedAt time.Time
	now      time.Time

	width     int
	height    int
	showTable bool
	status    string
	quitting  bool
}

// NewModel creates a model driving ctrl. It subscribes to session events;
// the subscription is released when the model quits.
func NewModel(ctrl *game.Controller, opts Options) Model {
	owner := opts.Owner
	if owner == "" {
		owner = "local"
	}

	h := help.New()
	h.ShowAll = false

	events, unsubscribe := ctrl.Session().Subscribe(32)
	m := Model{
		ctrl:        ctrl,
		store:       opts.Store,
		logger:      opts.Logger,
		owner:       owner,
		events:      events,
		unsubscribe: unsubscribe,
		keys:        DefaultKeyMap(),
		help:        h,
		canvas:      core.NewScreen(0, 0),
		from:        map[int]geo.GeoPoint{},
		now:         time.Now(),
		width:       opts.Width,
		height:      opts.Height,
	}
	m.table = m.createTable()
	m.view = ctrl.View()

	// A game never survives a restart, so every launch opens on the intro.
	m.setScreen(storage.ScreenIntro)
	if ctrl.Session().Running() {
		m.setScreen(storage.ScreenGame)
	}
	return m
}

// createTable creates the car table.
func (m *Model) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "", Width: 2},
		{Title: "Lat", Width: 10},
		{Title: "Lon", Width: 10},
		{Title: "Dist", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(max(m.height-headerHeight-footerHeight-2, 3)),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	t.SetStyles(s)
	return t
}

// Screen returns the screen currently shown.
func (m Model) Screen() storage.Screen {
	return m.screen
}

// Status returns the last status or error line.
func (m Model) Status() string {
	return m.status
}

// Init starts the event pump and redraw loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), tickCmd(frameInterval))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(m.height-headerHeight-footerHeight-2, 3))
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, waitForEvent(m.events)

	case eventsClosedMsg:
		return m, nil

	case TickMsg:
		m.now = time.Time(msg)
		m.view = m.ctrl.View()
		m.refreshTable()
		return m, tickCmd(frameInterval)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)

	switch action {
	case ActionQuit:
		m.quitting = true
		m.Close()
		return m, tea.Quit
	case ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.screen == storage.ScreenIntro {
		m.handleIntroAction(action)
	} else {
		m.handleGameAction(action)
	}
	m.view = m.ctrl.View()
	return m, nil
}

func (m *Model) handleIntroAction(action Action) {
	switch action {
	case ActionStart:
		if err := m.ctrl.Start(); err != nil {
			m.fail("cannot start game", err)
			return
		}
		m.status = ""
		m.from = map[int]geo.GeoPoint{}
		m.setScreen(storage.ScreenGame)
	case ActionPanUp:
		m.ctrl.Pan(panFraction, 0)
	case ActionPanDown:
		m.ctrl.Pan(-panFraction, 0)
	case ActionPanLeft:
		m.ctrl.Pan(0, -panFraction)
	case ActionPanRight:
		m.ctrl.Pan(0, panFraction)
	case ActionZoomIn:
		m.ctrl.Zoom(1 / zoomStep)
	case ActionZoomOut:
		m.ctrl.Zoom(zoomStep)
	}
}

func (m *Model) handleGameAction(action Action) {
	switch action {
	case ActionEnd:
		m.ctrl.End()
		m.setScreen(storage.ScreenIntro)
	case ActionToggleTable:
		m.showTable = !m.showTable
		m.refreshTable()
	}
}

// handleEvent starts a new tween from the cars' on-screen positions.
func (m *Model) handleEvent(evt sim.Event) {
	frac := tweenFraction(m.tickedAt, m.now, time.Duration(m.view.Sim.AnimateMillis)*time.Millisecond)
	m.from = positions(Tween(m.from, m.view.Sim.Cars, frac))
	if evt.Type != sim.EventTicked {
		m.from = map[int]geo.GeoPoint{}
	}
	m.tickedAt = m.now
	m.view = m.ctrl.ViewOf(evt.Snapshot)
	m.refreshTable()

	// Started or ended elsewhere, e.g. through the feed API
	switch {
	case evt.Type == sim.EventStarted && m.screen == storage.ScreenIntro && m.ctrl.Session().Running():
		m.status = ""
		m.setScreen(storage.ScreenGame)
	case evt.Type == sim.EventStopped && m.screen == storage.ScreenGame && !m.ctrl.Session().Running():
		m.setScreen(storage.ScreenIntro)
	}
}

func (m *Model) setScreen(s storage.Screen) {
	m.screen = s
	if m.store == nil {
		return
	}
	if err := m.store.SetScreen(m.owner, s); err != nil && m.logger != nil {
		m.logger.Warn("could not save screen", "owner", m.owner, "error", err)
	}
}

func (m *Model) fail(what string, err error) {
	m.status = fmt.Sprintf("%s: %v", what, err)
	if m.logger != nil {
		m.logger.Warn(what, "owner", m.owner, "error", err)
	}
}

// Close ends any running game and releases the event subscription.
func (m Model) Close() {
	m.ctrl.End()
	m.unsubscribe()
}

// refreshTable fills the car table from the current view.
func (m *Model) refreshTable() {
	if !m.showTable {
		return
	}
	target := m.view.Viewport.Center
	if m.view.Sim.Target != nil {
		target = *m.view.Sim.Target
	}
	rows := make([]table.Row, 0, len(m.view.Sim.Cars))
	for _, c := range m.view.Sim.Cars {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", c.ID),
			c.Glyph,
			fmt.Sprintf("%.5f", c.Pos.Lat),
			fmt.Sprintf("%.5f", c.Pos.Lon),
			fmt.Sprintf("%.5f", c.Pos.DistanceTo(target)),
		})
	}
	m.table.SetRows(rows)
}

// displayed returns the entities to draw this frame.
func (m Model) displayed() []sim.Entity {
	if m.screen == storage.ScreenIntro || !m.view.Sim.Running {
		if m.view.Marker != nil {
			return []sim.Entity{*m.view.Marker}
		}
		return nil
	}
	frac := tweenFraction(m.tickedAt, m.now, time.Duration(m.view.Sim.AnimateMillis)*time.Millisecond)
	out := Tween(m.from, m.view.Sim.Cars, frac)
	if m.view.Sim.Star != nil {
		out = append(out, *m.view.Sim.Star)
	}
	return out
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "loading..."
	}

	mapW := m.width
	sidebar := m.screen == storage.ScreenGame && m.showTable && m.width >= minWidthForSidebar
	if sidebar {
		mapW -= sidebarWidth
	}
	mapH := max(m.height-headerHeight-footerHeight, 3)

	m.canvas.Resize(mapW, mapH)
	DrawMap(m.canvas, m.view.Viewport, m.displayed())
	body := RenderScreen(m.canvas)
	if sidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " "+m.table.View())
	}

	var sb strings.Builder
	sb.WriteString(m.header())
	sb.WriteString("\n\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	sb.WriteString(m.footer())
	return sb.String()
}

func (m Model) header() string {
	title := titleStyle.Render("Where I'm")
	r := m.view.Viewport
	if m.screen == storage.ScreenIntro {
		return lipgloss.JoinHorizontal(lipgloss.Center,
			title, " ",
			buttonStyle.Render("Start game"), " ",
			hudStyle.Render(fmt.Sprintf("%s  span %.3f×%.3f", r.Center, r.Span.LatDelta, r.Span.LonDelta)),
		)
	}

	s := m.view.Sim
	hud := fmt.Sprintf("level %d  tick %d  arrived %d/%d", s.Level, s.Tick, s.Arrived, len(s.Cars))
	return lipgloss.JoinHorizontal(lipgloss.Center,
		title, " ",
		endButtonStyle.Render("X"), " ",
		hudStyle.Render(hud),
	)
}

func (m Model) footer() string {
	if m.status != "" {
		return errorStyle.Render(m.status)
	}
	if m.screen == storage.ScreenIntro {
		return m.help.ShortHelpView(m.keys.IntroHelp(m.help.ShowAll))
	}
	return m.help.ShortHelpView(m.keys.GameHelp(m.help.ShowAll))
}

// Run starts the Bubble Tea program for a local terminal.
func Run(ctrl *game.Controller, opts Options) error {
	model := NewModel(ctrl, opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
