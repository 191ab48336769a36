package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionEnd
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	ActionZoomIn
	ActionZoomOut
	ActionToggleTable
	ActionHelp
	ActionQuit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionEnd:
		return "End"
	case ActionPanUp:
		return "PanUp"
	case ActionPanDown:
		return "PanDown"
	case ActionPanLeft:
		return "PanLeft"
	case ActionPanRight:
		return "PanRight"
	case ActionZoomIn:
		return "ZoomIn"
	case ActionZoomOut:
		return "ZoomOut"
	case ActionToggleTable:
		return "ToggleTable"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// KeyMap defines the key bindings for both screens.
type KeyMap struct {
	Start   key.Binding
	End     key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Table   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

type keyAction struct {
	binding *key.Binding
	action  Action
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter/s", "start game"),
		),
		End: key.NewBinding(
			key.WithKeys("x", "esc"),
			key.WithHelp("x/esc", "end game"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "pan north"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "pan south"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "pan west"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "pan east"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		Table: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "car table"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// table pairs every binding with its action. Built on demand so copies of
// a KeyMap never share pointers.
func (k *KeyMap) table() []keyAction {
	return []keyAction{
		{&k.Quit, ActionQuit},
		{&k.Start, ActionStart},
		{&k.End, ActionEnd},
		{&k.Up, ActionPanUp},
		{&k.Down, ActionPanDown},
		{&k.Left, ActionPanLeft},
		{&k.Right, ActionPanRight},
		{&k.ZoomIn, ActionZoomIn},
		{&k.ZoomOut, ActionZoomOut},
		{&k.Table, ActionToggleTable},
		{&k.Help, ActionHelp},
	}
}

// MapKey translates a key message to an action.
func (k KeyMap) MapKey(msg tea.KeyMsg) Action {
	for _, ka := range k.table() {
		if key.Matches(msg, *ka.binding) {
			return ka.action
		}
	}
	return ActionNone
}

// IntroHelp returns the bindings shown on the intro screen.
func (k KeyMap) IntroHelp(full bool) []key.Binding {
	if full {
		return []key.Binding{k.Start, k.Up, k.Down, k.Left, k.Right, k.ZoomIn, k.ZoomOut, k.Help, k.Quit}
	}
	return []key.Binding{k.Start, k.ZoomIn, k.ZoomOut, k.Help, k.Quit}
}

// GameHelp returns the bindings shown during a game.
func (k KeyMap) GameHelp(full bool) []key.Binding {
	if full {
		return []key.Binding{k.End, k.Table, k.Help, k.Quit}
	}
	return []key.Binding{k.End, k.Help, k.Quit}
}
