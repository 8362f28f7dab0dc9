package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/theory-games/internal/core"
)

// GameKeyMap defines the key bindings of the play screen. Letters go to the
// answer input, so every action is on a control or function key.
type GameKeyMap struct {
	Submit       key.Binding
	Pause        key.Binding
	NextRound    key.Binding
	ExtraTime    key.Binding
	Freeze       key.Binding
	DoublePoints key.Binding
	Steal        key.Binding
	Help         key.Binding
	Back         key.Binding
	Quit         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Pause, k.NextRound, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Pause, k.NextRound},
		{k.ExtraTime, k.Freeze, k.DoublePoints, k.Steal},
		{k.Help, k.Back, k.Quit},
	}
}

// PowerUp returns the power-up bound to a key message.
func (k GameKeyMap) PowerUp(msg tea.KeyMsg) (core.PowerUpType, bool) {
	switch {
	case key.Matches(msg, k.ExtraTime):
		return core.PowerUpExtraTime, true
	case key.Matches(msg, k.Freeze):
		return core.PowerUpFreeze, true
	case key.Matches(msg, k.DoublePoints):
		return core.PowerUpDoublePoints, true
	case key.Matches(msg, k.Steal):
		return core.PowerUpStealPoint, true
	}
	return 0, false
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "answer"),
		),
		Pause: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "pause"),
		),
		NextRound: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "next round"),
		),
		ExtraTime: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "extra time"),
		),
		Freeze: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "freeze"),
		),
		DoublePoints: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "double points"),
		),
		Steal: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("F4", "steal"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "more keys"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// MenuKeyMap defines the key bindings of the setup and leaderboard screens.
type MenuKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	Timers      key.Binding
	Leaderboard key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Timers, k.Leaderboard, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Timers, k.Leaderboard, k.Back, k.Quit},
	}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "prev mode"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "next mode"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add player / start"),
		),
		Timers: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "timers"),
		),
		Leaderboard: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "leaderboard"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}
