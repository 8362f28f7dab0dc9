package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/storage"
)

// MaxPlayers is the largest hot-seat table.
const MaxPlayers = 8

// Selection is what the setup screen hands to the game.
type Selection struct {
	Mode   core.Mode
	Timers bool
	Names  []string
}

// SetupModel is the Bubble Tea model for the game setup screen: pick a
// mode, toggle timers and enter the hot-seat players.
type SetupModel struct {
	modes  []core.Mode
	cursor int
	timers bool
	names  []string
	input  textinput.Model
	keys   MenuKeyMap
	help   help.Model
	notice string
	width  int
	height int

	start       bool
	leaderboard bool
	quitting    bool
}

// NewSetupModel creates a setup screen prefilled from saved settings.
func NewSetupModel(settings storage.Settings, width, height int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Player name"
	ti.CharLimit = 24
	ti.Width = 24
	ti.Focus()

	m := SetupModel{
		modes:  core.Modes,
		timers: settings.TimersEnabled,
		input:  ti,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	if mode, err := core.ParseMode(settings.Mode); err == nil {
		for i, md := range m.modes {
			if md == mode {
				m.cursor = i
			}
		}
	}
	for _, n := range settings.LastPlayers {
		m.addName(n)
	}
	m.notice = ""
	return m
}

// Init initializes the setup model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the setup screen.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input for setup.
func (m SetupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.modes)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Timers):
		m.timers = !m.timers
		return m, nil

	case key.Matches(msg, m.keys.Leaderboard):
		m.leaderboard = true
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if name := strings.TrimSpace(m.input.Value()); name != "" {
			m.addName(name)
			m.input.Reset()
			return m, nil
		}
		if len(m.names) == 0 {
			m.notice = "Add at least one player"
			return m, nil
		}
		m.start = true
		return m, nil

	case msg.Type == tea.KeyBackspace && m.input.Value() == "" && len(m.names) > 0:
		m.names = m.names[:len(m.names)-1]
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// addName adds a player unless the table is full or the name maps to a
// player already seated.
func (m *SetupModel) addName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if len(m.names) >= MaxPlayers {
		m.notice = fmt.Sprintf("At most %d players", MaxPlayers)
		return
	}
	id := storage.ProfileID(name)
	for _, n := range m.names {
		if storage.ProfileID(n) == id {
			m.notice = fmt.Sprintf("%s is already playing", n)
			return
		}
	}
	m.names = append(m.names, name)
	m.notice = ""
}

// View renders the setup screen.
func (m SetupModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  T H E O R Y   G A M E S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Closest guess wins the round", m.width))
	b.WriteString("\n\n")

	// Mode list
	for i, mode := range m.modes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		p := mode.Preset()
		line := fmt.Sprintf("%s%-12s %2d rounds, %ds turns", cursor, mode.Title(), p.Rounds, int(p.TurnTime.Seconds()))
		if p.PowerUpsEnabled {
			line += ", power-ups"
		}
		if i == m.cursor {
			line = activeStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	timers := "on"
	if !m.timers {
		timers = "off"
	}
	b.WriteString("\n")
	b.WriteString(centerText("Timers: "+timers, m.width))
	b.WriteString("\n\n")

	// Players
	if len(m.names) == 0 {
		b.WriteString(centerText(dimStyle.Render("No players yet"), m.width))
		b.WriteString("\n")
	}
	for i, n := range m.names {
		b.WriteString(centerText(fmt.Sprintf("%d. %s", i+1, padRight(avatarFor(i)+" "+n, nameColumn)), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(m.input.View(), m.width))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(errorStyle.Render(m.notice), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selection returns the chosen mode, timer setting and players.
func (m SetupModel) Selection() Selection {
	return Selection{
		Mode:   m.modes[m.cursor],
		Timers: m.timers,
		Names:  append([]string(nil), m.names...),
	}
}

// Started returns true once the players asked to start.
func (m SetupModel) Started() bool {
	return m.start
}

// WantsLeaderboard returns true if user requested the leaderboard.
func (m SetupModel) WantsLeaderboard() bool {
	return m.leaderboard
}

// IsQuitting returns true if user requested to quit.
func (m SetupModel) IsQuitting() bool {
	return m.quitting
}
