package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/game"
	"github.com/vovakirdan/theory-games/internal/round"
)

// nameColumn is the width of the player column on the score panel.
const nameColumn = 18

// PlayModel is the Bubble Tea model for a running hot-seat game. Whoever
// holds the keyboard answers for the active player.
type PlayModel struct {
	runner *game.Runner
	ctx    context.Context
	cancel context.CancelFunc

	state  game.State
	input  textinput.Model
	help   help.Model
	keys   GameKeyMap
	feed   []string
	err    error
	width  int
	height int

	over       bool
	backToMenu bool
	quitting   bool
}

// NewPlayModel wraps a game in a runner and builds its screen.
func NewPlayModel(g *game.Game, cfg game.RunnerConfig, width, height int) PlayModel {
	ti := textinput.New()
	ti.Placeholder = "Type your answer"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	ctx, cancel := context.WithCancel(context.Background())
	return PlayModel{
		runner: game.NewRunner(g, cfg),
		ctx:    ctx,
		cancel: cancel,
		state:  g.State(),
		input:  ti,
		help:   help.New(),
		keys:   DefaultGameKeyMap(),
		width:  width,
		height: height,
	}
}

// Init starts the runner and the update pump.
func (m PlayModel) Init() tea.Cmd {
	return tea.Batch(runGame(m.ctx, m.runner), waitForUpdate(m.runner), textinput.Blink)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case updateMsg:
		m.state = msg.State
		m.feed = appendFeed(m.feed, describe(msg.Event, msg.State))
		if _, ok := msg.Event.(game.GameOver); ok {
			m.over = true
		}
		return m, waitForUpdate(m.runner)

	case runnerDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		m.over = true
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stop()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		// Leaving a running game needs a pause first.
		if m.over || m.state.Paused {
			m.stop()
			m.backToMenu = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.runner.Send(game.PauseCmd{})
		return m, nil

	case key.Matches(msg, m.keys.NextRound):
		m.runner.Send(game.NextRoundCmd{})
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		text := strings.TrimSpace(m.input.Value())
		if text != "" && m.state.Active != "" {
			m.runner.Send(game.SubmitCmd{Player: m.state.Active, Text: text})
			m.input.Reset()
		}
		return m, nil
	}

	if t, ok := m.keys.PowerUp(msg); ok {
		if m.state.Active != "" {
			m.runner.Send(game.UsePowerUpCmd{Player: m.state.Active, Type: t})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *PlayModel) stop() {
	m.runner.Send(game.QuitCmd{})
	m.cancel()
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.over {
		b.WriteString(m.renderFinal())
	} else {
		b.WriteString(m.renderQuestion())
		b.WriteString("\n")
		b.WriteString(m.renderTurn())
		b.WriteString("\n\n")
		b.WriteString(m.renderScores())
	}

	if m.state.Last != nil && !m.over {
		b.WriteString("\n")
		b.WriteString(m.renderLast())
	}

	if len(m.feed) > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(strings.Join(m.feed, "\n")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.over {
		b.WriteString(dimStyle.Render("esc: menu  •  C-c: quit"))
	} else {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	}
	return b.String()
}

func (m PlayModel) renderHeader() string {
	st := m.state
	parts := []string{"THEORY GAMES", st.Mode.Title()}
	if st.Round > 0 {
		parts = append(parts, fmt.Sprintf("Round %d/%d", st.Round, st.MaxRounds))
	}
	if st.Category != "" {
		parts = append(parts, st.Category)
	}
	header := titleStyle.Render(strings.Join(parts, "  •  "))
	if st.Paused {
		header += "  " + activeStyle.Render(" PAUSED ")
	}
	return header
}

func (m PlayModel) renderQuestion() string {
	q := m.state.Question
	if q == nil {
		return dimStyle.Render("Drawing a question...")
	}

	var b strings.Builder
	b.WriteString(styled(q.Difficulty.Color(), "["+q.Difficulty.String()+"]"))
	b.WriteString(" ")
	b.WriteString(q.Prompt)
	if q.Unit != "" && q.Kind == core.KindNumeric {
		b.WriteString(dimStyle.Render(" (" + q.Unit + ")"))
	}
	if q.Hint != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Hint: " + q.Hint))
	}
	if q.Kind == core.KindNameMatch && len(q.Dimensions) > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Compared on: " + strings.Join(q.Dimensions, ", ")))
	}

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	return panelStyle.Width(width).Render(b.String())
}

func (m PlayModel) renderTurn() string {
	st := m.state
	if st.Active == "" {
		switch st.Phase {
		case game.PhaseRoundResolved:
			return dimStyle.Render("Round over. C-n for the next round.")
		default:
			if st.RoundPhase == round.PhaseAnswered || st.RoundPhase == round.PhaseAwaitingTurn {
				return dimStyle.Render("Next player get ready...")
			}
			return ""
		}
	}

	p, _ := st.Player(st.Active)
	line := "Now answering: " + activeStyle.Render(" "+playerLabel(p)+" ")
	if st.TimersEnabled {
		line += "  ⏱ " + formatCountdown(st.Remaining)
	} else {
		line += dimStyle.Render("  (untimed)")
	}
	if st.IsFrozen(st.Active) {
		line += "  " + frozenStyle.Render("❄ frozen")
	}
	if t, ok := st.Armed[st.Active]; ok {
		line += "  " + styled(core.ColorMagenta, "armed: "+t.String())
	}
	return line
}

func (m PlayModel) renderScores() string {
	st := m.state
	answered := make(map[core.PlayerID]bool, len(st.Answered))
	for _, id := range st.Answered {
		answered[id] = true
	}

	var b strings.Builder
	b.WriteString(dimStyle.Render(padRight("", 2) + padRight("Player", nameColumn) + "  Score  Streak  Power-ups"))
	b.WriteString("\n")
	for _, p := range st.Players {
		marker := "  "
		switch {
		case p.ID == st.Active:
			marker = "▶ "
		case st.IsFrozen(p.ID):
			marker = "❄ "
		case answered[p.ID]:
			marker = "✓ "
		}
		b.WriteString(fmt.Sprintf("%s%s  %5d  %6d  %s\n",
			marker, padRight(playerLabel(p), nameColumn), p.Score, p.Streak, powerUpList(p)))
	}
	for _, p := range st.Eliminated {
		b.WriteString(dimStyle.Render(fmt.Sprintf("✗ %s  %5d  eliminated", padRight(playerLabel(p), nameColumn), p.Score)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m PlayModel) renderLast() string {
	r := m.state.Last
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Round %d answer: ", r.Round)))
	if r.Question.Kind == core.KindNameMatch {
		b.WriteString(r.Question.AnswerName)
	} else {
		b.WriteString(formatValue(r.Question.Answer, r.Question.Unit))
	}
	if r.Question.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(r.Question.Explanation))
	}
	for _, a := range r.Answers {
		name := string(a.Player)
		if p, ok := m.state.Player(a.Player); ok {
			name = playerLabel(p)
		}
		line := fmt.Sprintf("\n  %s %q", padRight(name, nameColumn), a.Text)
		if d, ok := r.Distances[a.Player]; ok && d != round.Unmatched {
			line += dimStyle.Render(fmt.Sprintf("  off by %.4g", d))
		}
		if r.Winner != nil && *r.Winner == a.Player {
			line += "  " + styled(core.ColorGreen, "★")
		}
		b.WriteString(line)
	}
	b.WriteString("\n")
	return b.String()
}

func (m PlayModel) renderFinal() string {
	st := m.state
	all := append(append([]core.Player(nil), st.Players...), st.Eliminated...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })

	var b strings.Builder
	title := "GAME OVER"
	if st.Winner != nil {
		for _, p := range all {
			if p.ID == *st.Winner {
				title = fmt.Sprintf("GAME OVER  •  %s wins!", playerLabel(p))
			}
		}
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	for i, p := range all {
		line := fmt.Sprintf("%2d. %s  %5d pts  %2d rounds won  best streak %d",
			i+1, padRight(playerLabel(p), nameColumn), p.Score, p.RoundsWon, p.LongestStreak)
		if len(p.Achievements) > 0 {
			titles := make([]string, 0, len(p.Achievements))
			for _, a := range p.Achievements {
				titles = append(titles, a.Title())
			}
			line += dimStyle.Render("  " + strings.Join(titles, ", "))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().MarginLeft(1).Render(b.String())
}

// BackToMenu returns true if user requested to go back to menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// State returns the last game snapshot the model received.
func (m PlayModel) State() game.State {
	return m.state
}
