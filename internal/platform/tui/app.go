package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/theory-games/internal/catalog"
	"github.com/vovakirdan/theory-games/internal/config"
	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/game"
	"github.com/vovakirdan/theory-games/internal/storage"
)

// Deps are the collaborators shared by every session.
type Deps struct {
	Catalog  *catalog.Catalog
	Profiles *storage.Profiles // Optional
	Config   config.Config
	Logger   *log.Logger
}

type screen int

const (
	screenSetup screen = iota
	screenPlay
	screenLeaderboard
)

// App manages the full session flow: setup -> game -> setup, with the
// leaderboard reachable from setup. It is the top-level model of local and
// SSH sessions.
type App struct {
	deps     Deps
	screen   screen
	setup    SetupModel
	play     *PlayModel
	board    ScoreboardModel
	width    int
	height   int
	quitting bool
}

// NewApp creates a session starting on the setup screen.
func NewApp(deps Deps, width, height int) App {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	a := App{deps: deps, width: width, height: height}
	a.setup = NewSetupModel(a.settings(), width, height)
	return a
}

// Init initializes the session.
func (a App) Init() tea.Cmd {
	return a.setup.Init()
}

// Update handles messages for the session.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = wsm.Width
		a.height = wsm.Height
	}

	switch a.screen {
	case screenPlay:
		return a.updatePlay(msg)
	case screenLeaderboard:
		return a.updateLeaderboard(msg)
	default:
		return a.updateSetup(msg)
	}
}

// updateSetup handles updates on the setup screen.
func (a App) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.setup.Update(msg)
	if sm, ok := next.(SetupModel); ok {
		a.setup = sm
	}

	switch {
	case a.setup.IsQuitting():
		a.quitting = true
		return a, tea.Quit

	case a.setup.WantsLeaderboard():
		a.setup.leaderboard = false
		a.board = NewScoreboardModel(a.deps.Profiles, a.width, a.height)
		a.screen = screenLeaderboard
		return a, a.board.Init()

	case a.setup.Started():
		a.setup.start = false
		sel := a.setup.Selection()
		g, err := a.newGame(sel)
		if err != nil {
			a.deps.Logger.Error("cannot start game", "error", err)
			a.setup.notice = err.Error()
			return a, nil
		}
		a.saveSettings(sel)
		pm := NewPlayModel(g, game.RunnerConfig{
			TickRate: a.deps.Config.Game.TickRate,
			Logger:   a.deps.Logger,
		}, a.width, a.height)
		a.play = &pm
		a.screen = screenPlay
		return a, a.play.Init()
	}

	return a, cmd
}

// updatePlay handles updates while a game runs.
func (a App) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.play.Update(msg)
	if pm, ok := next.(PlayModel); ok {
		a.play = &pm
	}

	if a.play.IsQuitting() {
		a.quitting = true
		return a, tea.Quit
	}
	if a.play.BackToMenu() {
		a.play = nil
		a.setup = NewSetupModel(a.settings(), a.width, a.height)
		a.screen = screenSetup
		return a, a.setup.Init()
	}
	return a, cmd
}

// updateLeaderboard handles updates on the leaderboard.
func (a App) updateLeaderboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.board.Update(msg)
	if bm, ok := next.(ScoreboardModel); ok {
		a.board = bm
	}

	if a.board.IsQuitting() {
		a.quitting = true
		return a, tea.Quit
	}
	if a.board.IsGoingBack() {
		a.screen = screenSetup
		return a, nil
	}
	return a, cmd
}

// View renders the current screen.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	switch a.screen {
	case screenPlay:
		return a.play.View()
	case screenLeaderboard:
		return a.board.View()
	default:
		return a.setup.View()
	}
}

// newGame seats the selected players, loading their profiles, and builds
// the game.
func (a App) newGame(sel Selection) (*game.Game, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	players := make([]*core.Player, 0, len(sel.Names))
	for i, name := range sel.Names {
		if a.deps.Profiles != nil {
			players = append(players, a.deps.Profiles.LoadOrCreate(ctx, name, avatarFor(i)).Player())
			continue
		}
		players = append(players, core.NewPlayer(storage.ProfileID(name), name, avatarFor(i)))
	}

	cfg := a.deps.Config.GameFor(sel.Mode, nil)
	cfg.Runtime.TimersEnabled = sel.Timers
	if len(cfg.Categories) == 0 {
		for _, c := range a.deps.Catalog.Categories() {
			cfg.Categories = append(cfg.Categories, c.ID)
		}
	}

	opts := game.Options{Logger: a.deps.Logger}
	if a.deps.Profiles != nil {
		opts.Saver = a.deps.Profiles
	}
	g, err := game.New(cfg, players, a.deps.Catalog, opts)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	return g, nil
}

func (a App) settings() storage.Settings {
	if a.deps.Profiles == nil {
		st := storage.DefaultSettings()
		st.Mode = a.deps.Config.Game.Mode
		st.TimersEnabled = a.deps.Config.Game.TimersEnabled
		return st
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.deps.Profiles.LoadSettings(ctx)
}

func (a App) saveSettings(sel Selection) {
	if a.deps.Profiles == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st := a.deps.Profiles.LoadSettings(ctx)
	st.Mode = sel.Mode.String()
	st.TimersEnabled = sel.Timers
	st.LastPlayers = sel.Names
	if err := a.deps.Profiles.SaveSettings(ctx, st); err != nil {
		a.deps.Logger.Warn("cannot save settings", "error", err)
	}
}

// Run starts a local session.
func Run(deps Deps, width, height int) error {
	p := tea.NewProgram(
		NewApp(deps, width, height),
		tea.WithAltScreen(), // Use alternate screen buffer
	)
	_, err := p.Run()
	return err
}
