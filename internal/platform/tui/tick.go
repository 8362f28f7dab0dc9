// Package tui provides the Bubble Tea front end for TheoryGames.
// It handles the terminal UI loop, key bindings and the SSH server, and
// drives games through a game.Runner.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/theory-games/internal/game"
)

// updateMsg carries one game update into the Bubble Tea loop.
type updateMsg game.Update

// runnerDoneMsg is sent when the runner's Run returns.
type runnerDoneMsg struct {
	err error
}

// runGame returns a command that drives the runner until it stops.
func runGame(ctx context.Context, r *game.Runner) tea.Cmd {
	return func() tea.Msg {
		return runnerDoneMsg{err: r.Run(ctx)}
	}
}

// waitForUpdate returns a command that waits for the next runner update.
// It yields nil once the runner is done.
func waitForUpdate(r *game.Runner) tea.Cmd {
	return func() tea.Msg {
		select {
		case u := <-r.Updates():
			return updateMsg(u)
		case <-r.Done():
			// Drain what the game published before stopping.
			select {
			case u := <-r.Updates():
				return updateMsg(u)
			default:
				return nil
			}
		}
	}
}
