package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/theory-games/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a local hot-seat game",
	Long: `Start a hot-seat game on this terminal.

Pick a mode, add players, then press Enter on an empty name to start.
Players answer in turn on the same keyboard.

Modes:
  classic      - 10 rounds, 30s turns
  speed        - 5 rounds, 15s turns
  elimination  - 8 rounds, lowest score leaves each round
  powerup      - 10 rounds with power-ups

Controls:
  Enter        - Submit answer
  F1-F4        - Extra time, freeze, double points, steal
  Ctrl+P       - Pause / resume
  Ctrl+N       - Next round
  Esc          - Back to setup (after pausing)
  Ctrl+C       - Quit

Examples:
  theorygames play
  theorygames play --seed 42
  theorygames play --db ./theorygames.db`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	a, err := setup(io.Discard, false)
	if err != nil {
		exitf("%v", err)
	}
	defer a.Close()

	width, height := terminalSize()
	deps := tui.Deps{
		Catalog:  a.catalog,
		Profiles: a.profiles,
		Config:   a.cfg,
		Logger:   a.logger,
	}
	if err := tui.Run(deps, width, height); err != nil {
		a.Close()
		exitf("running game: %v", err)
	}
}
