package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent games",
	Long: `Display the most recent finished games, newest first.

Examples:
  theorygames history
  theorygames history --limit 5`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
}

func runHistory(_ *cobra.Command, _ []string) {
	a, err := setup(os.Stderr, true)
	if err != nil {
		exitf("%v", err)
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries, err := a.profiles.History(ctx, flagLimit)
	if err != nil {
		cancel()
		a.Close()
		exitf("reading history: %v", err)
	}

	if len(entries) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-12s  %6s  %8s  %-16s  %s\n", "Played", "Mode", "Rounds", "Duration", "Winner", "Players")
	fmt.Printf("  %-16s  %-12s  %6s  %8s  %-16s  %s\n", "------", "----", "------", "--------", "------", "-------")

	for _, e := range entries {
		winner := e.Winner
		if winner == "" {
			winner = "-"
		}
		players := make([]string, 0, len(e.Players))
		for _, p := range e.Players {
			players = append(players, fmt.Sprintf("%s %d", p.Name, p.Score))
		}
		fmt.Printf("  %-16s  %-12s  %6d  %8s  %-16s  %s\n",
			e.PlayedAt.Local().Format("2006-01-02 15:04"),
			e.Mode,
			e.Rounds,
			e.Duration.Round(time.Second),
			truncate(winner, 16),
			strings.Join(players, ", "),
		)
	}
}
