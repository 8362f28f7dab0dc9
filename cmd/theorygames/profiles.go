package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/platform/tui"
	"github.com/vovakirdan/theory-games/internal/storage"
)

var (
	flagTop         int
	flagInteractive bool
)

var profilesCmd = &cobra.Command{
	Use:   "profiles [id]",
	Short: "Show player profiles",
	Long: `List player profiles, show one profile in detail, or open the leaderboard.

Examples:
  theorygames profiles                 # All profiles by name
  theorygames profiles --top 10        # Leaderboard, best 10
  theorygames profiles --tui           # Interactive leaderboard
  theorygames profiles <id>            # One profile with category stats`,
	Args: cobra.MaximumNArgs(1),
	Run:  runProfiles,
}

func init() {
	profilesCmd.Flags().IntVar(&flagTop, "top", 0, "Show the leaderboard limited to N players")
	profilesCmd.Flags().BoolVar(&flagInteractive, "tui", false, "Open the interactive leaderboard")
}

func runProfiles(_ *cobra.Command, args []string) {
	a, err := setup(discardIfTUI(), true)
	if err != nil {
		exitf("%v", err)
	}
	defer a.Close()

	if flagInteractive {
		width, height := terminalSize()
		if err := tui.RunScoreboard(a.profiles, width, height); err != nil {
			a.Close()
			exitf("running leaderboard: %v", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if len(args) == 1 {
		p := a.profiles.Load(ctx, core.PlayerID(args[0]))
		if p == nil {
			// Accept a display name as well as an id
			p = a.profiles.Load(ctx, storage.ProfileID(args[0]))
		}
		if p == nil {
			cancel()
			a.Close()
			exitf("no profile %q", args[0])
		}
		printProfile(p)
		return
	}

	var profiles []storage.Profile
	if flagTop > 0 {
		profiles, err = a.profiles.Leaderboard(ctx, flagTop)
	} else {
		profiles, err = a.profiles.List(ctx)
	}
	if err != nil {
		cancel()
		a.Close()
		exitf("reading profiles: %v", err)
	}

	if len(profiles) == 0 {
		fmt.Println("No profiles yet.")
		fmt.Println()
		fmt.Println("Play 'theorygames play' to create one!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-20s  %5s  %4s  %5s  %6s  %6s  %s\n", "#", "Player", "Games", "Wins", "Win%", "Rounds", "Score", "ID")
	fmt.Printf("  %-4s  %-20s  %5s  %4s  %5s  %6s  %6s  %s\n", "-", "------", "-----", "----", "----", "------", "-----", "--")

	for i, p := range profiles {
		fmt.Printf("  %-4d  %-20s  %5d  %4d  %4.0f%%  %6d  %6d  %s\n",
			i+1, truncate(p.Name, 20), p.GamesPlayed, p.GamesWon, p.WinRate()*100, p.RoundsWon, p.TotalScore, p.ID)
	}
}

func printProfile(p *storage.Profile) {
	fmt.Printf("%s %s\n", p.Avatar, p.Name)
	fmt.Printf("  ID:             %s\n", p.ID)
	fmt.Printf("  Games:          %d played, %d won (%.0f%%)\n", p.GamesPlayed, p.GamesWon, p.WinRate()*100)
	fmt.Printf("  Rounds won:     %d\n", p.RoundsWon)
	fmt.Printf("  Total score:    %d (best game %d)\n", p.TotalScore, p.BestScore)
	fmt.Printf("  Longest streak: %d\n", p.LongestStreak)
	fmt.Printf("  Power-ups used: %d\n", p.PowerUpsUsed)
	if !p.UpdatedAt.IsZero() {
		fmt.Printf("  Last played:    %s\n", p.UpdatedAt.Format("2006-01-02 15:04"))
	}

	if len(p.Achievements) > 0 {
		titles := make([]string, 0, len(p.Achievements))
		for _, ach := range p.Achievements {
			titles = append(titles, ach.Title())
		}
		fmt.Printf("  Achievements:   %s\n", strings.Join(titles, ", "))
	}

	if len(p.Categories) == 0 {
		return
	}
	ids := make([]string, 0, len(p.Categories))
	for id := range p.Categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println()
	fmt.Printf("  %-16s  %6s  %4s\n", "Category", "Rounds", "Won")
	for _, id := range ids {
		st := p.Categories[id]
		fmt.Printf("  %-16s  %6d  %4d\n", truncate(id, 16), st.Played, st.Won)
	}
}

// discardIfTUI keeps log output off the alt screen.
func discardIfTUI() io.Writer {
	if flagInteractive {
		return io.Discard
	}
	return os.Stderr
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
