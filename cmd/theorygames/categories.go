package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/theory-games/internal/catalog"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List question categories",
	Long:  `Shows every category in the question catalog with its answer kind.`,
	Args:  cobra.NoArgs,
	Run:   runCategories,
}

func runCategories(_ *cobra.Command, _ []string) {
	cat := catalog.New(flagSeed)
	cats := cat.Categories()

	if len(cats) == 0 {
		fmt.Println("No categories available.")
		return
	}

	fmt.Println("Available categories:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, c := range cats {
		if len(c.ID) > maxIDLen {
			maxIDLen = len(c.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-10s  %9s  %s\n", maxIDLen, "ID", "Kind", "Questions", "Title")
	fmt.Printf("  %-*s  %-10s  %9s  %s\n", maxIDLen, "--", "----", "---------", "-----")

	for _, c := range cats {
		fmt.Printf("  %-*s  %-10s  %9d  %s\n", maxIDLen, c.ID, c.Kind, len(cat.QuestionsFor(c.ID)), c.Title)
	}

	fmt.Println()
	fmt.Println("Run 'theorygames play' to start a game.")
}
