package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

var flagListJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows every game registered in the arcade with its best local score.

Use --json for the same list the web server returns from /api/games.`,
	Run: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListJSON, "json", false, "Print the game list as JSON")
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if flagListJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(games); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Best scores are optional here; a missing database just hides the column.
	best := make(map[string]int)
	if store, err := storage.Open(flagDBPath); err == nil {
		for _, g := range games {
			if high, err := store.HighScore(g.ID); err == nil {
				best[g.ID] = high
			}
		}
		store.Close()
	}

	fmt.Println("Available games:")
	fmt.Println()

	idW := len("ID")
	for _, g := range games {
		idW = max(idW, len(g.ID))
	}

	fmt.Printf("  %-*s  %-10s  %s\n", idW, "ID", "Title", "Best")
	fmt.Printf("  %-*s  %-10s  %s\n", idW, "--", "-----", "----")
	for _, g := range games {
		score := "-"
		if high := best[g.ID]; high > 0 {
			score = fmt.Sprint(high)
		}
		fmt.Printf("  %-*s  %-10s  %s\n", idW, g.ID, g.Title, score)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
