package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top scores for a game, or a summary of every game
when no game is given.

Examples:
  arcade scores
  arcade scores breakout
  arcade scores snake --limit 25`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	if len(args) == 0 {
		err = printSummary(store)
	} else {
		err = printTopScores(store, args[0])
	}
	store.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printSummary(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Println("High Scores")
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-8s  %-8s  %s\n", "Game", "Games", "Best", "Average", "Last played")
	fmt.Printf("  %-10s  %-6s  %-8s  %-8s  %s\n", "----", "-----", "----", "-------", "-----------")

	for _, info := range registry.List() {
		st, ok := stats[info.ID]
		if !ok || st.GamesCount == 0 {
			fmt.Printf("  %-10s  %-6d  %-8s  %-8s  %s\n", info.ID, 0, "-", "-", "-")
			continue
		}
		fmt.Printf("  %-10s  %-6d  %-8d  %-8.1f  %s\n",
			info.ID, st.GamesCount, st.HighScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printTopScores(store *storage.Store, gameID string) error {
	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	idx := slices.IndexFunc(registry.List(), func(g registry.GameInfo) bool { return g.ID == gameID })
	title := registry.List()[idx].Title

	scores, err := store.TopScores(gameID, max(flagScoresLimit, 1))
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-16s  %-5s  %s\n", "Rank", "Score", "Player", "Level", "Date")
	fmt.Printf("  %-4s  %-8s  %-16s  %-5s  %s\n", "----", "-----", "------", "-----", "----")

	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-8d  %-16s  %-5d  %s\n",
			i+1, entry.Score, player, entry.Level, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
