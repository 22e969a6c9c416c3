package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/platform/tui"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Pick a game from a menu, play it, and come back to the menu when you
press Esc. Tab opens the high scores.

Examples:
  arcade menu
  arcade menu --fps 30 --difficulty easy
  arcade menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closer := newLogger("arcade", true)
	defer closer.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	for {
		choice, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = choice.Config

		switch {
		case choice.Quit:
			return nil
		case choice.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil || !back {
				return err
			}
		default:
			playFromMenu(choice.GameID, cfg, store, logger)
		}
	}
}

// playFromMenu runs one game. Failures are reported and the menu comes back.
func playFromMenu(gameID string, cfg core.RuntimeConfig, store *storage.Store, logger *log.Logger) {
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	err = tui.Run(game, cfg, tui.Options{
		Store:  store,
		Logger: logger,
		Player: playerName(),
	})
	if err != nil {
		logger.Error("game ended with an error", "game", gameID, "error", err)
		fmt.Fprintf(os.Stderr, "Error running %s: %v\n", gameID, err)
	}
}
