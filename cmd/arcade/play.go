package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/games/breakout"
	"github.com/vovakirdan/pocket-arcade/internal/games/shooter"
	"github.com/vovakirdan/pocket-arcade/internal/games/snake"
	"github.com/vovakirdan/pocket-arcade/internal/platform/tui"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

var (
	flagConfig    string
	flagRecordDir string
	flagPlayer    string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Left/Right, A/D, H/L  - Move paddle or ship
  Arrows/WASD/HJKL      - Turn the snake
  Space                 - Fire (shooter)
  P                     - Pause
  R                     - Restart (after game over)
  Esc                   - Leave the game
  Ctrl+S                - Save a screenshot to ~/.arcade/screenshots
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - More lives, slower ball, formation and snake
  normal - The config as written
  hard   - Fewer lives, faster everything

Examples:
  arcade play breakout
  arcade play shooter --difficulty hard
  arcade play snake --config ./my-snake.yaml
  arcade play snake --seed 42 --record ./replays`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagRecordDir, "record", "", "Record a replay into this directory")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name stored with your scores (default: login name)")
}

// setConfigPath points the chosen game at a custom config file.
func setConfigPath(gameID, path string) {
	switch gameID {
	case "breakout":
		breakout.SetConfigPath(path)
	case "shooter":
		shooter.SetConfigPath(path)
	case "snake":
		snake.SetConfigPath(path)
	}
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "anonymous"
}

// checkConfig resets the game once so a broken --config file is reported
// before the terminal switches to the alt screen.
func checkConfig(game registry.Game, cfg core.RuntimeConfig) error {
	game.Reset(cfg)
	if c, ok := game.(interface{ ConfigError() error }); ok {
		return c.ConfigError()
	}
	return nil
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
	setConfigPath(gameID, flagConfig)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := terminalConfig()
	if err := checkConfig(game, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closer := newLogger("arcade", true)
	defer closer.Close()

	// Continue without storage - game still works
	store := openStore(logger)

	runErr := tui.Run(game, cfg, tui.Options{
		Store:     store,
		Logger:    logger,
		Player:    playerName(),
		RecordDir: flagRecordDir,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
