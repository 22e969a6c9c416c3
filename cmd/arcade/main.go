// arcade is a terminal arcade with three classic games: breakout, a fixed
// shooter and snake.
//
// Usage:
//
//	arcade list                  - List available games
//	arcade play <game>           - Play a game
//	arcade menu                  - Start menu to pick games interactively
//	arcade serve                 - Start SSH server for remote play
//	arcade web                   - Start WebSocket server for browser clients
//	arcade scores [game]         - Show high scores
//	arcade replay verify <file>  - Re-simulate a recorded session
//	arcade config dump <game>    - Print a game's default config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <dsn>           - SQLite path or postgres:// URL (default: ~/.arcade/scores.db)
//	--difficulty <name>  - Difficulty preset: easy, normal, hard
//	--log-file <path>    - Write logs to a rotating file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/games/breakout"
	"github.com/vovakirdan/pocket-arcade/internal/games/shooter"
	"github.com/vovakirdan/pocket-arcade/internal/games/snake"
	"github.com/vovakirdan/pocket-arcade/internal/logging"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Pocket Arcade - breakout, shooter and snake in your terminal",
	Long: `Pocket Arcade runs three classic arcade games in the terminal,
over SSH, or for browser clients over WebSocket.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  web      - Start WebSocket server for browsers
  scores   - View high scores
  replay   - Inspect and verify recorded sessions
  config   - Show default game configs

Examples:
  arcade list
  arcade play breakout
  arcade play snake --difficulty hard --record ./replays
  arcade menu
  arcade serve --ssh :2222
  arcade web --addr :8080 --db postgres://arcade@localhost/arcade
  arcade scores shooter`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		breakout.SetDifficultyPreset(preset)
		shooter.SetDifficultyPreset(preset)
		snake.SetDifficultyPreset(preset)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Scores database: SQLite path or postgres:// URL")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (rotated)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the logger for a command. Interactive commands own the
// terminal, so they log nowhere unless --log-file is set.
func newLogger(prefix string, interactive bool) (*log.Logger, io.Closer) {
	opts := logging.Options{
		Prefix: prefix,
		Level:  flagLogLevel,
		File:   flagLogFile,
	}
	if interactive && flagLogFile == "" {
		opts.Writer = io.Discard
	}

	logger, closer, err := logging.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, closer
}

// openStore opens the score store, or returns nil with a warning so games
// still run without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "dsn", flagDBPath, "error", err)
		return nil
	}
	return store
}
