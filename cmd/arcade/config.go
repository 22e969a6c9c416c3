package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show default game configs",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump <game>",
	Short: "Print a game's default config as YAML",
	Long: `Print the built-in config for a game. Save it to
~/.arcade/configs/<game>.yaml, or pass it with 'arcade play <game> --config', to
override any value.

Examples:
  arcade config dump breakout > ~/.arcade/configs/breakout.yaml`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		data, ok := config.DefaultYAML(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no config for game %q\n", args[0])
			os.Exit(1)
		}
		_, _ = os.Stdout.Write(data)
	},
}

func init() {
	configCmd.AddCommand(configDumpCmd)
}
