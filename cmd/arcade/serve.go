package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/platform/tui"
)

var sshConfig = tui.DefaultSSHServerConfig()

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server where every connection gets its own arcade session:
menu, games and high scores, sized and colored for the client's terminal.

Scores are saved under the SSH user name in the store chosen by --db, so
everyone on the server shares one leaderboard. Clients must request a
terminal; plain command execution is refused.

Without --host-key a key is generated on first start at ~/.arcade/host_key.

Examples:
  arcade serve
  arcade serve --ssh :2222 --idle-timeout 10m
  arcade serve --host-key ./host_key
  arcade serve --db postgres://arcade@db/arcade --log-file ./ssh.log

Connect with:
  ssh -p 23234 localhost`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&sshConfig.Address, "ssh", sshConfig.Address, "SSH listen address (host:port)")
	serveCmd.Flags().StringVar(&sshConfig.HostKeyPath, "host-key", "", "Host key file (default ~/.arcade/host_key)")
	serveCmd.Flags().DurationVar(&sshConfig.IdleTimeout, "idle-timeout", sshConfig.IdleTimeout, "Disconnect clients idle for this long")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closer := newLogger("arcade-ssh", false)
	defer closer.Close()

	cfg := sshConfig
	cfg.DSN = flagDBPath
	cfg.TickRate = flagFPS
	cfg.Logger = logger

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("cannot create SSH server: %w", err)
	}

	fmt.Printf("arcade SSH server listening on %s (Ctrl+C to stop)\n", server.Addr())
	return server.ListenAndServe()
}
