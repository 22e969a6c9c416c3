package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/platform/web"
)

var (
	flagWebAddr    string
	flagOrigins    []string
	flagSendBuffer int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the arcade WebSocket server",
	Long: `Start an HTTP server that runs games for browser clients.

Each WebSocket connection gets its own game and tick loop. The browser
sends held input and receives JSON state frames.

Endpoints:
  GET /ws?game=<id>&seed=<n>&player=<name>  - Play a game
  GET /api/games                            - List games
  GET /api/scores?game=<id>&limit=<n>       - Top scores
  GET /healthz                              - Health check

Examples:
  arcade web
  arcade web --addr :9000 --origin https://arcade.example.com
  arcade web --db postgres://arcade@localhost/arcade?sslmode=disable`,
	Run: runWeb,
}

func init() {
	def := web.DefaultConfig()
	webCmd.Flags().StringVar(&flagWebAddr, "addr", def.Address, "HTTP listen address (host:port)")
	webCmd.Flags().StringSliceVar(&flagOrigins, "origin", nil, "Allowed browser origin (repeatable; default any)")
	webCmd.Flags().IntVar(&flagSendBuffer, "send-buffer", def.SendBuffer, "Frames queued per slow client before dropping")
}

func runWeb(_ *cobra.Command, _ []string) {
	if err := serveWeb(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func serveWeb() error {
	logger, closer := newLogger("arcade-web", false)
	defer closer.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	server, err := web.New(web.Config{
		Address:        flagWebAddr,
		TickRate:       flagFPS,
		SendBuffer:     flagSendBuffer,
		AllowedOrigins: flagOrigins,
		Store:          store,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting arcade web server on %s\n", flagWebAddr)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
