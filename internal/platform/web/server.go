// Package web serves arcade games to browsers over WebSocket. Each
// connection gets its own game and tick loop; the browser only sends input
// and draws the state frames it receives.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/logging"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

const (
	defaultPlayer   = "web"
	maxPlayerLen    = 32
	defaultScoreTop = 10
	maxScoreTop     = 100
)

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickRate is the simulation rate of every session.
	TickRate int

	// SendBuffer is how many frames may queue for a slow client before
	// new ones are dropped.
	SendBuffer int

	// AllowedOrigins limits which browser origins may open sockets.
	// Empty allows any origin.
	AllowedOrigins []string

	// Store saves finished games. Nil disables scores.
	Store *storage.Store

	// Logger receives server logs. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:    ":8080",
		TickRate:   60,
		SendBuffer: 64,
	}
}

// Server is the HTTP and WebSocket front end.
type Server struct {
	cfg      Config
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux

	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	closed   bool
	wg       sync.WaitGroup
	sessions atomic.Int64
}

// New creates a server. Call Close, or cancel the context given to
// ListenAndServe, to end all sessions.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		l, _, err := logging.New(logging.Options{Prefix: "arcade-web"})
		if err != nil {
			return nil, err
		}
		logger = l
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = DefaultConfig().SendBuffer
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:    cfg,
		store:  cfg.Store,
		logger: logger,
		mux:    http.NewServeMux(),
		ctx:    ctx,
		cancel: cancel,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}

	s.mux.HandleFunc("GET /ws", s.handleWS)
	s.mux.HandleFunc("GET /api/games", s.handleGames)
	s.mux.HandleFunc("GET /api/scores", s.handleScores)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s, nil
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Sessions returns the number of connected sessions.
func (s *Server) Sessions() int {
	return int(s.sessions.Load())
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return s.ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address, "tickRate", s.cfg.TickRate)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.Close()
			return fmt.Errorf("web: listen: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...", "sessions", s.Sessions())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

// Close ends every session and waits for them to finish.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// begin registers a new session; it fails once Close has been called.
func (s *Server) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	s.sessions.Add(1)
	return true
}

func (s *Server) end() {
	s.sessions.Add(-1)
	s.wg.Done()
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range s.cfg.AllowedOrigins {
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}
	return false
}

// handleWS upgrades /ws?game=<id>&seed=<n>&player=<name> and runs a session
// until the client disconnects.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gameID := q.Get("game")
	if gameID == "" {
		http.Error(w, "missing game query", http.StatusBadRequest)
		return
	}
	game, err := registry.Create(gameID)
	switch {
	case errors.Is(err, registry.ErrUnknownGame):
		http.Error(w, "unknown game", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	seed := time.Now().UnixNano()
	if raw := q.Get("seed"); raw != "" {
		seed, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
	}

	if !s.begin() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.end()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied to the client.
		s.logger.Debug("upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()
	player := playerName(q.Get("player"))
	logger := s.logger.With("session", id[:8], "game", gameID)

	game.Reset(core.RuntimeConfig{
		ScreenW:  core.DefaultConfig().ScreenW,
		ScreenH:  core.DefaultConfig().ScreenH,
		TickRate: s.cfg.TickRate,
		Seed:     seed,
	})

	sess := &session{
		id:       id,
		player:   player,
		game:     game,
		conn:     conn,
		send:     make(chan []byte, s.cfg.SendBuffer),
		store:    s.store,
		logger:   logger,
		tickRate: s.cfg.TickRate,
	}

	logger.Info("session started", "player", player, "seed", seed, "remote", r.RemoteAddr)
	start := time.Now()
	sess.run(s.ctx)
	logger.Info("session ended", "ticks", sess.tick, "duration", time.Since(start).Round(time.Second))
}

func playerName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return defaultPlayer
	}
	if r := []rune(name); len(r) > maxPlayerLen {
		name = string(r[:maxPlayerLen])
	}
	return name
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, registry.List())
}

// handleScores serves /api/scores?game=<id>&limit=<n>.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "scores are disabled", http.StatusServiceUnavailable)
		return
	}

	q := r.URL.Query()
	gameID := q.Get("game")
	if !registry.Exists(gameID) {
		http.Error(w, "unknown game", http.StatusNotFound)
		return
	}

	limit := defaultScoreTop
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxScoreTop)
	}

	scores, err := s.store.TopScores(gameID, limit)
	if err != nil {
		s.logger.Error("cannot load scores", "game", gameID, "error", err)
		http.Error(w, "cannot load scores", http.StatusInternalServerError)
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.Sessions(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
