package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/logging"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/replay"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

// Options configures a game model.
type Options struct {
	Store     *storage.Store // nil disables score saving
	Logger    *log.Logger    // nil discards logs
	Player    string         // name stored with scores
	RecordDir string         // record a replay into this directory when set
	Painter   *Painter       // nil paints with the local terminal's profile
}

// Model is the Bubble Tea model for running one arcade game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	player    string
	recorder  *replay.Recorder
	holds     *HoldTracker
	keyMapper *KeyMapper
	painter   *Painter
	gen       uint64
	lastTick  time.Time
	tick      uint64
	gameState core.GameState

	quitting   bool
	backToMenu bool
	quitOnBack bool // standalone runs have no menu to return to
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	player := opts.Player
	if player == "" {
		player = "anonymous"
	}

	m := Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     opts.Store,
		logger:    logger.With("game", game.ID()),
		config:    cfg,
		player:    player,
		gen:       nextTickGen(),
		holds:     NewHoldTracker(),
		keyMapper: NewKeyMapper(),
		painter:   opts.Painter,
	}
	if m.painter == nil {
		m.painter = defaultPainter
	}
	if opts.RecordDir != "" {
		m.recorder = replay.NewRecorder(opts.RecordDir, game.ID(), cfg.Seed, cfg.TickRate)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game started", "seed", m.config.Seed, "tickRate", m.config.TickRate)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Boards are fixed in world units; only the view changes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.finish()
		return m, tea.Quit
	}
	if action == core.ActionBack {
		m.backToMenu = true
		m.finish()
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	m.holds.Press(action, time.Now())
	return m, nil
}

// frameDelta measures the time since the previous tick.
func (m *Model) frameDelta(now time.Time) float64 {
	defer func() { m.lastTick = now }()
	if m.lastTick.IsZero() {
		return 1000 / float64(m.config.TickRate)
	}
	dt := float64(now.Sub(m.lastTick)) / float64(time.Millisecond)
	return core.ClampFrameMs(dt)
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	in := m.holds.Frame(now, m.frameDelta(now))
	result := m.game.Step(in)
	m.tick++
	m.gameState = result.State

	if m.recorder != nil {
		var fp uint64
		if obs, ok := m.game.(registry.Observable); ok {
			fp = obs.Fingerprint()
		}
		m.recorder.Record(m.tick, in, m.gameState, fp)
	}

	// Save score on game over (once); a restart re-arms it.
	switch {
	case !m.gameState.GameOver:
		m.scoreSaved = false
	case !m.scoreSaved:
		m.saveScore()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

func (m *Model) saveScore() {
	st := m.gameState
	m.logger.Info("game over", "score", st.Score, "level", st.Level, "player", m.player)
	if m.store == nil || st.Score <= 0 {
		return
	}

	_, err := m.store.SaveScore(storage.ScoreRecord{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  st.Score,
		Level:  st.Level,
	})
	if err != nil {
		m.logger.Warn("could not save score", "error", err)
	}
}

// finish flushes the replay, if any. Safe to call more than once.
func (m *Model) finish() {
	if m.recorder == nil {
		return
	}
	n := m.recorder.Len()
	if err := m.recorder.Close(); err != nil {
		m.logger.Error("could not write replay", "path", m.recorder.Path(), "error", err)
		return
	}
	if n > 0 {
		m.logger.Info("replay saved", "path", m.recorder.Path(), "frames", n)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("no home directory for screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return m.painter.Paint(m.screen)
}

// State returns the game status after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Ticks returns the number of steps run so far.
func (m Model) Ticks() uint64 {
	return m.tick
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game and returns when
// the player quits or leaves the game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)
	model.quitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.finish()
	}
	return err
}
