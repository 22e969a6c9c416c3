package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/logging"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel runs menu, games and scoreboard inside one program, the way
// an SSH client sees the arcade. Children end their own programs with
// tea.Quit when used standalone; the session swallows those commands and
// switches screens instead.
type SessionModel struct {
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	username string
	renderer *lipgloss.Renderer // nil uses the local terminal
	painter  *Painter

	screen     sessionScreen
	menu       MenuModel
	game       Model
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session that starts at the menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	return newSession(store, cfg, username, logger, nil)
}

func newSession(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger, r *lipgloss.Renderer) SessionModel {
	if logger == nil {
		logger = logging.Discard()
	}
	var painter *Painter
	if r != nil {
		painter = NewPainter(r)
	}
	return SessionModel{
		store:    store,
		logger:   logger,
		config:   cfg,
		username: username,
		renderer: r,
		painter:  painter,
		menu:     newMenu(store, cfg, r),
	}
}

// forward hands msg to a child model and keeps its concrete type.
func forward[T tea.Model](child T, msg tea.Msg) (T, tea.Cmd) {
	next, cmd := child.Update(msg)
	if t, ok := next.(T); ok {
		return t, cmd
	}
	return child, cmd
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenGame:
		m.game, cmd = forward(m.game, msg)
		switch {
		case m.game.IsQuitting():
			return m.quit()
		case m.game.BackToMenu():
			return m.toMenu()
		}

	case screenScores:
		m.scoreboard, cmd = forward(m.scoreboard, msg)
		switch {
		case m.scoreboard.IsQuitting():
			return m.quit()
		case m.scoreboard.IsGoingBack():
			return m.toMenu()
		}

	default:
		m.menu, cmd = forward(m.menu, msg)
		switch {
		case m.menu.IsQuitting():
			return m.quit()
		case m.menu.WantsScoreboard():
			return m.toScores()
		case m.menu.Selected() != nil:
			return m.toGame(m.menu.Selected().GameID)
		}
	}
	return m, cmd
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.game = Model{}
	m.menu = newMenu(m.store, m.config, m.renderer)
	return m, m.menu.Init()
}

func (m SessionModel) toScores() (tea.Model, tea.Cmd) {
	m.screen = screenScores
	m.scoreboard = newScoreboard(m.store, m.config.ScreenW, m.config.ScreenH, m.renderer)
	return m, m.scoreboard.Init()
}

// toGame starts a game with a fresh seed. An unknown ID logs and returns
// to the menu.
func (m SessionModel) toGame(gameID string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		m.logger.Error("cannot create game", "game", gameID, "error", err)
		return m.toMenu()
	}

	cfg := m.menu.Config()
	cfg.Seed = 0
	m.config = cfg
	m.game = NewModel(game, cfg, Options{
		Store:   m.store,
		Logger:  m.logger.With("game", gameID),
		Player:  m.username,
		Painter: m.painter,
	})
	m.screen = screenGame
	return m, m.game.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
