package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID    string
	Title     string
	Blurb     string
	HighScore int // 0 when unknown
}

var blurbs = map[string]string{
	"breakout": "Clear the wall. Each level the ball gets faster.",
	"shooter":  "Stop the formation before it reaches your ship.",
	"snake":    "Eat, grow, and keep off the walls and your tail.",
}

const gameControls = "In game: arrows/WASD move  space fire  p pause  r restart  esc menu"

// MenuKeyMap defines the key bindings for the game picker.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scoreboard, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Select:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Scoreboard: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// menuOutcome is what the menu was closed for.
type menuOutcome int

const (
	menuOpen menuOutcome = iota
	menuPlay
	menuScores
	menuQuit
)

type menuStyles struct {
	title  lipgloss.Style
	cursor lipgloss.Style
	best   lipgloss.Style
	blurb  lipgloss.Style
	help   lipgloss.Style
}

func newMenuStyles(r *lipgloss.Renderer) menuStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return menuStyles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		cursor: r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		best:   r.NewStyle().Foreground(lipgloss.Color("241")),
		blurb:  r.NewStyle().Italic(true),
		help:   r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items   []MenuItem
	cursor  int
	config  core.RuntimeConfig
	outcome menuOutcome

	keys   MenuKeyMap
	help   help.Model
	styles menuStyles
}

// NewMenuModel creates a menu for a local terminal. Best scores come from
// store when it is not nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return newMenu(store, cfg, nil)
}

func newMenu(store *storage.Store, cfg core.RuntimeConfig, r *lipgloss.Renderer) MenuModel {
	var items []MenuItem
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Title: g.Title, Blurb: blurbs[g.ID]}
		if store != nil {
			if high, err := store.HighScore(g.ID); err == nil {
				item.HighScore = high
			}
		}
		items = append(items, item)
	}

	h := help.New()
	h.Width = cfg.ScreenW
	return MenuModel{
		items:  items,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   h,
		styles: newMenuStyles(r),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) move(delta int) {
	if n := len(m.items); n > 0 {
		m.cursor = (m.cursor + delta + n) % n
	}
}

// Update handles messages for the menu. Any outcome other than moving the
// cursor closes the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.outcome = menuQuit
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				m.outcome = menuPlay
			}
		case key.Matches(msg, m.keys.Scoreboard):
			m.outcome = menuScores
		}
		if m.outcome != menuOpen {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.outcome == menuQuit {
		return ""
	}
	width := m.config.ScreenW

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.styles.title.Render("  A R C A D E  "), width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-10s", item.Title)
		if i == m.cursor {
			line = m.styles.cursor.Render(fmt.Sprintf("> %-10s", item.Title))
		}
		if item.HighScore > 0 {
			line += m.styles.best.Render(fmt.Sprintf("  (best %d)", item.HighScore))
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		if blurb := m.items[m.cursor].Blurb; blurb != "" {
			b.WriteString("\n")
			b.WriteString(centerText(m.styles.blurb.Render(blurb), width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), width))
	b.WriteString("\n")
	b.WriteString(centerText(m.styles.help.Render(gameControls), width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	if m.outcome != menuPlay {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.outcome == menuQuit
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.outcome == menuScores
}

// Config returns the runtime config, resized to the last window size seen.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width, measuring display cells.
func centerText(text string, width int) string {
	if strings.Contains(text, "\n") {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
	}
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu as its own program and reports what was chosen.
// A program that ends without a choice counts as quitting.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch m.outcome {
	case menuPlay:
		result.GameID = m.items[m.cursor].GameID
	case menuScores:
		result.WantsScoreboard = true
	default:
		result.Quit = true
	}
	return result, nil
}
