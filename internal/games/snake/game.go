// Package snake implements the classic grid snake. The snake moves one cell
// per move period, grows when it eats and dies on walls or itself.
package snake

import (
	"fmt"
	"math/rand/v2"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

// DefaultTickMs is the move period when no config sets one.
const DefaultTickMs = 130

// Rendering glyphs
const (
	HeadChar = '█'
	BodyChar = '▓'
	FoodChar = '●'
)

const hudHeight = 2

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom YAML config file.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game implements the snake game on top of the pure State.
type Game struct {
	runtime core.RuntimeConfig
	rng     *rand.Rand
	tick    uint64

	gridSize int
	tickMs   float64
	sinceMs  float64 // Time accumulated toward the next move
	held     uint8   // direction keys down on the previous frame, bit i = turnKeys[i]

	state   State
	loadErr error
}

// New creates a new snake game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset loads the configuration and starts a new game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadSnake(configPath)
	g.loadErr = err
	if err != nil {
		cfg = config.SnakeConfig{}
	}
	config.ApplySnakePreset(&cfg, difficultyPreset)

	g.gridSize = cfg.GridSize
	if g.gridSize <= 0 {
		g.gridSize = DefaultGridSize
	}
	g.tickMs = float64(cfg.TickMs)
	if g.tickMs <= 0 {
		g.tickMs = DefaultTickMs
	}

	g.rng = core.NewRand(runtime.Seed)
	g.restart()
	g.tick = 0
	g.held = 0
}

func (g *Game) restart() {
	g.state = NewState(Config{GridSize: g.gridSize, Random: g.rng})
	g.sinceMs = 0
}

// ConfigError returns the error from loading a custom config, if any.
func (g *Game) ConfigError() error {
	return g.loadErr
}

// TickMs returns the move period in milliseconds.
func (g *Game) TickMs() float64 {
	return g.tickMs
}

// Step advances the game by one frame. The snake moves once for every
// full move period of accumulated frame time.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	fresh := g.pressedTurns(in)

	if in.Has(core.ActionRestart) && g.state.GameOver {
		g.restart()
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.state = TogglePause(g.state)
	}
	if g.state.GameOver || g.state.Paused {
		return core.StepResult{State: g.State()}
	}

	for _, dir := range fresh {
		g.state = SetDirection(g.state, dir)
	}

	g.sinceMs += core.FrameDelta(in, g.runtime.TickRate)
	for g.sinceMs >= g.tickMs && !g.state.GameOver {
		g.sinceMs -= g.tickMs
		g.state = Step(g.state, g.rng)
	}

	return core.StepResult{State: g.State()}
}

var turnKeys = [...]struct {
	action core.Action
	dir    Direction
}{
	{core.ActionUp, DirUp},
	{core.ActionDown, DirDown},
	{core.ActionLeft, DirLeft},
	{core.ActionRight, DirRight},
}

// pressedTurns returns the directions whose key went down since the previous
// frame. A key that stays held asks for its turn once, so an older key still
// inside its hold window cannot queue the same turn again later.
func (g *Game) pressedTurns(in core.InputFrame) []Direction {
	var held uint8
	var fresh []Direction
	for i, k := range turnKeys {
		if !in.Has(k.action) {
			continue
		}
		held |= 1 << i
		if g.held&(1<<i) == 0 {
			fresh = append(fresh, k.dir)
		}
	}
	g.held = held
	return fresh
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		Level:    1,
		GameOver: g.state.GameOver,
		Paused:   g.state.Paused,
	}
}

// Sim returns the current simulation state.
func (g *Game) Sim() State {
	return g.state
}

// Export returns the simulation state for JSON clients.
func (g *Game) Export() any {
	return g.state
}

// Fingerprint hashes the current snapshot.
func (g *Game) Fingerprint() uint64 {
	snap := g.Snapshot()
	return snap.Hash()
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	hud := fmt.Sprintf(" Snake - Score: %d  Length: %d", g.state.Score, len(g.state.Snake))
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	area := core.NewRect(1, hudHeight+1, dst.Width()-2, dst.Height()-hudHeight-2)
	if area.W < g.gridSize || area.H < g.gridSize {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", g.gridSize+2, g.gridSize+hudHeight+2))
		return
	}

	origin, cols := core.FitGrid(g.gridSize, area)
	dst.DrawBoxColored(core.NewRect(origin.X-1, origin.Y-1, origin.W+2, origin.H+2), core.ColorGray)

	if f := g.state.Food; f != nil {
		g.drawCell(dst, origin, cols, *f, FoodChar, core.ColorBrightRed)
	}
	for i := len(g.state.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			g.drawCell(dst, origin, cols, g.state.Snake[i], HeadChar, core.ColorBrightGreen)
		} else {
			g.drawCell(dst, origin, cols, g.state.Snake[i], BodyChar, core.ColorGreen)
		}
	}

	switch {
	case g.state.GameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.state.Paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) drawCell(dst *core.Screen, origin core.Rect, cols int, c Cell, r rune, color core.Color) {
	x := origin.X + c.X*cols
	for dx := range cols {
		dst.SetColored(x+dx, origin.Y+c.Y, r, color)
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len(line1))/2, box.Y+1, line1)
	dst.DrawText(box.X+(boxW-len(line2))/2, box.Y+3, line2)
}
