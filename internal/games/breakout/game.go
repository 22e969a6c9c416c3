// Package breakout implements the brick-breaker game.
//
// logic.go holds the pure simulation (State, Step). Game wraps it for the
// platform: it owns the current State, turns input frames into Step calls
// and draws the board onto a core.Screen.
package breakout

import (
	"fmt"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

// Rendering glyphs
const (
	PaddleChar  = '▀'
	BallChar    = '●'
	BorderHoriz = '─'
)

// BrickGlyphs cycle by brick row.
var BrickGlyphs = []rune{'█', '▓', '▒', '█', '▓'}

var brickColors = []core.Color{
	core.ColorBrightRed,
	core.ColorOrange,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
	core.ColorBrightCyan,
}

const hudHeight = 2

// Package-level settings applied on the next Reset.
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

// Game is the platform adapter around the brick-breaker simulation.
type Game struct {
	runtime core.RuntimeConfig
	cfg     Config
	state   State
	tick    uint64
	loadErr error
}

// New creates a new brick-breaker game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("breakout", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// Reset loads the configuration and starts a fresh game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	fileCfg, err := config.LoadBreakout(configPath)
	g.loadErr = err
	if err != nil {
		fileCfg = config.BreakoutConfig{}
	}
	config.ApplyBreakoutPreset(&fileCfg, difficultyPreset)

	g.cfg = ConfigFromFile(fileCfg)
	g.state = NewState(g.cfg)
	g.tick = 0
}

// ConfigFromFile maps the YAML config onto the simulation config.
// Unset values fall back to DefaultConfig inside NewState.
func ConfigFromFile(c config.BreakoutConfig) Config {
	return Config{
		Width:           c.Board.Width,
		Height:          c.Board.Height,
		BrickRows:       c.Bricks.Rows,
		BrickCols:       c.Bricks.Cols,
		BrickMarginX:    c.Bricks.MarginX,
		BrickMarginY:    c.Bricks.MarginY,
		BrickGapX:       c.Bricks.GapX,
		BrickGapY:       c.Bricks.GapY,
		BrickHeight:     c.Bricks.Height,
		PaddleWidth:     c.Paddle.Width,
		PaddleHeight:    c.Paddle.Height,
		PaddleSpeed:     c.Paddle.Speed,
		PaddleBottomGap: c.Paddle.BottomGap,
		BallRadius:      c.Ball.Radius,
		BallBaseSpeed:   c.Ball.BaseSpeed,
		BallSpeedStep:   c.Ball.SpeedStep,
		Lives:           c.Gameplay.Lives,
		BrickPoints:     c.Gameplay.BrickPoints,
	}
}

// ConfigError returns the error from loading a custom config, if any.
// The game runs on defaults in that case.
func (g *Game) ConfigError() error {
	return g.loadErr
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) && g.state.GameOver {
		g.state = NewState(g.cfg)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.state = TogglePause(g.state)
	}

	g.state = Step(g.state, Input{
		DtMs:  core.FrameDelta(in, g.runtime.TickRate),
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
	})

	return core.StepResult{State: g.State()}
}

// State returns the current status for the platform.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		Lives:    g.state.Lives,
		Level:    g.state.Level,
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

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < 20 || dst.Height() < hudHeight+8 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	g.renderHUD(dst)

	area := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight)
	view := core.FitViewport(g.cfg.Width, g.cfg.Height, core.NewRect(area.X+1, area.Y+1, area.W-2, area.H-2))
	frame := core.NewRect(view.Area.X-1, view.Area.Y-1, view.Area.W+2, view.Area.H+2)
	dst.DrawBoxColored(frame, core.ColorGray)

	g.renderBricks(dst, view)
	g.renderPaddle(dst, view)
	g.renderBall(dst, view)
	g.renderOverlay(dst)
}

// renderHUD draws the score, lives, and level indicator.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.state.Score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", g.state.Lives))
	levelText := fmt.Sprintf("Level: %d", g.state.Level)
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)
	dst.DrawHLine(0, 1, dst.Width(), BorderHoriz)
}

func (g *Game) renderBricks(dst *core.Screen, view core.Viewport) {
	for _, b := range g.state.Bricks {
		if !b.Alive {
			continue
		}
		cells := view.RectCells(b.X, b.Y, b.Width, b.Height)
		glyph := BrickGlyphs[b.Row%len(BrickGlyphs)]
		dst.FillRect(cells, glyph, brickColors[b.Row%len(brickColors)])
	}
}

func (g *Game) renderPaddle(dst *core.Screen, view core.Viewport) {
	p := g.state.Paddle
	dst.FillRect(view.RectCells(p.X, p.Y, p.Width, p.Height), PaddleChar, core.ColorBrightWhite)
}

func (g *Game) renderBall(dst *core.Screen, view core.Viewport) {
	b := g.state.Ball
	if b.Y-b.Radius > g.cfg.Height {
		return
	}
	x, y := view.ToCell(b.X, b.Y)
	dst.SetColored(x, y, BallChar, core.ColorBrightWhite)
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.state.GameOver:
		drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d - R to restart", g.state.Score))
	case g.state.Paused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}
