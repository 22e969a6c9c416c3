// Package shooter implements a fixed shooter: a formation of enemies sweeps
// side to side and steps down at the walls while the player fires from below.
package shooter

import (
	"fmt"
	"math/rand/v2"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

// Rendering glyphs
const (
	PlayerChar    = '▲'
	EnemyChar     = 'W'
	PlayerShotChr = '│'
	EnemyShotChr  = '╎'
	BorderHoriz   = '─'
)

var rowColors = []core.Color{
	core.ColorBrightMagenta,
	core.ColorBrightRed,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
}

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

// Game is the platform adapter around the shooter simulation.
type Game struct {
	runtime core.RuntimeConfig
	cfg     Config
	state   State
	rng     *rand.Rand
	tick    uint64
	loadErr error
}

// New creates a new shooter game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("shooter", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "shooter"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Shooter"
}

// Reset loads the configuration, reseeds the generator and starts a fresh game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	fileCfg, err := config.LoadShooter(configPath)
	g.loadErr = err
	if err != nil {
		fileCfg = config.ShooterConfig{}
	}
	config.ApplyShooterPreset(&fileCfg, difficultyPreset)

	g.cfg = ConfigFromFile(fileCfg)
	g.rng = core.NewRand(runtime.Seed)
	g.state = NewState(g.cfg)
	g.tick = 0
}

// ConfigFromFile maps the YAML config onto the simulation config.
func ConfigFromFile(c config.ShooterConfig) Config {
	return Config{
		Width:               c.Board.Width,
		Height:              c.Board.Height,
		EnemyRows:           c.Formation.Rows,
		EnemyCols:           c.Formation.Cols,
		EnemyWidth:          c.Formation.EnemyWidth,
		EnemyHeight:         c.Formation.EnemyHeight,
		EnemyGapX:           c.Formation.GapX,
		EnemyGapY:           c.Formation.GapY,
		EnemyMarginX:        c.Formation.MarginX,
		EnemyMarginY:        c.Formation.MarginY,
		EnemyStepDown:       c.Formation.StepDown,
		EnemyBaseSpeed:      c.Enemy.BaseSpeed,
		EnemySpeedStep:      c.Enemy.SpeedStep,
		ShootBaseIntervalMs: c.Enemy.ShootBaseIntervalMs,
		ShootStepMs:         c.Enemy.ShootStepMs,
		ShootMinIntervalMs:  c.Enemy.ShootMinIntervalMs,
		EnemyShotSpeed:      c.Enemy.ShotSpeed,
		PlayerWidth:         c.Player.Width,
		PlayerHeight:        c.Player.Height,
		PlayerSpeed:         c.Player.Speed,
		PlayerBottomGap:     c.Player.BottomGap,
		ShotDelayMs:         c.Player.ShotDelayMs,
		PlayerShotSpeed:     c.Player.ShotSpeed,
		Lives:               c.Gameplay.Lives,
		EnemyPoints:         c.Gameplay.EnemyPoints,
	}
}

// ConfigError returns the error from loading a custom config, if any.
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
		Shoot: in.Has(core.ActionFire),
	}, g.rng)

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

	s := g.state
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", s.Score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", s.Lives))
	wave := fmt.Sprintf("Wave: %d", s.Level)
	dst.DrawText(dst.Width()-len(wave)-1, 0, wave)
	dst.DrawHLine(0, 1, dst.Width(), BorderHoriz)

	inner := core.NewRect(1, hudHeight+1, dst.Width()-2, dst.Height()-hudHeight-2)
	view := core.FitViewport(g.cfg.Width, g.cfg.Height, inner)
	dst.DrawBoxColored(core.NewRect(view.Area.X-1, view.Area.Y-1, view.Area.W+2, view.Area.H+2), core.ColorGray)

	for i, e := range s.Enemies {
		if !e.Alive {
			continue
		}
		row := i / max(1, g.cfg.EnemyCols)
		x, y := view.ToCell(e.X+e.Width/2, e.Y+e.Height/2)
		dst.SetColored(x, y, EnemyChar, rowColors[row%len(rowColors)])
	}

	for _, sh := range s.Shots {
		x, y := view.ToCell(sh.X+sh.Width/2, sh.Y+sh.Height/2)
		if sh.Owner == OwnerPlayer {
			dst.SetColored(x, y, PlayerShotChr, core.ColorBrightCyan)
		} else {
			dst.SetColored(x, y, EnemyShotChr, core.ColorBrightRed)
		}
	}

	p := s.Player
	dst.FillRect(view.RectCells(p.X, p.Y, p.Width, p.Height), PlayerChar, core.ColorBrightGreen)

	switch {
	case s.GameOver:
		drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d - R to restart", s.Score))
	case s.Paused:
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
