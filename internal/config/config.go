// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
//
// Every numeric field is optional: a zero value means "use the game's
// built-in default", so a config file only needs the keys it changes.
package config

import "fmt"

// BoardConfig is the size of a continuous play field in game units.
type BoardConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BreakoutConfig contains all configuration for the brick-breaker game.
type BreakoutConfig struct {
	Board    BoardConfig      `yaml:"board"`
	Bricks   BreakoutBricks   `yaml:"bricks"`
	Paddle   BreakoutPaddle   `yaml:"paddle"`
	Ball     BreakoutBall     `yaml:"ball"`
	Gameplay BreakoutGameplay `yaml:"gameplay"`
}

// BreakoutBricks defines the brick grid layout.
type BreakoutBricks struct {
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	MarginX float64 `yaml:"margin_x"`
	MarginY float64 `yaml:"margin_y"`
	GapX    float64 `yaml:"gap_x"`
	GapY    float64 `yaml:"gap_y"`
	Height  float64 `yaml:"height"`
}

// BreakoutPaddle defines the paddle size and speed.
type BreakoutPaddle struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Speed     float64 `yaml:"speed"`
	BottomGap float64 `yaml:"bottom_gap"`
}

// BreakoutBall defines ball size and per-level speed.
type BreakoutBall struct {
	Radius    float64 `yaml:"radius"`
	BaseSpeed float64 `yaml:"base_speed"`
	SpeedStep float64 `yaml:"speed_step"`
}

// BreakoutGameplay defines lives and scoring.
type BreakoutGameplay struct {
	Lives       int `yaml:"lives"`
	BrickPoints int `yaml:"brick_points"`
}

// ShooterConfig contains all configuration for the fixed shooter.
type ShooterConfig struct {
	Board     BoardConfig      `yaml:"board"`
	Formation ShooterFormation `yaml:"formation"`
	Enemy     ShooterEnemy     `yaml:"enemy"`
	Player    ShooterPlayer    `yaml:"player"`
	Gameplay  ShooterGameplay  `yaml:"gameplay"`
}

// ShooterFormation defines the enemy grid.
type ShooterFormation struct {
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	EnemyWidth  float64 `yaml:"enemy_width"`
	EnemyHeight float64 `yaml:"enemy_height"`
	GapX        float64 `yaml:"gap_x"`
	GapY        float64 `yaml:"gap_y"`
	MarginX     float64 `yaml:"margin_x"`
	MarginY     float64 `yaml:"margin_y"`
	StepDown    float64 `yaml:"step_down"`
}

// ShooterEnemy defines formation speed and fire rate per wave.
type ShooterEnemy struct {
	BaseSpeed           float64 `yaml:"base_speed"`
	SpeedStep           float64 `yaml:"speed_step"`
	ShootBaseIntervalMs float64 `yaml:"shoot_base_interval_ms"`
	ShootStepMs         float64 `yaml:"shoot_step_ms"`
	ShootMinIntervalMs  float64 `yaml:"shoot_min_interval_ms"`
	ShotSpeed           float64 `yaml:"shot_speed"`
}

// ShooterPlayer defines the player ship.
type ShooterPlayer struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Speed       float64 `yaml:"speed"`
	BottomGap   float64 `yaml:"bottom_gap"`
	ShotDelayMs float64 `yaml:"shot_delay_ms"`
	ShotSpeed   float64 `yaml:"shot_speed"`
}

// ShooterGameplay defines lives and scoring.
type ShooterGameplay struct {
	Lives       int `yaml:"lives"`
	EnemyPoints int `yaml:"enemy_points"`
}

// SnakeConfig contains all configuration for the grid snake.
type SnakeConfig struct {
	GridSize int `yaml:"grid_size"`
	TickMs   int `yaml:"tick_ms"` // Milliseconds between moves
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ApplyBreakoutPreset adjusts lives, paddle and ball speed for a preset.
// Normal keeps the file's values.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 120
		cfg.Ball.BaseSpeed = 220
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 64
		cfg.Ball.BaseSpeed = 320
		cfg.Ball.SpeedStep = 30
	}
}

// ApplyShooterPreset adjusts lives, formation speed and fire rate for a preset.
func ApplyShooterPreset(cfg *ShooterConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Enemy.BaseSpeed = 36
		cfg.Enemy.ShootBaseIntervalMs = 1200
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Enemy.BaseSpeed = 64
		cfg.Enemy.ShootBaseIntervalMs = 700
		cfg.Enemy.ShootMinIntervalMs = 220
	}
}

// ApplySnakePreset adjusts the move period for a preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.TickMs = 170
	case DifficultyHard:
		cfg.TickMs = 95
	}
}
