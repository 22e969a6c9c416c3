package shooter

import (
	"math"
	"math/rand/v2"
	"slices"
)

// Shot size is the same for both sides.
const (
	shotWidth  = 4
	shotHeight = 12
)

// Config holds the board, formation and tuning values.
// Zero or negative fields take the DefaultConfig value, gaps and margins included.
type Config struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	EnemyRows    int     `json:"enemyRows"`
	EnemyCols    int     `json:"enemyCols"`
	EnemyWidth   float64 `json:"enemyWidth"`
	EnemyHeight  float64 `json:"enemyHeight"`
	EnemyGapX    float64 `json:"enemyGapX"`
	EnemyGapY    float64 `json:"enemyGapY"`
	EnemyMarginX float64 `json:"enemyMarginX"`
	EnemyMarginY float64 `json:"enemyMarginY"`

	EnemyBaseSpeed float64 `json:"enemyBaseSpeed"`
	EnemySpeedStep float64 `json:"enemySpeedStep"`
	EnemyStepDown  float64 `json:"enemyStepDown"`

	ShootBaseIntervalMs float64 `json:"shootBaseIntervalMs"`
	ShootStepMs         float64 `json:"shootStepMs"`
	ShootMinIntervalMs  float64 `json:"shootMinIntervalMs"`

	PlayerWidth     float64 `json:"playerWidth"`
	PlayerHeight    float64 `json:"playerHeight"`
	PlayerSpeed     float64 `json:"playerSpeed"`
	PlayerBottomGap float64 `json:"playerBottomGap"`
	ShotDelayMs     float64 `json:"shotDelayMs"`
	PlayerShotSpeed float64 `json:"playerShotSpeed"`
	EnemyShotSpeed  float64 `json:"enemyShotSpeed"`

	Lives       int `json:"lives"`
	EnemyPoints int `json:"enemyPoints"`
}

// DefaultConfig returns the standard 480x640 board with a 4x8 formation.
func DefaultConfig() Config {
	return Config{
		Width:               480,
		Height:              640,
		EnemyRows:           4,
		EnemyCols:           8,
		EnemyWidth:          28,
		EnemyHeight:         20,
		EnemyGapX:           14,
		EnemyGapY:           14,
		EnemyMarginX:        38,
		EnemyMarginY:        70,
		EnemyBaseSpeed:      48,
		EnemySpeedStep:      10,
		EnemyStepDown:       20,
		ShootBaseIntervalMs: 900,
		ShootStepMs:         60,
		ShootMinIntervalMs:  300,
		PlayerWidth:         40,
		PlayerHeight:        24,
		PlayerSpeed:         280,
		PlayerBottomGap:     30,
		ShotDelayMs:         220,
		PlayerShotSpeed:     360,
		EnemyShotSpeed:      220,
		Lives:               3,
		EnemyPoints:         100,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	orF := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	orI := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}

	orF(&c.Width, d.Width)
	orF(&c.Height, d.Height)
	orI(&c.EnemyRows, d.EnemyRows)
	orI(&c.EnemyCols, d.EnemyCols)
	orF(&c.EnemyWidth, d.EnemyWidth)
	orF(&c.EnemyHeight, d.EnemyHeight)
	orF(&c.EnemyGapX, d.EnemyGapX)
	orF(&c.EnemyGapY, d.EnemyGapY)
	orF(&c.EnemyMarginX, d.EnemyMarginX)
	orF(&c.EnemyMarginY, d.EnemyMarginY)
	orF(&c.EnemyBaseSpeed, d.EnemyBaseSpeed)
	orF(&c.EnemySpeedStep, d.EnemySpeedStep)
	orF(&c.EnemyStepDown, d.EnemyStepDown)
	orF(&c.ShootBaseIntervalMs, d.ShootBaseIntervalMs)
	orF(&c.ShootStepMs, d.ShootStepMs)
	orF(&c.ShootMinIntervalMs, d.ShootMinIntervalMs)
	orF(&c.PlayerWidth, d.PlayerWidth)
	orF(&c.PlayerHeight, d.PlayerHeight)
	orF(&c.PlayerSpeed, d.PlayerSpeed)
	orF(&c.PlayerBottomGap, d.PlayerBottomGap)
	orF(&c.ShotDelayMs, d.ShotDelayMs)
	orF(&c.PlayerShotSpeed, d.PlayerShotSpeed)
	orF(&c.EnemyShotSpeed, d.EnemyShotSpeed)
	orI(&c.Lives, d.Lives)
	orI(&c.EnemyPoints, d.EnemyPoints)
	return c
}

// Owner says which side fired a shot.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// String returns the owner name.
func (o Owner) String() string {
	if o == OwnerEnemy {
		return "enemy"
	}
	return "player"
}

// MarshalText encodes the owner as its name in JSON.
func (o Owner) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Box is an axis-aligned rectangle in board units. (X, Y) is the top-left corner.
type Box struct {
	X, Y, Width, Height float64
}

// Intersects reports whether two boxes overlap. Touching edges do not count.
func Intersects(a, b Box) bool {
	return a.X < b.X+b.Width &&
		a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height &&
		a.Y+a.Height > b.Y
}

// Player is the ship at the bottom of the board.
type Player struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Speed          float64 `json:"speed"`
	ShotCooldownMs float64 `json:"shotCooldownMs"`
	ShotDelayMs    float64 `json:"shotDelayMs"`
}

// Box returns the player's bounds.
func (p Player) Box() Box { return Box{p.X, p.Y, p.Width, p.Height} }

// Shot is a projectile. Player shots travel up, enemy shots travel down.
type Shot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Speed  float64 `json:"speed"`
	Owner  Owner   `json:"owner"`
}

// Box returns the shot's bounds.
func (s Shot) Box() Box { return Box{s.X, s.Y, s.Width, s.Height} }

// Enemy is one member of the formation. Dead enemies stay in the slice.
type Enemy struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Alive  bool    `json:"alive"`
}

// Box returns the enemy's bounds.
func (e Enemy) Box() Box { return Box{e.X, e.Y, e.Width, e.Height} }

// State is one immutable snapshot of a shooter game.
type State struct {
	Config               Config  `json:"config"`
	Player               Player  `json:"player"`
	Shots                []Shot  `json:"shots"`
	Enemies              []Enemy `json:"enemies"`
	EnemyDir             float64 `json:"enemyDir"`
	EnemySpeed           float64 `json:"enemySpeed"`
	EnemyShootIntervalMs float64 `json:"enemyShootIntervalMs"`
	EnemyShootTimerMs    float64 `json:"enemyShootTimerMs"`
	Score                int     `json:"score"`
	Lives                int     `json:"lives"`
	Level                int     `json:"level"`
	Paused               bool    `json:"paused"`
	GameOver             bool    `json:"gameOver"`
}

// Input is the per-frame intent.
type Input struct {
	DtMs  float64 // Elapsed time; negative counts as zero
	Left  bool
	Right bool
	Shoot bool
}

// Random supplies uniform values in [0, 1). *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// Width returns the board width.
func (s State) Width() float64 { return s.Config.Width }

// Height returns the board height.
func (s State) Height() float64 { return s.Config.Height }

// AliveEnemies counts the enemies still standing.
func (s State) AliveEnemies() int {
	n := 0
	for _, e := range s.Enemies {
		if e.Alive {
			n++
		}
	}
	return n
}

// NewFormation lays out a fresh rows x cols formation. IDs start at 1 in row-major order.
func NewFormation(cfg Config) []Enemy {
	cfg = cfg.withDefaults()
	enemies := make([]Enemy, 0, cfg.EnemyRows*cfg.EnemyCols)
	id := 1
	for row := range cfg.EnemyRows {
		for col := range cfg.EnemyCols {
			enemies = append(enemies, Enemy{
				ID:     id,
				X:      cfg.EnemyMarginX + float64(col)*(cfg.EnemyWidth+cfg.EnemyGapX),
				Y:      cfg.EnemyMarginY + float64(row)*(cfg.EnemyHeight+cfg.EnemyGapY),
				Width:  cfg.EnemyWidth,
				Height: cfg.EnemyHeight,
				Alive:  true,
			})
			id++
		}
	}
	return enemies
}

// wave holds the per-level formation values.
type wave struct {
	enemies    []Enemy
	speed      float64
	intervalMs float64
}

func makeWave(cfg Config, level int) wave {
	lv := float64(level - 1)
	return wave{
		enemies:    NewFormation(cfg),
		speed:      cfg.EnemyBaseSpeed + lv*cfg.EnemySpeedStep,
		intervalMs: math.Max(cfg.ShootMinIntervalMs, cfg.ShootBaseIntervalMs-lv*cfg.ShootStepMs),
	}
}

// NewState creates a level 1 game with the player centered.
func NewState(cfg Config) State {
	cfg = cfg.withDefaults()
	w := makeWave(cfg, 1)

	return State{
		Config: cfg,
		Player: Player{
			X:           cfg.Width/2 - cfg.PlayerWidth/2,
			Y:           cfg.Height - cfg.PlayerBottomGap - cfg.PlayerHeight,
			Width:       cfg.PlayerWidth,
			Height:      cfg.PlayerHeight,
			Speed:       cfg.PlayerSpeed,
			ShotDelayMs: cfg.ShotDelayMs,
		},
		Shots:                []Shot{},
		Enemies:              w.enemies,
		EnemyDir:             1,
		EnemySpeed:           w.speed,
		EnemyShootIntervalMs: w.intervalMs,
		EnemyShootTimerMs:    w.intervalMs,
		Lives:                cfg.Lives,
		Level:                1,
	}
}

// TogglePause flips the pause flag. Finished games stay as they are.
func TogglePause(s State) State {
	if s.GameOver {
		return s
	}
	s.Paused = !s.Paused
	return s
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// Step advances the game by in.DtMs. rnd picks which enemy fires; nil uses
// the process-wide generator. Paused or finished games are returned unchanged.
func Step(s State, in Input, rnd Random) State {
	if s.Paused || s.GameOver {
		return s
	}
	if rnd == nil {
		rnd = globalRandom{}
	}

	cfg := s.Config
	dtMs := math.Max(0, in.DtMs)
	dt := dtMs / 1000

	player := s.Player
	move := 0.0
	if in.Right {
		move++
	}
	if in.Left {
		move--
	}
	player.X = math.Min(math.Max(player.X+move*player.Speed*dt, 0), cfg.Width-player.Width)
	player.ShotCooldownMs = math.Max(0, player.ShotCooldownMs-dtMs)

	shots := slices.Clone(s.Shots)
	if in.Shoot && player.ShotCooldownMs == 0 {
		shots = append(shots, Shot{
			X:      player.X + player.Width/2 - shotWidth/2,
			Y:      player.Y - shotHeight,
			Width:  shotWidth,
			Height: shotHeight,
			Speed:  cfg.PlayerShotSpeed,
			Owner:  OwnerPlayer,
		})
		player.ShotCooldownMs = player.ShotDelayMs
	}

	for i := range shots {
		if shots[i].Owner == OwnerPlayer {
			shots[i].Y -= shots[i].Speed * dt
		} else {
			shots[i].Y += shots[i].Speed * dt
		}
	}
	shots = slices.DeleteFunc(shots, func(sh Shot) bool {
		return sh.Y+sh.Height < 0 || sh.Y > cfg.Height
	})

	// The shooter pool is fixed before the move; shooters fire from where they end up.
	enemies := slices.Clone(s.Enemies)
	var alive []int
	for i, e := range enemies {
		if e.Alive {
			alive = append(alive, i)
		}
	}

	dir := s.EnemyDir
	if len(alive) > 0 {
		shiftX := dir * s.EnemySpeed * dt
		left, right := math.Inf(1), math.Inf(-1)
		for _, i := range alive {
			left = math.Min(left, enemies[i].X)
			right = math.Max(right, enemies[i].X+enemies[i].Width)
		}

		dx, dy := shiftX, 0.0
		if left+shiftX < 0 || right+shiftX > cfg.Width {
			dir = -dir
			dx, dy = 0, cfg.EnemyStepDown
		}
		for i := range enemies {
			enemies[i].X += dx
			enemies[i].Y += dy
		}
	}

	timer := s.EnemyShootTimerMs - dtMs
	if len(alive) > 0 {
		interval := s.EnemyShootIntervalMs
		if interval <= 0 {
			interval = cfg.ShootMinIntervalMs
		}
		for timer <= 0 {
			pick := min(len(alive)-1, int(math.Floor(rnd.Float64()*float64(len(alive)))))
			e := enemies[alive[pick]]
			shots = append(shots, Shot{
				X:      e.X + e.Width/2 - shotWidth/2,
				Y:      e.Y + e.Height,
				Width:  shotWidth,
				Height: shotHeight,
				Speed:  cfg.EnemyShotSpeed,
				Owner:  OwnerEnemy,
			})
			timer += interval
		}
	} else {
		timer = s.EnemyShootIntervalMs
	}

	removed := make([]bool, len(shots))
	score := s.Score
	for i, sh := range shots {
		if sh.Owner != OwnerPlayer {
			continue
		}
		for j := range enemies {
			if !enemies[j].Alive || !Intersects(sh.Box(), enemies[j].Box()) {
				continue
			}
			enemies[j].Alive = false
			removed[i] = true
			score += cfg.EnemyPoints
			break
		}
	}

	lives := s.Lives
	for i, sh := range shots {
		if sh.Owner != OwnerEnemy || removed[i] {
			continue
		}
		if Intersects(sh.Box(), player.Box()) {
			removed[i] = true
			lives--
		}
	}

	kept := make([]Shot, 0, len(shots))
	for i, sh := range shots {
		if !removed[i] {
			kept = append(kept, sh)
		}
	}

	gameOver := lives <= 0
	lives = max(0, lives)
	if !gameOver {
		for _, e := range enemies {
			if e.Alive && (e.Y+e.Height >= player.Y || Intersects(e.Box(), player.Box())) {
				gameOver = true
				break
			}
		}
	}

	next := s
	next.Player = player
	next.Shots = kept
	next.Enemies = enemies
	next.EnemyDir = dir
	next.EnemyShootTimerMs = timer
	next.Score = score
	next.Lives = lives
	next.GameOver = gameOver

	if !gameOver && next.AliveEnemies() == 0 {
		w := makeWave(cfg, s.Level+1)
		next.Level = s.Level + 1
		next.Enemies = w.enemies
		next.EnemySpeed = w.speed
		next.EnemyShootIntervalMs = w.intervalMs
		next.EnemyShootTimerMs = w.intervalMs
		next.Shots = []Shot{}
	}

	return next
}
