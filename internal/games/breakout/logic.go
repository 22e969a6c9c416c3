package breakout

import (
	"math"
	"slices"
)

const (
	maxStepMs       = 40
	launchSpread    = 0.72
	maxBounceAngle  = math.Pi / 3
	minBounceSpeedX = 45
)

// Config holds the board layout and tuning values.
// Zero or negative fields take the DefaultConfig value, gaps and margins included.
type Config struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	BrickRows    int     `json:"brickRows"`
	BrickCols    int     `json:"brickCols"`
	BrickMarginX float64 `json:"brickMarginX"`
	BrickMarginY float64 `json:"brickMarginY"`
	BrickGapX    float64 `json:"brickGapX"`
	BrickGapY    float64 `json:"brickGapY"`
	BrickHeight  float64 `json:"brickHeight"`

	PaddleWidth     float64 `json:"paddleWidth"`
	PaddleHeight    float64 `json:"paddleHeight"`
	PaddleSpeed     float64 `json:"paddleSpeed"`
	PaddleBottomGap float64 `json:"paddleBottomGap"`

	BallRadius    float64 `json:"ballRadius"`
	BallBaseSpeed float64 `json:"ballBaseSpeed"`
	BallSpeedStep float64 `json:"ballSpeedStep"`

	Lives       int `json:"lives"`
	BrickPoints int `json:"brickPoints"`
}

// DefaultConfig returns the standard 480x640 board.
func DefaultConfig() Config {
	return Config{
		Width:           480,
		Height:          640,
		BrickRows:       5,
		BrickCols:       8,
		BrickMarginX:    24,
		BrickMarginY:    84,
		BrickGapX:       8,
		BrickGapY:       8,
		BrickHeight:     18,
		PaddleWidth:     88,
		PaddleHeight:    14,
		PaddleSpeed:     360,
		PaddleBottomGap: 30,
		BallRadius:      8,
		BallBaseSpeed:   260,
		BallSpeedStep:   20,
		Lives:           3,
		BrickPoints:     100,
	}
}

// withDefaults fills every unset field from DefaultConfig.
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
	orI(&c.BrickRows, d.BrickRows)
	orI(&c.BrickCols, d.BrickCols)
	orF(&c.BrickMarginX, d.BrickMarginX)
	orF(&c.BrickMarginY, d.BrickMarginY)
	orF(&c.BrickGapX, d.BrickGapX)
	orF(&c.BrickGapY, d.BrickGapY)
	orF(&c.BrickHeight, d.BrickHeight)
	orF(&c.PaddleWidth, d.PaddleWidth)
	orF(&c.PaddleHeight, d.PaddleHeight)
	orF(&c.PaddleSpeed, d.PaddleSpeed)
	orF(&c.PaddleBottomGap, d.PaddleBottomGap)
	orF(&c.BallRadius, d.BallRadius)
	orF(&c.BallBaseSpeed, d.BallBaseSpeed)
	orF(&c.BallSpeedStep, d.BallSpeedStep)
	orI(&c.Lives, d.Lives)
	orI(&c.BrickPoints, d.BrickPoints)
	return c
}

// Paddle is the player-controlled bar at the bottom of the board.
type Paddle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Speed  float64 `json:"speed"`
}

// Ball is the single ball in play. (X, Y) is its center.
type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"radius"`
}

// Brick is one cell of the brick grid. Dead bricks stay in the slice.
type Brick struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	Alive  bool    `json:"alive"`
}

// State is one immutable snapshot of a brick-breaker game.
type State struct {
	Config    Config  `json:"config"`
	Paddle    Paddle  `json:"paddle"`
	Ball      Ball    `json:"ball"`
	Bricks    []Brick `json:"bricks"`
	Score     int     `json:"score"`
	Lives     int     `json:"lives"`
	Level     int     `json:"level"`
	BallSpeed float64 `json:"ballSpeed"`
	Paused    bool    `json:"paused"`
	GameOver  bool    `json:"gameOver"`
}

// Input is the per-frame intent.
type Input struct {
	DtMs  float64 // Elapsed time, clamped to [0, 40]
	Left  bool
	Right bool
}

// Width returns the board width.
func (s State) Width() float64 { return s.Config.Width }

// Height returns the board height.
func (s State) Height() float64 { return s.Config.Height }

// AliveBricks counts the bricks still standing.
func (s State) AliveBricks() int {
	n := 0
	for _, b := range s.Bricks {
		if b.Alive {
			n++
		}
	}
	return n
}

// BuildBricks lays out a full rows x cols grid that tiles the board width
// minus the margins. IDs start at 1 in row-major order.
func BuildBricks(cfg Config) []Brick {
	cfg = cfg.withDefaults()
	cols := float64(cfg.BrickCols)
	bw := (cfg.Width - cfg.BrickMarginX*2 - cfg.BrickGapX*(cols-1)) / cols

	bricks := make([]Brick, 0, cfg.BrickRows*cfg.BrickCols)
	id := 1
	for row := range cfg.BrickRows {
		for col := range cfg.BrickCols {
			bricks = append(bricks, Brick{
				ID:     id,
				X:      cfg.BrickMarginX + float64(col)*(bw+cfg.BrickGapX),
				Y:      cfg.BrickMarginY + float64(row)*(cfg.BrickHeight+cfg.BrickGapY),
				Width:  bw,
				Height: cfg.BrickHeight,
				Row:    row,
				Col:    col,
				Alive:  true,
			})
			id++
		}
	}
	return bricks
}

// NewBall spawns a ball just above the paddle center, heading up.
// dir picks the horizontal direction (-1 or 1).
func NewBall(p Paddle, radius, speed, dir float64) Ball {
	vx := speed * launchSpread * dir
	return Ball{
		X:      p.X + p.Width/2,
		Y:      p.Y - radius - 2,
		VX:     vx,
		VY:     -math.Sqrt(speed*speed - vx*vx),
		Radius: radius,
	}
}

func levelSpeed(cfg Config, level int) float64 {
	return cfg.BallBaseSpeed + float64(level-1)*cfg.BallSpeedStep
}

// parityDir returns -1 for even n and 1 for odd n.
func parityDir(n int) float64 {
	if n%2 == 0 {
		return -1
	}
	return 1
}

// NewState creates a level 1 game with the paddle centered.
func NewState(cfg Config) State {
	cfg = cfg.withDefaults()

	paddle := Paddle{
		X:      cfg.Width/2 - cfg.PaddleWidth/2,
		Y:      cfg.Height - cfg.PaddleBottomGap - cfg.PaddleHeight,
		Width:  cfg.PaddleWidth,
		Height: cfg.PaddleHeight,
		Speed:  cfg.PaddleSpeed,
	}
	speed := levelSpeed(cfg, 1)

	return State{
		Config:    cfg,
		Paddle:    paddle,
		Ball:      NewBall(paddle, cfg.BallRadius, speed, 1),
		Bricks:    BuildBricks(cfg),
		Lives:     cfg.Lives,
		Level:     1,
		BallSpeed: speed,
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

// CircleIntersectsRect reports whether a circle touches an axis-aligned rectangle.
func CircleIntersectsRect(cx, cy, r, x, y, w, h float64) bool {
	nx := math.Max(x, math.Min(cx, x+w))
	ny := math.Max(y, math.Min(cy, y+h))
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy <= r*r
}

// Step advances the game by in.DtMs. Paused or finished games are returned unchanged.
func Step(s State, in Input) State {
	if s.Paused || s.GameOver {
		return s
	}

	cfg := s.Config
	dt := math.Min(maxStepMs, math.Max(0, in.DtMs)) / 1000

	paddle := s.Paddle
	move := 0.0
	if in.Right {
		move++
	}
	if in.Left {
		move--
	}
	paddle.X = math.Min(math.Max(paddle.X+move*paddle.Speed*dt, 0), cfg.Width-paddle.Width)

	ball := s.Ball
	prevX, prevY := ball.X, ball.Y
	ball.X += ball.VX * dt
	ball.Y += ball.VY * dt

	if ball.X-ball.Radius < 0 {
		ball.X = ball.Radius
		ball.VX = math.Abs(ball.VX)
	} else if ball.X+ball.Radius > cfg.Width {
		ball.X = cfg.Width - ball.Radius
		ball.VX = -math.Abs(ball.VX)
	}
	if ball.Y-ball.Radius < 0 {
		ball.Y = ball.Radius
		ball.VY = math.Abs(ball.VY)
	}

	bricks := slices.Clone(s.Bricks)
	score := s.Score
	for i := range bricks {
		b := &bricks[i]
		if !b.Alive || !CircleIntersectsRect(ball.X, ball.Y, ball.Radius, b.X, b.Y, b.Width, b.Height) {
			continue
		}

		b.Alive = false
		score += cfg.BrickPoints

		switch {
		case prevX+ball.Radius <= b.X:
			ball.VX = -math.Abs(ball.VX)
		case prevX-ball.Radius >= b.X+b.Width:
			ball.VX = math.Abs(ball.VX)
		case prevY+ball.Radius <= b.Y:
			ball.VY = -math.Abs(ball.VY)
		case prevY-ball.Radius >= b.Y+b.Height:
			ball.VY = math.Abs(ball.VY)
		default:
			ball.VY = -ball.VY
		}
		break
	}

	if ball.VY > 0 && CircleIntersectsRect(ball.X, ball.Y, ball.Radius, paddle.X, paddle.Y, paddle.Width, paddle.Height) {
		ball.Y = paddle.Y - ball.Radius
		speed := math.Hypot(ball.VX, ball.VY)
		half := paddle.Width / 2
		offset := math.Max(-1, math.Min(1, (ball.X-(paddle.X+half))/half))
		angle := offset * maxBounceAngle
		ball.VX = speed * math.Sin(angle)
		ball.VY = -math.Abs(speed * math.Cos(angle))
		if math.Abs(ball.VX) < minBounceSpeedX {
			if offset >= 0 {
				ball.VX = minBounceSpeedX
			} else {
				ball.VX = -minBounceSpeedX
			}
		}
	}

	next := s
	next.Paddle = paddle
	next.Bricks = bricks
	next.Score = score

	if ball.Y-ball.Radius > cfg.Height {
		next.Lives = max(0, s.Lives-1)
		if next.Lives == 0 {
			next.GameOver = true
		} else {
			ball = NewBall(paddle, cfg.BallRadius, s.BallSpeed, parityDir(next.Lives))
		}
	}
	next.Ball = ball

	if !next.GameOver && next.AliveBricks() == 0 {
		next.Level = s.Level + 1
		next.BallSpeed = levelSpeed(cfg, next.Level)
		next.Bricks = BuildBricks(cfg)
		next.Ball = NewBall(paddle, cfg.BallRadius, next.BallSpeed, parityDir(next.Level))
	}

	return next
}
