package breakout

import "math"

// Snapshot flattens the game state into primitives for hashing and replay checks.
type Snapshot struct {
	Tick      uint64
	Score     int
	Lives     int
	Level     int
	Paused    bool
	GameOver  bool
	PaddleX   float64
	BallX     float64
	BallY     float64
	BallVX    float64
	BallVY    float64
	BallSpeed float64

	// One entry per brick in storage order: 1 alive, 0 dead
	BrickData []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	bricks := make([]int, len(s.Bricks))
	for i, b := range s.Bricks {
		if b.Alive {
			bricks[i] = 1
		}
	}

	return Snapshot{
		Tick:      g.tick,
		Score:     s.Score,
		Lives:     s.Lives,
		Level:     s.Level,
		Paused:    s.Paused,
		GameOver:  s.GameOver,
		PaddleX:   s.Paddle.X,
		BallX:     s.Ball.X,
		BallY:     s.Ball.Y,
		BallVX:    s.Ball.VX,
		BallVY:    s.Ball.VY,
		BallSpeed: s.BallSpeed,
		BrickData: bricks,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level) //#nosec G115 -- hash computation
	h = h*31 + boolBit(snap.Paused)
	h = h*31 + boolBit(snap.GameOver)

	for _, f := range []float64{snap.PaddleX, snap.BallX, snap.BallY, snap.BallVX, snap.BallVY, snap.BallSpeed} {
		h = h*31 + math.Float64bits(f)
	}
	for _, v := range snap.BrickData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
