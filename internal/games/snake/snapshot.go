package snake

import "math"

// Snapshot captures the game state for determinism checks.
type Snapshot struct {
	Tick      uint64
	Score     int
	GameOver  bool
	Paused    bool
	Direction Direction
	Pending   Direction
	SinceMs   float64
	Held      uint8
	FoodX     int
	FoodY     int
	Body      []Cell
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      g.tick,
		Score:     g.state.Score,
		GameOver:  g.state.GameOver,
		Paused:    g.state.Paused,
		Direction: g.state.Direction,
		Pending:   g.state.PendingDirection,
		SinceMs:   g.sinceMs,
		Held:      g.held,
		FoodX:     -1,
		FoodY:     -1,
		Body:      append([]Cell(nil), g.state.Snake...),
	}
	if f := g.state.Food; f != nil {
		snap.FoodX, snap.FoodY = f.X, f.Y
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Direction) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Pending)   //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.SinceMs)
	h = h*31 + uint64(snap.Held)
	h = h*31 + uint64(snap.FoodX+1) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FoodY+1) //#nosec G115 -- hash computation
	if snap.GameOver {
		h = h*31 + 1
	}
	if snap.Paused {
		h = h*31 + 2
	}
	for _, c := range snap.Body {
		h = h*31 + uint64(c.X) //#nosec G115 -- hash computation
		h = h*31 + uint64(c.Y) //#nosec G115 -- hash computation
	}
	return h
}
