package shooter

import "math"

// Snapshot flattens the game state into primitives for hashing and replay checks.
type Snapshot struct {
	Tick     uint64
	Score    int
	Lives    int
	Level    int
	Paused   bool
	GameOver bool
	PlayerX  float64
	Cooldown float64
	EnemyDir float64
	Timer    float64

	// x, y and alive (1/0) per enemy, in storage order
	EnemyData []float64
	// x, y and owner per shot
	ShotData []float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	enemies := make([]float64, 0, len(s.Enemies)*3)
	for _, e := range s.Enemies {
		alive := 0.0
		if e.Alive {
			alive = 1
		}
		enemies = append(enemies, e.X, e.Y, alive)
	}
	shots := make([]float64, 0, len(s.Shots)*3)
	for _, sh := range s.Shots {
		shots = append(shots, sh.X, sh.Y, float64(sh.Owner))
	}

	return Snapshot{
		Tick:      g.tick,
		Score:     s.Score,
		Lives:     s.Lives,
		Level:     s.Level,
		Paused:    s.Paused,
		GameOver:  s.GameOver,
		PlayerX:   s.Player.X,
		Cooldown:  s.Player.ShotCooldownMs,
		EnemyDir:  s.EnemyDir,
		Timer:     s.EnemyShootTimerMs,
		EnemyData: enemies,
		ShotData:  shots,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level) //#nosec G115 -- hash computation
	if snap.Paused {
		h = h*31 + 1
	}
	if snap.GameOver {
		h = h*31 + 2
	}

	for _, f := range []float64{snap.PlayerX, snap.Cooldown, snap.EnemyDir, snap.Timer} {
		h = h*31 + math.Float64bits(f)
	}
	h = h*31 + uint64(len(snap.EnemyData))
	for _, f := range snap.EnemyData {
		h = h*31 + math.Float64bits(f)
	}
	h = h*31 + uint64(len(snap.ShotData))
	for _, f := range snap.ShotData {
		h = h*31 + math.Float64bits(f)
	}
	return h
}
