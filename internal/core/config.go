package core

import "math/rand/v2"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driving Step (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  `json:"score"`
	Lives    int  `json:"lives"`
	Level    int  `json:"level"`
	GameOver bool `json:"gameOver"`
	Paused   bool `json:"paused"`
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// MaxFrameMs caps a measured frame delta so a stalled client does not
// teleport entities.
const MaxFrameMs = 34.0

// ClampFrameMs bounds a measured delta to [0, MaxFrameMs].
func ClampFrameMs(ms float64) float64 {
	return Clamp(ms, 0, MaxFrameMs)
}

// FrameDelta returns the elapsed milliseconds a frame represents.
// A measured delta wins; otherwise one nominal tick at tickRate is assumed.
func FrameDelta(in InputFrame, tickRate int) float64 {
	if in.DeltaMs > 0 {
		return in.DeltaMs
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	return 1000 / float64(tickRate)
}

// NewRand returns the generator a game draws from for a given seed.
// Equal seeds give equal sequences.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15)) //#nosec G115 -- seed bits
}
