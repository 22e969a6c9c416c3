package core

import "testing"

func TestFrameDelta(t *testing.T) {
	tests := []struct {
		name     string
		deltaMs  float64
		tickRate int
		want     float64
	}{
		{"measured delta wins", 12.5, 60, 12.5},
		{"nominal tick", 0, 50, 20},
		{"zero tick rate uses 60", 0, 0, 1000.0 / 60},
		{"negative delta uses nominal", -5, 100, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInputFrame()
			in.DeltaMs = tt.deltaMs
			if got := FrameDelta(in, tt.tickRate); got != tt.want {
				t.Errorf("FrameDelta() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestClampFrameMs(t *testing.T) {
	if got := ClampFrameMs(-3); got != 0 {
		t.Errorf("ClampFrameMs(-3) = %v, expected 0", got)
	}
	if got := ClampFrameMs(16); got != 16 {
		t.Errorf("ClampFrameMs(16) = %v, expected 16", got)
	}
	if got := ClampFrameMs(500); got != MaxFrameMs {
		t.Errorf("ClampFrameMs(500) = %v, expected %v", got, MaxFrameMs)
	}
}

func TestNewRandIsDeterministic(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := range 10 {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}
