package breakout

import (
	"strings"
	"testing"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%7 < 3 {
			inputs[i].Set(core.ActionRight)
		} else {
			inputs[i].Set(core.ActionLeft)
		}
	}

	run := func() Snapshot {
		g := New()
		g.Reset(testRuntime())
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1, snap2 := run(), run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Tick == 0 {
		t.Error("no ticks recorded")
	}
}

func TestGameReset(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	for range 30 {
		g.Step(in)
	}
	moved := g.Sim().Paddle.X

	g.Reset(testRuntime())
	if g.Sim().Paddle.X == moved {
		t.Error("Reset should recenter the paddle")
	}
	state := g.State()
	if state.Score != 0 || state.Level != 1 || state.GameOver || state.Paused {
		t.Errorf("State after reset = %+v", state)
	}
	if state.Lives != 3 {
		t.Errorf("Lives = %d, expected 3", state.Lives)
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	if !g.Step(pause).State.Paused {
		t.Fatal("pause action did not pause")
	}

	before := g.Sim().Ball
	g.Step(core.NewInputFrame())
	if g.Sim().Ball != before {
		t.Error("ball moved while paused")
	}

	if g.Step(pause).State.Paused {
		t.Error("second pause action should resume")
	}
}

func TestGameRestartAfterGameOver(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	g.state.GameOver = true
	g.state.Lives = 0
	g.state.Score = 700

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	state := g.Step(restart).State
	if state.GameOver || state.Score != 0 || state.Lives != 3 {
		t.Errorf("State after restart = %+v", state)
	}
}

func TestGameUsesMeasuredDelta(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	start := g.Sim().Paddle.X

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	in.DeltaMs = 10
	g.Step(in)

	want := start + g.Sim().Paddle.Speed*0.010
	if got := g.Sim().Paddle.X; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("paddle x = %v, expected %v", got, want)
	}
}

func TestGameRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	out := screen.String()
	if !strings.ContainsRune(out, BallChar) {
		t.Error("ball not rendered")
	}
	if !strings.ContainsRune(out, PaddleChar) {
		t.Error("paddle not rendered")
	}

	small := core.NewScreen(18, 5)
	g.Render(small)
	if !strings.Contains(small.String(), "small") {
		t.Errorf("expected size warning, got %q", small.String())
	}
}

func TestSnapshotTracksState(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	first := g.Fingerprint()
	g.Step(core.NewInputFrame())
	if g.Fingerprint() == first {
		t.Error("fingerprint should change as the ball moves")
	}

	snap := g.Snapshot()
	if len(snap.BrickData) != len(g.Sim().Bricks) {
		t.Errorf("BrickData has %d entries, expected %d", len(snap.BrickData), len(g.Sim().Bricks))
	}
	if _, ok := g.Export().(State); !ok {
		t.Errorf("Export() = %T, expected State", g.Export())
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("breakout") {
		t.Fatal("breakout not registered")
	}
	g, err := registry.Create("breakout")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.(registry.Observable); !ok {
		t.Error("breakout should be Observable")
	}
}
