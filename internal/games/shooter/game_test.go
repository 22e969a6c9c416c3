package shooter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 400)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		inputs[i].Set(core.ActionFire)
		if i%40 < 20 {
			inputs[i].Set(core.ActionLeft)
		} else {
			inputs[i].Set(core.ActionRight)
		}
	}

	run := func() Snapshot {
		g := New()
		g.Reset(testRuntime(42))
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
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
}

func TestGameFiresOnFireAction(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	in := core.NewInputFrame()
	in.Set(core.ActionFire)
	g.Step(in)

	if len(g.Sim().Shots) != 1 || g.Sim().Shots[0].Owner != OwnerPlayer {
		t.Errorf("shots = %+v, expected one player shot", g.Sim().Shots)
	}
}

func TestGameRestartAfterGameOver(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	g.state.GameOver = true
	g.state.Score = 300

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	state := g.Step(in).State
	if state.GameOver || state.Score != 0 || state.Level != 1 {
		t.Errorf("State after restart = %+v", state)
	}

	// Restart does nothing mid-game.
	g.state.Score = 50
	g.Step(in)
	if g.State().Score != 50 {
		t.Errorf("Score = %d, restart should be ignored while playing", g.State().Score)
	}
}

func TestGameRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Wave: 1") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	out := screen.String()
	if !strings.ContainsRune(out, EnemyChar) || !strings.ContainsRune(out, PlayerChar) {
		t.Error("expected enemies and player on screen")
	}

	g.state.Paused = true
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}
}

func TestExportIsJSON(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	in := core.NewInputFrame()
	in.Set(core.ActionFire)
	g.Step(in)

	data, err := json.Marshal(g.Export())
	if err != nil {
		t.Fatalf("Marshal(Export()) failed: %v", err)
	}
	if !strings.Contains(string(data), `"owner":"player"`) {
		t.Errorf("expected owner names in export, got %s", data)
	}
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create("shooter")
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Shooter" {
		t.Errorf("Title() = %q", g.Title())
	}
	if _, ok := g.(registry.Observable); !ok {
		t.Error("shooter should be Observable")
	}
}
