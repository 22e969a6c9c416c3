package replay

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/shooter"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/snake"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

// playAndRecord runs a game for n frames with a fixed input pattern.
func playAndRecord(t *testing.T, dir, gameID string, n int) *Recorder {
	t.Helper()

	game, err := registry.Create(gameID)
	if err != nil {
		t.Fatal(err)
	}
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 99}
	game.Reset(rt)
	obs := game.(registry.Observable)

	rec := NewRecorder(dir, gameID, rt.Seed, rt.TickRate)
	for i := range n {
		in := core.NewInputFrame()
		in.DeltaMs = 16 + float64(i%3)
		switch {
		case i%50 < 20:
			in.Set(core.ActionLeft)
		case i%50 < 40:
			in.Set(core.ActionRight)
		}
		if i%5 == 0 {
			in.Set(core.ActionFire)
		}
		if i%37 == 0 {
			in.Set(core.ActionUp)
		}
		st := game.Step(in).State
		rec.Record(uint64(i+1), in, st, obs.Fingerprint())
	}
	return rec
}

func TestRecordLoadVerify(t *testing.T) {
	dir := t.TempDir()
	rec := playAndRecord(t, dir, "shooter", 300)

	if err := rec.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if _, err := os.Stat(rec.Path()); err != nil {
		t.Fatalf("replay file missing: %v", err)
	}
	if _, err := os.Stat(rec.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}

	frames, err := Load(rec.Path())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(frames) != 300 {
		t.Fatalf("Load() returned %d frames, expected 300", len(frames))
	}
	if frames[0].GameID != "shooter" || frames[0].Seed != 99 || frames[0].TickRate != 60 {
		t.Errorf("first frame = %+v", frames[0])
	}

	if err := Verify(frames); err != nil {
		t.Errorf("Verify() failed: %v", err)
	}

	sum, err := Summarize(frames)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Frames != 300 || sum.GameID != "shooter" || sum.DurationMs < 300*16 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	rec := playAndRecord(t, t.TempDir(), "snake", 120)
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	frames, err := Load(rec.Path())
	if err != nil {
		t.Fatal(err)
	}

	// A different turn early on changes everything after it.
	frames[10].Actions = int64(core.FrameFromMask(0, 0).Mask())
	frames[10].Fingerprint ^= 1

	err = Verify(frames)
	if !errors.Is(err, ErrDiverged) {
		t.Fatalf("Verify() = %v, expected ErrDiverged", err)
	}
	var d *Divergence
	if !errors.As(err, &d) {
		t.Fatalf("Verify() error is %T, expected *Divergence", err)
	}
	if d.Index != 10 {
		t.Errorf("divergence at index %d, expected 10", d.Index)
	}
}

func TestEmptyRecording(t *testing.T) {
	dir := t.TempDir()
	rec := NewRecorder(dir, "snake", 1, 60)
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() on an empty recorder failed: %v", err)
	}
	if _, err := os.Stat(rec.Path()); !os.IsNotExist(err) {
		t.Error("empty recorder should not write a file")
	}

	if err := Verify(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("Verify(nil) = %v, expected ErrEmpty", err)
	}
	if err := Write(filepath.Join(dir, "x.parquet"), nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("Write(nil) = %v, expected ErrEmpty", err)
	}
}

func TestRecordAfterCloseIgnored(t *testing.T) {
	rec := NewRecorder(t.TempDir(), "snake", 1, 60)
	rec.Close()
	rec.Record(1, core.NewInputFrame(), core.GameState{}, 0)
	if rec.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", rec.Len())
	}
}

func TestVerifyUnknownGame(t *testing.T) {
	err := Verify([]Frame{{GameID: "pinball", TickRate: 60}})
	if err == nil || errors.Is(err, ErrDiverged) {
		t.Errorf("Verify() = %v, expected a lookup error", err)
	}
}
