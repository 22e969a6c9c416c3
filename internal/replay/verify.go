package replay

import (
	"fmt"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

// Divergence describes the first frame where a re-simulation disagreed
// with the recording. It wraps ErrDiverged.
type Divergence struct {
	Index int    // Position in the frame list
	Tick  int64  // Recorded tick
	Field string // "status" or "fingerprint"
	Want  string
	Got   string
}

func (d *Divergence) Error() string {
	return fmt.Sprintf("replay: tick %d: %s mismatch: recorded %s, replayed %s", d.Tick, d.Field, d.Want, d.Got)
}

func (d *Divergence) Unwrap() error {
	return ErrDiverged
}

// Summary describes a recording.
type Summary struct {
	GameID     string
	Seed       int64
	TickRate   int
	Frames     int
	DurationMs float64
	FinalScore int
	FinalLevel int
	GameOver   bool
}

// Summarize reports what a recording contains.
func Summarize(frames []Frame) (Summary, error) {
	if len(frames) == 0 {
		return Summary{}, ErrEmpty
	}

	first, last := frames[0], frames[len(frames)-1]
	s := Summary{
		GameID:     first.GameID,
		Seed:       first.Seed,
		TickRate:   int(first.TickRate),
		Frames:     len(frames),
		FinalScore: int(last.Score),
		FinalLevel: int(last.Level),
		GameOver:   last.GameOver,
	}
	for _, f := range frames {
		s.DurationMs += core.FrameDelta(f.Input(), s.TickRate)
	}
	return s, nil
}

// Verify creates a fresh game from the registry with the recorded seed and
// tick rate, feeds it the recorded inputs and compares each step with the
// recording. The game's config must match the one used while recording.
// It returns nil on a full match and a *Divergence otherwise.
func Verify(frames []Frame) error {
	if len(frames) == 0 {
		return ErrEmpty
	}

	first := frames[0]
	game, err := registry.Create(first.GameID)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	game.Reset(core.RuntimeConfig{
		ScreenW:  core.DefaultConfig().ScreenW,
		ScreenH:  core.DefaultConfig().ScreenH,
		TickRate: int(first.TickRate),
		Seed:     first.Seed,
	})
	observable, _ := game.(registry.Observable)

	for i, f := range frames {
		got := game.Step(f.Input()).State
		if want := f.Status(); got != want {
			return &Divergence{
				Index: i,
				Tick:  f.Tick,
				Field: "status",
				Want:  fmt.Sprintf("%+v", want),
				Got:   fmt.Sprintf("%+v", got),
			}
		}

		if observable == nil || f.Fingerprint == 0 {
			continue
		}
		if fp := int64(observable.Fingerprint()); fp != f.Fingerprint { //#nosec G115 -- raw bits
			return &Divergence{
				Index: i,
				Tick:  f.Tick,
				Field: "fingerprint",
				Want:  fmt.Sprintf("%#x", uint64(f.Fingerprint)), //#nosec G115 -- raw bits
				Got:   fmt.Sprintf("%#x", uint64(fp)),            //#nosec G115 -- raw bits
			}
		}
	}
	return nil
}
