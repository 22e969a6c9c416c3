// Package replay records game sessions to parquet files and re-simulates
// them to check that a game still produces the same results from the same
// seed and inputs.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// schemaName is stored in the file metadata and checked by Load.
const schemaName = "arcade_replay_v1"

var (
	// ErrEmpty is returned when a replay holds no frames.
	ErrEmpty = errors.New("replay: no frames")
	// ErrDiverged is wrapped by the error Verify returns on a mismatch.
	ErrDiverged = errors.New("replay: simulation diverged")
)

// Frame is one recorded step: the input the game received and the
// state it reported afterwards.
type Frame struct {
	GameID      string  `parquet:"game_id,dict"`
	Seed        int64   `parquet:"seed"`
	TickRate    int32   `parquet:"tick_rate"`
	Tick        int64   `parquet:"tick"`
	DeltaMs     float64 `parquet:"delta_ms"`
	Actions     int64   `parquet:"actions"` // core.InputFrame.Mask()
	Score       int32   `parquet:"score"`
	Lives       int32   `parquet:"lives"`
	Level       int32   `parquet:"level"`
	Paused      bool    `parquet:"paused"`
	GameOver    bool    `parquet:"game_over"`
	Fingerprint int64   `parquet:"fingerprint"` // Bits of the game's uint64 fingerprint; 0 if unavailable
}

// Input rebuilds the input frame the game received.
func (f Frame) Input() core.InputFrame {
	return core.FrameFromMask(uint32(f.Actions), f.DeltaMs) //#nosec G115 -- mask fits in 32 bits
}

// Status returns the recorded game state.
func (f Frame) Status() core.GameState {
	return core.GameState{
		Score:    int(f.Score),
		Lives:    int(f.Lives),
		Level:    int(f.Level),
		GameOver: f.GameOver,
		Paused:   f.Paused,
	}
}

// Recorder buffers frames in memory and writes them out on Close.
// It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	path     string
	gameID   string
	seed     int64
	tickRate int
	frames   []Frame
	closed   bool
}

// NewRecorder creates a recorder that will write to a new file in dir,
// named after the game and the current time.
func NewRecorder(dir, gameID string, seed int64, tickRate int) *Recorder {
	name := fmt.Sprintf("%s-%s.parquet", gameID, time.Now().Format("20060102-150405.000"))
	return &Recorder{
		path:     filepath.Join(dir, name),
		gameID:   gameID,
		seed:     seed,
		tickRate: tickRate,
	}
}

// Path returns the file the recorder writes on Close.
func (r *Recorder) Path() string {
	return r.path
}

// Len returns the number of buffered frames.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Record appends one step. fingerprint is the game's state hash after the step.
func (r *Recorder) Record(tick uint64, in core.InputFrame, state core.GameState, fingerprint uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	// Counters and scores are far below the int32/int64 limits; the
	// fingerprint is kept as raw bits.
	r.frames = append(r.frames, Frame{
		GameID:      r.gameID,
		Seed:        r.seed,
		TickRate:    int32(r.tickRate),
		Tick:        int64(tick),
		DeltaMs:     in.DeltaMs,
		Actions:     int64(in.Mask()),
		Score:       int32(state.Score),
		Lives:       int32(state.Lives),
		Level:       int32(state.Level),
		Paused:      state.Paused,
		GameOver:    state.GameOver,
		Fingerprint: int64(fingerprint),
	})
}

// Close writes the buffered frames. A recorder with no frames writes nothing.
// Further calls are no-ops.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	if len(r.frames) == 0 {
		return nil
	}
	return Write(r.path, r.frames)
}

// Write stores frames at path, writing to a temp file first and renaming
// it into place.
func Write(path string, frames []Frame) error {
	if len(frames) == 0 {
		return ErrEmpty
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("replay: cannot create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, frames,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schemaName),
		parquet.KeyValueMetadata("game", frames[0].GameID),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replay: cannot write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replay: cannot rename parquet: %w", err)
	}
	return nil
}

// Load reads every frame from a replay file.
func Load(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("replay: cannot stat %s: %w", path, err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("replay: cannot read %s: %w", path, err)
	}
	if schema, ok := pf.Lookup("schema"); ok && schema != schemaName {
		return nil, fmt.Errorf("replay: %s has schema %q, expected %q", path, schema, schemaName)
	}

	reader := parquet.NewGenericReader[Frame](pf)
	defer reader.Close()

	frames := make([]Frame, 0, int(reader.NumRows()))
	buf := make([]Frame, 256)
	for {
		n, err := reader.Read(buf)
		frames = append(frames, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("replay: cannot read rows: %w", err)
		}
		if n == 0 {
			break
		}
	}

	if len(frames) == 0 {
		return nil, ErrEmpty
	}
	return frames, nil
}
