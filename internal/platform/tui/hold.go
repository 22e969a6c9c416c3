package tui

import (
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// Terminals only report key presses, never releases. A held key shows up as
// one press, a pause of the repeat delay, then a stream of repeats.
const (
	DefaultFirstHold  = 550 * time.Millisecond // covers the initial repeat delay
	DefaultRepeatHold = 120 * time.Millisecond // covers the gap between repeats
	DefaultDebounce   = 600 * time.Millisecond // quiet time before a toggle fires again
)

type holdEntry struct {
	first time.Time // first press of this hold
	last  time.Time // most recent press or repeat
}

// HoldTracker rebuilds continuous hold state from press-only key events.
// Movement and fire count as held until their window runs out; pause and
// restart fire once per press and ignore key repeat.
type HoldTracker struct {
	FirstHold  time.Duration
	RepeatHold time.Duration
	Debounce   time.Duration

	held       map[core.Action]holdEntry
	lastToggle map[core.Action]time.Time
	pending    map[core.Action]bool
}

// NewHoldTracker creates a tracker with the default windows.
func NewHoldTracker() *HoldTracker {
	return &HoldTracker{
		FirstHold:  DefaultFirstHold,
		RepeatHold: DefaultRepeatHold,
		Debounce:   DefaultDebounce,
		held:       make(map[core.Action]holdEntry),
		lastToggle: make(map[core.Action]time.Time),
		pending:    make(map[core.Action]bool),
	}
}

// IsHoldAction reports whether a stays active while its key is held.
func IsHoldAction(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionFire:
		return true
	}
	return false
}

// IsToggleAction reports whether a fires once per press.
func IsToggleAction(a core.Action) bool {
	return a == core.ActionPause || a == core.ActionRestart
}

var directions = [...]core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

func isDirection(a core.Action) bool {
	return a == core.ActionUp || a == core.ActionDown || a == core.ActionLeft || a == core.ActionRight
}

// Press records a key press (or terminal repeat) for a at time now.
// Other actions are ignored.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	switch {
	case IsHoldAction(a):
		// A terminal repeats only the last key pressed, so a new direction
		// ends every other direction hold.
		if isDirection(a) {
			for _, d := range directions {
				if d != a {
					delete(h.held, d)
				}
			}
		}
		e, ok := h.held[a]
		if !ok || !h.active(e, now) {
			e = holdEntry{first: now}
		}
		e.last = now
		h.held[a] = e

	case IsToggleAction(a):
		// Repeats keep pushing the quiet period forward, so a held key
		// toggles only once.
		last, seen := h.lastToggle[a]
		if !seen || now.Sub(last) >= h.Debounce {
			h.pending[a] = true
		}
		h.lastToggle[a] = now
	}
}

func (h *HoldTracker) active(e holdEntry, now time.Time) bool {
	window := h.RepeatHold
	if e.last.Equal(e.first) {
		window = h.FirstHold
	}
	return now.Sub(e.last) <= window
}

// Held reports whether a is currently considered held.
func (h *HoldTracker) Held(a core.Action, now time.Time) bool {
	e, ok := h.held[a]
	return ok && h.active(e, now)
}

// Frame builds the input for one step: every action still held at now plus
// toggles pressed since the previous frame. Expired holds are dropped.
func (h *HoldTracker) Frame(now time.Time, deltaMs float64) core.InputFrame {
	in := core.NewInputFrame()
	in.DeltaMs = deltaMs

	for a, e := range h.held {
		if h.active(e, now) {
			in.Set(a)
		} else {
			delete(h.held, a)
		}
	}
	for a := range h.pending {
		in.Set(a)
		delete(h.pending, a)
	}
	return in
}

// Reset releases everything, e.g. after a restart or when leaving a game.
func (h *HoldTracker) Reset() {
	clear(h.held)
	clear(h.pending)
	clear(h.lastToggle)
}
