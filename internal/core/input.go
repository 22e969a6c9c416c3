package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - turn up (snake)
	ActionDown           // S, Down arrow - turn down (snake)
	ActionLeft           // A, Left arrow - move left / turn left
	ActionRight          // D, Right arrow - move right / turn right
	ActionFire           // Space - shoot (shooter)
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// Held actions (movement, fire) stay set for every frame the key is held;
// toggle actions (pause, restart) are set only on the frame they were pressed.
type InputFrame struct {
	// Actions maps action types to whether they were active this frame.
	Actions map[Action]bool

	// DeltaMs is the measured wall time since the previous frame.
	// Zero means the game should assume one nominal tick.
	DeltaMs float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions and the delta for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.DeltaMs = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.DeltaMs = f.DeltaMs
	return clone
}

// Mask packs the active actions into a bit set (bit n = Action n).
// Used by replay recording.
func (f InputFrame) Mask() uint32 {
	var m uint32
	for a, on := range f.Actions {
		if on && a > ActionNone && a < 32 {
			m |= 1 << uint(a)
		}
	}
	return m
}

// FrameFromMask rebuilds an input frame from a bit set produced by Mask.
func FrameFromMask(mask uint32, deltaMs float64) InputFrame {
	f := NewInputFrame()
	for a := ActionNone + 1; a < 32; a++ {
		if mask&(1<<uint(a)) != 0 {
			f.Set(a)
		}
	}
	f.DeltaMs = deltaMs
	return f
}
