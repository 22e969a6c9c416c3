package web

import "github.com/vovakirdan/pocket-arcade/internal/core"

// Message types exchanged over the socket.
const (
	TypeInput   = "input"
	TypePause   = "pause"
	TypeRestart = "restart"
	TypeState   = "state"
	TypeError   = "error"
)

// ClientMessage is what browsers send. Input messages carry the full hold
// state; pause and restart are one-shot.
type ClientMessage struct {
	Type  string `json:"type"`
	Left  bool   `json:"left,omitempty"`
	Right bool   `json:"right,omitempty"`
	Fire  bool   `json:"fire,omitempty"`
	Up    bool   `json:"up,omitempty"`
	Down  bool   `json:"down,omitempty"`
}

// StateMessage is sent after every step.
type StateMessage struct {
	Type    string         `json:"type"`
	Session string         `json:"session"`
	Game    string         `json:"game"`
	Tick    uint64         `json:"tick"`
	Status  core.GameState `json:"status"`
	State   any            `json:"state,omitempty"`
}

// ErrorMessage reports a problem with the client's last message.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// heldInput is the latest hold state reported by the client.
type heldInput struct {
	left, right, fire, up, down bool
}

func (h heldInput) apply(in *core.InputFrame) {
	if h.left {
		in.Set(core.ActionLeft)
	}
	if h.right {
		in.Set(core.ActionRight)
	}
	if h.fire {
		in.Set(core.ActionFire)
	}
	if h.up {
		in.Set(core.ActionUp)
	}
	if h.down {
		in.Set(core.ActionDown)
	}
}
