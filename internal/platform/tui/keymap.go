package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// gameBindings lists every key a game understands. Arrows, WASD and HJKL
// all steer; snake reads Up/Down, the paddle games only Left/Right.
var gameBindings = []struct {
	action core.Action
	keys   []string
}{
	{core.ActionUp, []string{"up", "w", "k"}},
	{core.ActionDown, []string{"down", "s", "j"}},
	{core.ActionLeft, []string{"left", "a", "h"}},
	{core.ActionRight, []string{"right", "d", "l"}},
	{core.ActionFire, []string{" ", "space"}},
	{core.ActionConfirm, []string{"enter"}},
	{core.ActionBack, []string{"esc", "b"}},
	{core.ActionPause, []string{"p"}},
	{core.ActionRestart, []string{"r"}},
	{core.ActionQuit, []string{"q", "ctrl+c"}},
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys map[string]core.Action
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	keys := make(map[string]core.Action)
	for _, b := range gameBindings {
		for _, k := range b.keys {
			keys[k] = b.action
		}
	}
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message to a game action. Unbound keys map to
// ActionNone. isQuit reports a request to leave the program.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action, ok := km.keys[msg.String()]
	if !ok {
		return core.ActionNone, false
	}
	return action, action == core.ActionQuit
}
