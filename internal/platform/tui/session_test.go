package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{} })
}

func sessionKey(m SessionModel, msg tea.KeyMsg) (SessionModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(SessionModel), cmd
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "ann", nil)

	m, cmd := sessionKey(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v, expected scores", m.screen)
	}
	if cmd != nil {
		t.Error("opening the scoreboard should not end the program")
	}

	m, cmd = sessionKey(m, keyMsg("esc"))
	if m.screen != screenMenu || m.quitting {
		t.Fatalf("screen = %v, quitting = %v; expected menu", m.screen, m.quitting)
	}
	if cmd != nil {
		t.Error("leaving the scoreboard should not end the program")
	}
}

func TestSessionPlaysAndReturns(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, "ann", nil)
	for i, item := range m.menu.items {
		if item.GameID == "stub" {
			m.menu.cursor = i
		}
	}

	m, cmd := sessionKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected game", m.screen)
	}
	if cmd == nil {
		t.Error("starting a game should schedule the first tick")
	}
	if m.game.player != "ann" {
		t.Errorf("player = %q, expected ann", m.game.player)
	}

	m, _ = sessionKey(m, keyMsg("esc"))
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu after esc", m.screen)
	}

	m, cmd = sessionKey(m, keyMsg("q"))
	if !m.quitting || cmd == nil {
		t.Error("q at the menu should end the session")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
