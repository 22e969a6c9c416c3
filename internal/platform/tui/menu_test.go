package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

func menuWith(items ...MenuItem) MenuModel {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	m.items = items
	return m
}

func press(m MenuModel, msg tea.KeyMsg) MenuModel {
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuCursorWraps(t *testing.T) {
	m := menuWith(MenuItem{GameID: "a", Title: "A"}, MenuItem{GameID: "b", Title: "B"}, MenuItem{GameID: "c", Title: "C"})

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 2 {
		t.Errorf("cursor after up = %d, expected 2", m.cursor)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 0 {
		t.Errorf("cursor after down = %d, expected 0", m.cursor)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if sel := m.Selected(); sel == nil || sel.GameID != "b" {
		t.Errorf("Selected() = %+v, expected b", sel)
	}
}

func TestMenuViewShowsBestAndBlurb(t *testing.T) {
	m := menuWith(MenuItem{GameID: "snake", Title: "Snake", Blurb: blurbs["snake"], HighScore: 12})
	view := m.View()
	if !strings.Contains(view, "(best 12)") {
		t.Error("View() missing high score")
	}
	if !strings.Contains(view, blurbs["snake"]) {
		t.Error("View() missing blurb")
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := press(menuWith(), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
	m = press(menuWith(), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText() = %q", got)
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText() = %q", got)
	}
}
