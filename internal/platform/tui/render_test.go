package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

func TestPainterPlainProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	p := NewPainter(lipgloss.NewRenderer(io.Discard))

	s := core.NewScreen(4, 2)
	s.SetColored(0, 0, 'a', core.ColorRed)
	s.SetColored(1, 0, 'b', core.ColorRed)
	s.SetColored(2, 0, 'c', core.ColorGray)
	s.DrawText(0, 1, "xy")

	if got, want := p.Paint(s), "abc \nxy  "; got != want {
		t.Errorf("Paint() = %q, expected %q", got, want)
	}
}

func TestPainterCoversPalette(t *testing.T) {
	p := NewPainter(nil)
	for _, c := range core.Colors() {
		_ = p.style(c)
	}
	// Out-of-range colors fall back to the default style.
	_ = p.style(core.Color(200))
	if len(p.styles) != len(core.Colors()) {
		t.Errorf("styles = %d, expected %d", len(p.styles), len(core.Colors()))
	}
}
