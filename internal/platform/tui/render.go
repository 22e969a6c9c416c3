package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// Painter turns a Screen into styled terminal output. Styles are bound to
// one lipgloss renderer, so an SSH session gets the color profile of the
// client's terminal rather than the server's.
type Painter struct {
	styles []lipgloss.Style
}

// NewPainter builds a painter for r. A nil renderer uses the process
// default, which is right for local play.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	colors := core.Colors()
	p := &Painter{styles: make([]lipgloss.Style, len(colors))}
	for _, c := range colors {
		style := r.NewStyle()
		if code := c.ANSI(); code != "" {
			style = style.Foreground(lipgloss.Color(code))
		}
		p.styles[c] = style
	}
	return p
}

var defaultPainter = NewPainter(nil)

func (p *Painter) style(c core.Color) lipgloss.Style {
	if int(c) < len(p.styles) {
		return p.styles[c]
	}
	return p.styles[core.ColorDefault]
}

// Paint renders every row of s. Runs of cells sharing a color are styled
// together to keep the escape sequences short.
func (p *Painter) Paint(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(p.style(color).Render(run.String()))
		}
	}
	return sb.String()
}
