package core

import "math"

// CellAspect is the height/width ratio of a terminal cell.
const CellAspect = 2.0

// Viewport maps a continuous board (in game units) onto a block of terminal
// cells. The scale keeps the board's aspect ratio, counting a cell as
// CellAspect times taller than it is wide.
type Viewport struct {
	Area        Rect    // Cells the board occupies
	UnitsPerCol float64 // Board units per cell horizontally
	UnitsPerRow float64 // Board units per cell vertically
}

// FitViewport centers a boardW x boardH board inside area, as large as fits.
func FitViewport(boardW, boardH float64, area Rect) Viewport {
	if boardW <= 0 || boardH <= 0 || area.Empty() {
		return Viewport{Area: Rect{X: area.X, Y: area.Y}, UnitsPerCol: 1, UnitsPerRow: CellAspect}
	}

	perCol := math.Max(boardW/float64(area.W), boardH/(float64(area.H)*CellAspect))
	perRow := perCol * CellAspect

	w := Clamp(int(math.Ceil(boardW/perCol)), 1, area.W)
	h := Clamp(int(math.Ceil(boardH/perRow)), 1, area.H)

	return Viewport{
		Area:        NewRect(area.X+(area.W-w)/2, area.Y+(area.H-h)/2, w, h),
		UnitsPerCol: perCol,
		UnitsPerRow: perRow,
	}
}

// FitGrid maps a square grid of n x n cells, using two columns per grid cell
// when the area is wide enough so the grid looks square.
func FitGrid(n int, area Rect) (origin Rect, colsPerCell int) {
	if n <= 0 {
		return Rect{X: area.X, Y: area.Y}, 1
	}
	colsPerCell = 2
	if n*2 > area.W {
		colsPerCell = 1
	}
	w, h := n*colsPerCell, n
	return NewRect(area.X+(area.W-w)/2, area.Y+(area.H-h)/2, w, h), colsPerCell
}

// ToCell converts a board point to the screen cell containing it.
func (v Viewport) ToCell(x, y float64) (int, int) {
	cx := v.Area.X + int(math.Floor(x/v.UnitsPerCol))
	cy := v.Area.Y + int(math.Floor(y/v.UnitsPerRow))
	return Clamp(cx, v.Area.X, v.Area.Right()-1), Clamp(cy, v.Area.Y, v.Area.Bottom()-1)
}

// RectCells converts a board rectangle to the cells it covers.
// Anything with positive size covers at least one cell.
func (v Viewport) RectCells(x, y, w, h float64) Rect {
	x0 := int(math.Floor(x / v.UnitsPerCol))
	y0 := int(math.Floor(y / v.UnitsPerRow))
	x1 := int(math.Ceil((x + w) / v.UnitsPerCol))
	y1 := int(math.Ceil((y + h) / v.UnitsPerRow))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	r := NewRect(v.Area.X+x0, v.Area.Y+y0, x1-x0, y1-y0)
	return r.Intersect(v.Area)
}
