package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"non-overlapping vertical", NewRect(0, 0, 10, 10), NewRect(0, 15, 10, 10), false},
		{"adjacent horizontal (no overlap)", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained", NewRect(0, 0, 10, 10), NewRect(2, 2, 3, 3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tt.expected)
			}
			if got := tt.b.Intersects(tt.a); got != tt.expected {
				t.Errorf("Intersects() reversed = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	got := NewRect(0, 0, 10, 10).Intersect(NewRect(5, 6, 10, 10))
	if got != NewRect(5, 6, 5, 4) {
		t.Errorf("Intersect() = %+v, expected {5 6 5 4}", got)
	}

	if !NewRect(0, 0, 2, 2).Intersect(NewRect(5, 5, 1, 1)).Empty() {
		t.Error("Intersect() of disjoint rects should be empty")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)
	if !r.Contains(2, 3) || !r.Contains(5, 4) {
		t.Error("Contains() should include the top-left and bottom-right cells")
	}
	if r.Contains(6, 3) || r.Contains(2, 5) {
		t.Error("Contains() should exclude Right() and Bottom()")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp(15, 0, 10) = %d, expected 10", got)
	}
	if got := Clamp(-5, 0, 10); got != 0 {
		t.Errorf("Clamp(-5, 0, 10) = %d, expected 0", got)
	}
	if got := Clamp(2.5, 0.0, 1.0); got != 1.0 {
		t.Errorf("Clamp(2.5, 0, 1) = %v, expected 1", got)
	}
}

func TestAbs(t *testing.T) {
	if Abs(-3) != 3 || Abs(3) != 3 {
		t.Error("Abs() of int failed")
	}
	if Abs(-1.5) != 1.5 {
		t.Error("Abs() of float failed")
	}
}
