package snake

import (
	"reflect"
	"testing"
)

// fixedIndex always picks the same index.
type fixedIndex int

func (f fixedIndex) IntN(n int) int { return min(int(f), n-1) }

func TestStepMovesOneCell(t *testing.T) {
	s := NewState(Config{
		GridSize:         6,
		InitialSnake:     []Cell{{2, 2}, {1, 2}},
		InitialDirection: DirRight,
		InitialFood:      &Cell{5, 5},
	})

	next := Step(s, fixedIndex(0))

	if want := []Cell{{3, 2}, {2, 2}}; !reflect.DeepEqual(next.Snake, want) {
		t.Errorf("snake = %v, expected %v", next.Snake, want)
	}
	if next.Score != 0 || next.GameOver {
		t.Errorf("score = %d gameOver = %v", next.Score, next.GameOver)
	}
	if want := []Cell{{2, 2}, {1, 2}}; !reflect.DeepEqual(s.Snake, want) {
		t.Error("Step mutated the input snake")
	}
}

func TestStepGrowsOnFood(t *testing.T) {
	s := NewState(Config{
		GridSize:     6,
		InitialSnake: []Cell{{2, 2}, {1, 2}},
		InitialFood:  &Cell{3, 2},
	})

	next := Step(s, fixedIndex(0))

	if len(next.Snake) != 3 {
		t.Errorf("length = %d, expected 3", len(next.Snake))
	}
	if next.Score != 1 {
		t.Errorf("score = %d, expected 1", next.Score)
	}
	if next.Food == nil || *next.Food == (Cell{3, 2}) {
		t.Errorf("food = %v, expected a new cell", next.Food)
	}
	if *next.Food != (Cell{0, 0}) {
		t.Errorf("food = %v, expected first free cell (0,0)", *next.Food)
	}
	if next.GameOver {
		t.Error("unexpected game over")
	}
}

func TestWallCollisionEndsGame(t *testing.T) {
	s := NewState(Config{
		GridSize:     5,
		InitialSnake: []Cell{{4, 2}},
		InitialFood:  &Cell{0, 0},
	})

	next := Step(s, nil)
	if !next.GameOver {
		t.Error("expected game over at the wall")
	}
	if !reflect.DeepEqual(next.Snake, s.Snake) {
		t.Errorf("snake moved into the wall: %v", next.Snake)
	}
}

func TestSelfCollisionEndsGame(t *testing.T) {
	s := NewState(Config{
		GridSize:         6,
		InitialSnake:     []Cell{{2, 2}, {2, 3}, {1, 3}, {1, 2}},
		InitialDirection: DirDown,
		InitialFood:      &Cell{5, 5},
	})

	if next := Step(s, nil); !next.GameOver {
		t.Error("expected game over on self collision")
	}
}

func TestChasingTailIsAllowed(t *testing.T) {
	// Head moves into the cell the tail is leaving.
	s := NewState(Config{
		GridSize:         6,
		InitialSnake:     []Cell{{2, 2}, {2, 3}, {1, 3}, {1, 2}},
		InitialDirection: DirUp,
		InitialFood:      &Cell{5, 5},
	})
	s = SetDirection(s, DirLeft)

	next := Step(s, nil)
	if next.GameOver {
		t.Fatal("moving into the vacated tail cell should be legal")
	}
	if next.Snake[0] != (Cell{1, 2}) {
		t.Errorf("head = %v, expected (1,2)", next.Snake[0])
	}
}

func TestSetDirection(t *testing.T) {
	s := NewState(Config{InitialDirection: DirRight, InitialFood: &Cell{0, 0}})

	tests := []struct {
		name string
		dir  Direction
		want Direction
	}{
		{"opposite ignored", DirLeft, DirRight},
		{"same ignored", DirRight, DirRight},
		{"unknown ignored", Direction(9), DirRight},
		{"turn queued", DirUp, DirUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SetDirection(s, tt.dir).PendingDirection; got != tt.want {
				t.Errorf("PendingDirection = %v, expected %v", got, tt.want)
			}
		})
	}

	// Reversal is judged against the committed heading, not the queued turn.
	up := SetDirection(s, DirUp)
	if got := SetDirection(up, DirDown).PendingDirection; got != DirDown {
		t.Errorf("PendingDirection = %v, expected down", got)
	}
}

func TestPlaceFood(t *testing.T) {
	food := PlaceFood(2, []Cell{{0, 0}, {1, 0}, {0, 1}}, fixedIndex(0))
	if food == nil || *food != (Cell{1, 1}) {
		t.Errorf("PlaceFood() = %v, expected (1,1)", food)
	}

	if full := PlaceFood(2, []Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, fixedIndex(0)); full != nil {
		t.Errorf("PlaceFood() on a full board = %v, expected nil", full)
	}

	// Row-major scan: index 2 on an empty 3x3 board is (2,0).
	if got := PlaceFood(3, nil, fixedIndex(2)); *got != (Cell{2, 0}) {
		t.Errorf("PlaceFood() = %v, expected (2,0)", *got)
	}
}

func TestFillingBoardEndsGame(t *testing.T) {
	s := NewState(Config{
		GridSize:     2,
		InitialSnake: []Cell{{0, 0}, {0, 1}, {1, 1}},
		InitialFood:  &Cell{1, 0},
	})

	next := Step(s, fixedIndex(0))
	if !next.GameOver || next.Food != nil {
		t.Errorf("gameOver = %v food = %v, expected full board to end the game", next.GameOver, next.Food)
	}
	if next.Score != 1 {
		t.Errorf("score = %d, expected 1", next.Score)
	}
}

func TestNewStateDefaults(t *testing.T) {
	s := NewState(Config{Random: fixedIndex(0)})
	if s.GridSize != DefaultGridSize {
		t.Errorf("GridSize = %d", s.GridSize)
	}
	if want := []Cell{{10, 10}}; !reflect.DeepEqual(s.Snake, want) {
		t.Errorf("snake = %v, expected %v", s.Snake, want)
	}
	if s.Direction != DirRight || s.PendingDirection != DirRight {
		t.Errorf("direction = %v/%v", s.Direction, s.PendingDirection)
	}
	if s.Food == nil || *s.Food != (Cell{0, 0}) {
		t.Errorf("food = %v", s.Food)
	}
}

func TestPauseAndGameOverAreInert(t *testing.T) {
	s := NewState(Config{GridSize: 6, InitialFood: &Cell{5, 5}})

	paused := TogglePause(s)
	if got := Step(paused, nil); !reflect.DeepEqual(got, paused) {
		t.Error("Step changed a paused state")
	}

	over := s
	over.GameOver = true
	if got := Step(over, nil); !reflect.DeepEqual(got, over) {
		t.Error("Step changed a finished state")
	}
	if TogglePause(over).Paused {
		t.Error("TogglePause should not pause a finished game")
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"UP": DirUp, "down": DirDown, "Left": DirLeft, "right": DirRight} {
		if got, ok := ParseDirection(in); !ok || got != want {
			t.Errorf("ParseDirection(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParseDirection("north"); ok {
		t.Error("ParseDirection(north) should fail")
	}
}
