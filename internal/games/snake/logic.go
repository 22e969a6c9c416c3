package snake

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// DefaultGridSize is the board edge length in cells.
const DefaultGridSize = 20

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

var deltas = [...]Cell{
	DirRight: {1, 0},
	DirDown:  {0, 1},
	DirLeft:  {-1, 0},
	DirUp:    {0, -1},
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// MarshalText encodes the direction as its name in JSON.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDirection accepts "up", "down", "left" or "right" in any case.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return 0, false
}

// Cell is a grid coordinate. (0, 0) is the top-left corner.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// State is one immutable snapshot of a snake game.
// Snake[0] is the head.
type State struct {
	GridSize         int       `json:"gridSize"`
	Snake            []Cell    `json:"snake"`
	Direction        Direction `json:"direction"`
	PendingDirection Direction `json:"pendingDirection"`
	Food             *Cell     `json:"food"`
	Score            int       `json:"score"`
	GameOver         bool      `json:"gameOver"`
	Paused           bool      `json:"paused"`
}

// IntSource picks a uniform index in [0, n). *rand.Rand satisfies it.
type IntSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Config sets up a new game. Every field is optional.
type Config struct {
	GridSize         int
	InitialSnake     []Cell    // Defaults to one cell in the middle of the grid
	InitialDirection Direction // Defaults to DirRight
	InitialFood      *Cell     // Defaults to a random free cell
	Random           IntSource // Used to place the first food; nil means the global generator
}

// NewState creates a fresh game.
func NewState(cfg Config) State {
	size := cfg.GridSize
	if size <= 0 {
		size = DefaultGridSize
	}

	body := slices.Clone(cfg.InitialSnake)
	if len(body) == 0 {
		body = []Cell{{size / 2, size / 2}}
	}

	dir := cfg.InitialDirection
	if !dir.Valid() {
		dir = DirRight
	}

	food := cfg.InitialFood
	if food != nil {
		f := *food
		food = &f
	} else {
		food = PlaceFood(size, body, cfg.Random)
	}

	return State{
		GridSize:         size,
		Snake:            body,
		Direction:        dir,
		PendingDirection: dir,
		Food:             food,
	}
}

// PlaceFood picks a random cell not covered by the snake, scanning rows top
// to bottom. It returns nil when the board is full.
func PlaceFood(gridSize int, body []Cell, rnd IntSource) *Cell {
	if rnd == nil {
		rnd = globalSource{}
	}

	occupied := make(map[Cell]struct{}, len(body))
	for _, c := range body {
		occupied[c] = struct{}{}
	}

	var free []Cell
	for y := range gridSize {
		for x := range gridSize {
			if _, ok := occupied[Cell{x, y}]; !ok {
				free = append(free, Cell{x, y})
			}
		}
	}
	if len(free) == 0 {
		return nil
	}

	c := free[rnd.IntN(len(free))]
	return &c
}

// SetDirection queues a turn for the next move. Unknown directions, repeats
// of the queued turn and reversals of the current heading are ignored.
func SetDirection(s State, dir Direction) State {
	if !dir.Valid() || dir == s.PendingDirection {
		return s
	}
	if dir == s.Direction || dir == s.Direction.Opposite() {
		return s
	}
	s.PendingDirection = dir
	return s
}

// TogglePause flips the pause flag. Finished games stay as they are.
func TogglePause(s State) State {
	if s.GameOver {
		return s
	}
	s.Paused = !s.Paused
	return s
}

func (s State) outOfBounds(c Cell) bool {
	return c.X < 0 || c.Y < 0 || c.X >= s.GridSize || c.Y >= s.GridSize
}

// Step moves the snake one cell. rnd places new food after eating; nil uses
// the global generator. Paused or finished games are returned unchanged.
func Step(s State, rnd IntSource) State {
	if s.GameOver || s.Paused {
		return s
	}

	dir := s.PendingDirection
	d := deltas[dir]
	head := s.Snake[0]
	next := Cell{head.X + d.X, head.Y + d.Y}

	if s.outOfBounds(next) {
		s.Direction = dir
		s.GameOver = true
		return s
	}

	grow := s.Food != nil && *s.Food == next
	body := s.Snake
	if !grow {
		// The tail moves out of the way this step.
		body = body[:len(body)-1]
	}
	if slices.Contains(body, next) {
		s.Direction = dir
		s.GameOver = true
		return s
	}

	snake := make([]Cell, 0, len(s.Snake)+1)
	snake = append(snake, next)
	snake = append(snake, body...)

	out := s
	out.Snake = snake
	out.Direction = dir
	out.PendingDirection = dir

	if grow {
		out.Score++
		out.Food = PlaceFood(s.GridSize, snake, rnd)
		if out.Food == nil {
			out.GameOver = true
		}
	}

	return out
}
