package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/vinom-maze/maze"
)

var ErrInvalidAxis = errors.New("axis must be x or y")

// Axis is the coordinate a movement request acts on.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// ParseAxis accepts "x" or "y", case-insensitive.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
	}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Tracker holds an actor's cell coordinates and moves it through open walls.
// It is not safe for concurrent use; callers serialize moves.
type Tracker struct {
	board Board
	pos   maze.Position
}

// NewTracker places an actor on the board's start cell.
func NewTracker(b Board) *Tracker {
	return &Tracker{
		board: b,
		pos:   b.Start(),
	}
}

// Position returns the current coordinates.
func (t *Tracker) Position() maze.Position {
	return t.pos
}

// CurrentCell returns the cell the actor stands on.
func (t *Tracker) CurrentCell() maze.Cell {
	c, err := t.board.Cell(t.pos)
	if err != nil {
		// The boundary is always walled, so this means the board is broken.
		panic(err)
	}
	return c
}

// AtExit reports whether the actor stands on the exit.
func (t *Tracker) AtExit() bool {
	return t.CurrentCell().IsExit
}

// RequestMove steps one cell along axis in the direction of delta's sign.
// Only the sign of delta is used. It reports whether the actor moved; a zero
// delta or a wall in the way leaves the position unchanged.
func (t *Tracker) RequestMove(axis Axis, delta int) bool {
	dir := directionOf(axis, delta)
	if dir == maze.None {
		return false
	}
	if t.CurrentCell().Walls.Has(dir) {
		return false
	}

	next := t.pos.Step(dir)
	if !t.board.InBound(next) {
		panic(fmt.Errorf("%w: open %s wall at (%d,%d)", maze.ErrOutOfBounds, dir, t.pos.X, t.pos.Y))
	}
	t.pos = next
	return true
}

// Move is RequestMove expressed as a direction.
func (t *Tracker) Move(dir maze.Direction) bool {
	axis, delta := axisOf(dir)
	return t.RequestMove(axis, delta)
}

func directionOf(axis Axis, delta int) maze.Direction {
	switch {
	case delta == 0:
		return maze.None
	case axis == AxisX && delta < 0:
		return maze.Left
	case axis == AxisX:
		return maze.Right
	case axis == AxisY && delta < 0:
		return maze.Top
	case axis == AxisY:
		return maze.Bottom
	default:
		return maze.None
	}
}

func axisOf(dir maze.Direction) (Axis, int) {
	switch dir {
	case maze.Left:
		return AxisX, -1
	case maze.Right:
		return AxisX, 1
	case maze.Top:
		return AxisY, -1
	case maze.Bottom:
		return AxisY, 1
	default:
		return AxisX, 0
	}
}
