/*
Package maze provides tools for creating perfect square mazes.

A Grid is a size×size matrix of Cells, each with four wall flags. The
Generator carves a spanning tree into a fresh Grid with a randomized
depth-first backtracker, picks a start corner and marks the diagonally
opposite corner as the exit, then seals the result into a read-only Maze.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Grid-related errors.
var (
	ErrInvalidSize      = errors.New("maze size must be positive")
	ErrOutOfBounds      = errors.New("position is out of the maze")
	ErrInvalidDirection = errors.New("invalid wall direction")
	ErrNotAdjacent      = errors.New("cells are not adjacent in the given direction")
)

// Grid is a square matrix of cells under construction. Only the generator
// mutates it; consumers receive a sealed Maze instead.
type Grid struct {
	size  int      // Number of cells along each side.
	cells [][]Cell // cells[y][x]
}

// NewGrid returns a size×size grid where every cell has all four walls and
// no cell is the exit.
func NewGrid(size int) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	cells := make([][]Cell, size)
	for y := range cells {
		cells[y] = make([]Cell, size)
		for x := range cells[y] {
			cells[y][x] = Cell{
				Walls: allWalls,
				ID:    y*size + x,
			}
		}
	}

	return &Grid{size: size, cells: cells}, nil
}

// Size returns the number of cells along each side.
func (g *Grid) Size() int {
	return g.size
}

// NumberOfCells returns size².
func (g *Grid) NumberOfCells() int {
	return g.size * g.size
}

// InBound reports whether p lies inside the grid.
func (g *Grid) InBound(p Position) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

// Cell returns a copy of the cell at p.
func (g *Grid) Cell(p Position) (Cell, error) {
	if !g.InBound(p) {
		return Cell{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.X, p.Y)
	}
	return g.cells[p.Y][p.X], nil
}

// Walls returns the wall flags of the cell at p.
func (g *Grid) Walls(p Position) (Walls, error) {
	c, err := g.Cell(p)
	if err != nil {
		return Walls{}, err
	}
	return c.Walls, nil
}

// RemoveWallBetween opens the wall of from facing dir and the opposite wall
// of to. to must be the single-step neighbour of from in dir.
func (g *Grid) RemoveWallBetween(from, to Position, dir Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidDirection, dir)
	}
	if !g.InBound(from) || !g.InBound(to) {
		return fmt.Errorf("%w: (%d,%d)->(%d,%d)", ErrOutOfBounds, from.X, from.Y, to.X, to.Y)
	}
	if from.Step(dir) != to {
		return fmt.Errorf("%w: (%d,%d) %s (%d,%d)", ErrNotAdjacent, from.X, from.Y, dir, to.X, to.Y)
	}

	g.cells[from.Y][from.X].Walls.clear(dir)
	g.cells[to.Y][to.X].Walls.clear(dir.Opposite())
	return nil
}

// MarkExit flags the cell at p as the exit.
func (g *Grid) MarkExit(p Position) error {
	if !g.InBound(p) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.X, p.Y)
	}
	g.cells[p.Y][p.X].IsExit = true
	return nil
}

// rows returns a deep copy of the cell matrix.
func (g *Grid) rows() [][]Cell {
	out := make([][]Cell, g.size)
	for y := range g.cells {
		out[y] = make([]Cell, g.size)
		copy(out[y], g.cells[y])
	}
	return out
}

// String provides a textual representation of the grid. The exit is drawn
// as "E".
func (g *Grid) String() string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+")
	for x := 0; x < g.size; x++ {
		if g.cells[0][x].Walls.Top {
			b.WriteString("---+")
		} else {
			b.WriteString("   +")
		}
	}
	b.WriteString("\n")

	for y := 0; y < g.size; y++ {
		// Cell rows
		if g.cells[y][0].Walls.Left {
			b.WriteString("|")
		} else {
			b.WriteString(" ")
		}
		for x := 0; x < g.size; x++ {
			cell := g.cells[y][x]
			if cell.IsExit {
				b.WriteString(" E ")
			} else {
				b.WriteString("   ")
			}
			if cell.Walls.Right {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")

		// Wall rows
		b.WriteString("+")
		for x := 0; x < g.size; x++ {
			if g.cells[y][x].Walls.Bottom {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
