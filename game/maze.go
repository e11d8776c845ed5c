package game

import "github.com/beka-birhanu/vinom-maze/maze"

var _ Board = &maze.Maze{}

// Board defines the read-only maze surface the tracker moves on.
type Board interface {
	Size() int
	Start() maze.Position
	Exit() maze.Position
	InBound(maze.Position) bool
	Cell(maze.Position) (maze.Cell, error)
}
