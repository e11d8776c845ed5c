package main

import (
	"github.com/beka-birhanu/vinom-maze/maze"
)

const (
	actorRune = '@'
	exitRune  = 'E'
	postRune  = '+'
	hWallRune = '-'
	vWallRune = '|'

	cellWidth = 3
)

// renderBoard draws the maze as text with the actor at pos. Each cell is
// cellWidth columns wide and one row high, framed by wall rows and columns.
func renderBoard(m *maze.Maze, pos maze.Position) [][]rune {
	size := m.Size()
	width := size*(cellWidth+1) + 1
	lines := make([][]rune, 2*size+1)
	for y := range lines {
		lines[y] = make([]rune, width)
		for x := range lines[y] {
			lines[y][x] = ' '
		}
	}

	for y := 0; y <= size; y++ {
		for x := 0; x <= size; x++ {
			lines[2*y][x*(cellWidth+1)] = postRune
		}
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := maze.Position{X: x, Y: y}
			cell, err := m.Cell(p)
			if err != nil {
				continue
			}
			left := x * (cellWidth + 1)

			if cell.Walls.Top {
				fill(lines[2*y][left+1:left+1+cellWidth], hWallRune)
			}
			if cell.Walls.Bottom {
				fill(lines[2*y+2][left+1:left+1+cellWidth], hWallRune)
			}
			if cell.Walls.Left {
				lines[2*y+1][left] = vWallRune
			}
			if cell.Walls.Right {
				lines[2*y+1][left+cellWidth+1] = vWallRune
			}

			center := left + 1 + cellWidth/2
			switch {
			case p == pos:
				lines[2*y+1][center] = actorRune
			case cell.IsExit:
				lines[2*y+1][center] = exitRune
			}
		}
	}
	return lines
}

func fill(rs []rune, r rune) {
	for idx := range rs {
		rs[idx] = r
	}
}
