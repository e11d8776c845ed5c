package game

import "github.com/beka-birhanu/vinom-maze/maze"

// Layout holds the pixel constants a renderer draws cells with.
type Layout struct {
	CellSize    int // Inner cell width and height in pixels.
	BorderWidth int // Width of each wall line in pixels.
}

// Pitch is the distance in pixels between the origins of adjacent cells.
// Key handlers pass it as the magnitude of a movement request.
func (l Layout) Pitch() int {
	return l.CellSize + 2*l.BorderWidth
}

// PixelPosition converts cell coordinates to the pixel origin of the cell's
// inner square.
func (l Layout) PixelPosition(p maze.Position) (int, int) {
	return p.X*l.Pitch() + l.BorderWidth, p.Y*l.Pitch() + l.BorderWidth
}
