package maze

// Direction names one side of a cell, or the step from a cell to the
// neighbour on that side.
type Direction int

// Directions a wall can face. None is the generator's initial state and
// has no inverse.
const (
	None Direction = iota
	Top
	Bottom
	Left
	Right
)

// deltas maps each direction to its single-step coordinate offset.
var deltas = map[Direction]Position{
	Top:    {X: 0, Y: -1},
	Bottom: {X: 0, Y: 1},
	Left:   {X: -1, Y: 0},
	Right:  {X: 1, Y: 0},
}

// Opposite returns the direction facing back: Top<->Bottom, Left<->Right.
// None maps to None.
func (d Direction) Opposite() Direction {
	switch d {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

// Delta returns the coordinate offset of a single step in direction d.
func (d Direction) Delta() Position {
	return deltas[d]
}

// Valid reports whether d names an actual side of a cell.
func (d Direction) Valid() bool {
	_, ok := deltas[d]
	return ok
}

func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Position is a cell coordinate pair; X grows to the right and Y grows
// downwards.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the neighbouring position in direction d. The result may lie
// outside any grid.
func (p Position) Step(d Direction) Position {
	delta := d.Delta()
	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}
