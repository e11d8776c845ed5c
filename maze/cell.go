package maze

// Walls holds the four wall flags of a cell. A true flag means the wall is
// present and the side is impassable.
type Walls struct {
	Top    bool `json:"top"`    // Top indicates whether there is a wall on the top side of the cell.
	Bottom bool `json:"bottom"` // Bottom indicates whether there is a wall on the bottom side of the cell.
	Left   bool `json:"left"`   // Left indicates whether there is a wall on the left side of the cell.
	Right  bool `json:"right"`  // Right indicates whether there is a wall on the right side of the cell.
}

// allWalls is the state every cell starts in.
var allWalls = Walls{Top: true, Bottom: true, Left: true, Right: true}

// Has reports whether the wall facing d is present. None is always closed.
func (w Walls) Has(d Direction) bool {
	switch d {
	case Top:
		return w.Top
	case Bottom:
		return w.Bottom
	case Left:
		return w.Left
	case Right:
		return w.Right
	default:
		return true
	}
}

// clear opens the wall facing d.
func (w *Walls) clear(d Direction) {
	switch d {
	case Top:
		w.Top = false
	case Bottom:
		w.Bottom = false
	case Left:
		w.Left = false
	case Right:
		w.Right = false
	}
}

// Cell represents a single square of a maze grid.
type Cell struct {
	Walls  Walls `json:"walls"`  // Walls is the wall state of the cell.
	ID     int   `json:"id"`     // ID is the packed index y*size+x, unique within the grid.
	IsExit bool  `json:"isExit"` // IsExit marks the single exit cell.
}
