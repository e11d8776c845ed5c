package maze

// Maze is a generated, read-only maze. It never changes after Generate
// returns, so any number of goroutines may read it.
type Maze struct {
	grid  *Grid
	start Position
	exit  Position
}

// Size returns the number of cells along each side.
func (m *Maze) Size() int {
	return m.grid.Size()
}

// NumberOfCells returns size².
func (m *Maze) NumberOfCells() int {
	return m.grid.NumberOfCells()
}

// Start returns the corner the generator started from.
func (m *Maze) Start() Position {
	return m.start
}

// Exit returns the exit position.
func (m *Maze) Exit() Position {
	return m.exit
}

// InBound reports whether p lies inside the maze.
func (m *Maze) InBound(p Position) bool {
	return m.grid.InBound(p)
}

// Cell returns the cell at p.
func (m *Maze) Cell(p Position) (Cell, error) {
	return m.grid.Cell(p)
}

// Walls returns the wall flags of the cell at p.
func (m *Maze) Walls(p Position) (Walls, error) {
	return m.grid.Walls(p)
}

// Rows returns a copy of the cells indexed [y][x].
func (m *Maze) Rows() [][]Cell {
	return m.grid.rows()
}

func (m *Maze) String() string {
	return m.grid.String()
}
