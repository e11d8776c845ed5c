package maze

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/zyedidia/generic/mapset"
)

var ErrRandomOutOfRange = errors.New("random source returned a value out of range")

// Rand is a uniform integer source over [0, n-1].
type Rand interface {
	IntN(n int) int
}

// globalRand draws from math/rand/v2's top-level generator, which is safe for
// concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

// candidate is a neighbour the generator may carve into, together with the
// side of the current cell that faces it.
type candidate struct {
	pos Position
	dir Direction
}

// candidateOrder is the order neighbours are listed before a uniform pick.
var candidateOrder = [...]Direction{Left, Right, Top, Bottom}

// Generator builds perfect mazes with a randomized iterative depth-first
// backtracker.
type Generator struct {
	rand   Rand
	logger logger.Logger
	mu     sync.Mutex // Serializes use of rand, which need not be goroutine safe.
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithRand swaps the random source, e.g. for deterministic tests.
func WithRand(r Rand) GeneratorOption {
	return func(g *Generator) {
		g.rand = r
	}
}

// WithSeed uses a PCG source seeded with seed, so equal seeds give equal mazes.
func WithSeed(seed uint64) GeneratorOption {
	return func(g *Generator) {
		g.rand = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithLogger attaches a logger for generation diagnostics.
func WithLogger(l logger.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = l
	}
}

// NewGenerator creates a Generator. Without options it draws from the
// process-wide random generator and logs nothing.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		rand:   globalRand{},
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a size×size perfect maze. The start is a random corner and
// the exit is the corner diagonally opposite it.
func (g *Generator) Generate(size int) (*Maze, error) {
	grid, err := NewGrid(size)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	cs := corners(size)
	i, err := g.intN(len(cs))
	if err != nil {
		return nil, err
	}
	start := cs[i]
	exit := oppositeCorner(start, size)
	if err := grid.MarkExit(exit); err != nil {
		return nil, err
	}

	backtracks, err := g.carve(grid, start)
	if err != nil {
		return nil, err
	}

	g.logger.Debug(fmt.Sprintf("generated %dx%d maze: start=(%d,%d) exit=(%d,%d) backtracks=%d",
		size, size, start.X, start.Y, exit.X, exit.Y, backtracks))

	return &Maze{grid: grid, start: start, exit: exit}, nil
}

// carve walks the grid from start, removing a wall every time it steps into
// an unvisited cell and backtracking along its stack at dead ends, until every
// cell has been visited. It returns the number of backtrack steps taken.
func (g *Generator) carve(grid *Grid, start Position) (int, error) {
	current := start
	visited := mapset.New[int]()
	visited.Put(grid.cells[start.Y][start.X].ID)
	stack := []Position{start}
	backtracks := 0

	for visited.Size() < grid.NumberOfCells() {
		nears := unvisited(grid, neighbors(grid, current), visited)
		if len(nears) == 0 {
			stack = stack[:len(stack)-1]
			current = stack[len(stack)-1]
			backtracks++
			continue
		}

		i, err := g.intN(len(nears))
		if err != nil {
			return backtracks, err
		}
		next := nears[i]
		if err := grid.RemoveWallBetween(current, next.pos, next.dir); err != nil {
			return backtracks, err
		}

		stack = append(stack, next.pos)
		visited.Put(grid.cells[next.pos.Y][next.pos.X].ID)
		current = next.pos
	}

	return backtracks, nil
}

// intN draws from the random source and rejects values outside [0, n-1].
func (g *Generator) intN(n int) (int, error) {
	i := g.rand.IntN(n)
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %d not in [0,%d]", ErrRandomOutOfRange, i, n-1)
	}
	return i, nil
}

// neighbors lists the in-bound orthogonal neighbours of p: two at corners,
// three on edges and four inside.
func neighbors(grid *Grid, p Position) []candidate {
	result := make([]candidate, 0, len(candidateOrder))
	for _, dir := range candidateOrder {
		next := p.Step(dir)
		if grid.InBound(next) {
			result = append(result, candidate{pos: next, dir: dir})
		}
	}
	return result
}

// unvisited filters out candidates whose cell ID is already in visited.
func unvisited(grid *Grid, cands []candidate, visited mapset.Set[int]) []candidate {
	result := cands[:0]
	for _, c := range cands {
		if !visited.Has(grid.cells[c.pos.Y][c.pos.X].ID) {
			result = append(result, c)
		}
	}
	return result
}

// corners returns the four corner positions of a size×size grid. For size 1
// they all coincide.
func corners(size int) []Position {
	last := size - 1
	return []Position{
		{X: 0, Y: 0},
		{X: last, Y: 0},
		{X: 0, Y: last},
		{X: last, Y: last},
	}
}

// oppositeCorner returns the corner diagonally opposite start.
func oppositeCorner(start Position, size int) Position {
	var exit Position
	if start.X == 0 {
		exit.X = size - 1
	}
	if start.Y == 0 {
		exit.Y = size - 1
	}
	return exit
}
