package game

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBoard is a hand-built board with explicit walls.
type fakeBoard struct {
	size  int
	start maze.Position
	exit  maze.Position
	walls map[maze.Position]maze.Walls
}

func (b *fakeBoard) Size() int            { return b.size }
func (b *fakeBoard) Start() maze.Position { return b.start }
func (b *fakeBoard) Exit() maze.Position  { return b.exit }
func (b *fakeBoard) InBound(p maze.Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.size && p.Y < b.size
}

func (b *fakeBoard) Cell(p maze.Position) (maze.Cell, error) {
	if !b.InBound(p) {
		return maze.Cell{}, maze.ErrOutOfBounds
	}
	w, ok := b.walls[p]
	if !ok {
		w = maze.Walls{Top: true, Bottom: true, Left: true, Right: true}
	}
	return maze.Cell{Walls: w, ID: p.Y*b.size + p.X, IsExit: p == b.exit}, nil
}

func TestRequestMove_WallScenario(t *testing.T) {
	start := maze.Position{X: 1, Y: 1}
	b := &fakeBoard{
		size:  3,
		start: start,
		exit:  maze.Position{X: 2, Y: 2},
		walls: map[maze.Position]maze.Walls{
			start:        {Top: true, Bottom: false, Left: true, Right: true},
			{X: 1, Y: 2}: {Top: false, Bottom: true, Left: true, Right: false},
			{X: 2, Y: 2}: {Top: true, Bottom: true, Left: false, Right: true},
		},
	}
	tr := NewTracker(b)
	require.Equal(t, start, tr.Position())

	assert.False(t, tr.RequestMove(AxisX, -1), "left wall is closed")
	assert.Equal(t, start, tr.Position())

	assert.False(t, tr.RequestMove(AxisX, 30), "right wall is closed")
	assert.False(t, tr.RequestMove(AxisY, -30), "top wall is closed")
	assert.Equal(t, start, tr.Position())

	assert.True(t, tr.RequestMove(AxisY, 1))
	assert.Equal(t, maze.Position{X: 1, Y: 2}, tr.Position())
	assert.False(t, tr.AtExit())

	assert.True(t, tr.RequestMove(AxisX, 44))
	assert.Equal(t, maze.Position{X: 2, Y: 2}, tr.Position())
	assert.True(t, tr.AtExit())
	assert.True(t, tr.CurrentCell().IsExit)
}

func TestRequestMove_ZeroDelta(t *testing.T) {
	b := &fakeBoard{
		size:  2,
		walls: map[maze.Position]maze.Walls{{}: {}},
	}
	tr := NewTracker(b)

	assert.False(t, tr.RequestMove(AxisX, 0))
	assert.False(t, tr.RequestMove(AxisY, 0))
	assert.Equal(t, maze.Position{}, tr.Position())
}

func TestRequestMove_OpenBoundaryPanics(t *testing.T) {
	// A board with an open outer wall violates the maze invariants.
	b := &fakeBoard{
		size:  2,
		walls: map[maze.Position]maze.Walls{{}: {Left: false, Top: true, Right: true, Bottom: true}},
	}
	tr := NewTracker(b)

	assert.Panics(t, func() { tr.RequestMove(AxisX, -1) })
}

func TestMove_Directions(t *testing.T) {
	b := &fakeBoard{
		size:  2,
		walls: map[maze.Position]maze.Walls{
			{X: 0, Y: 0}: {Top: true, Left: true, Right: false, Bottom: true},
			{X: 1, Y: 0}: {Top: true, Left: false, Right: true, Bottom: false},
			{X: 1, Y: 1}: {Top: false, Left: true, Right: true, Bottom: true},
		},
	}
	tr := NewTracker(b)

	assert.True(t, tr.Move(maze.Right))
	assert.True(t, tr.Move(maze.Bottom))
	assert.False(t, tr.Move(maze.Left))
	assert.True(t, tr.Move(maze.Top))
	assert.True(t, tr.Move(maze.Left))
	assert.False(t, tr.Move(maze.None))
	assert.Equal(t, maze.Position{}, tr.Position())
}

func TestRequestMove_SingleCell(t *testing.T) {
	m, err := maze.NewGenerator(maze.WithSeed(1)).Generate(1)
	require.NoError(t, err)
	tr := NewTracker(m)

	assert.True(t, tr.AtExit())
	for _, axis := range []Axis{AxisX, AxisY} {
		for _, delta := range []int{-1, 1, -20, 20} {
			assert.False(t, tr.RequestMove(axis, delta))
		}
	}
	assert.Equal(t, maze.Position{}, tr.Position())
}

func TestRequestMove_Safety(t *testing.T) {
	for seed := uint64(1); seed <= 4; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			m, err := maze.NewGenerator(maze.WithSeed(seed)).Generate(9)
			require.NoError(t, err)

			tr := NewTracker(m)
			r := rand.New(rand.NewPCG(seed, 99))
			for i := 0; i < 2000; i++ {
				axis := Axis(r.IntN(2))
				delta := r.IntN(61) - 30

				before := tr.Position()
				walls := tr.CurrentCell().Walls
				moved := tr.RequestMove(axis, delta)
				after := tr.Position()

				require.True(t, m.InBound(after))
				dir := directionOf(axis, delta)
				if dir == maze.None || walls.Has(dir) {
					require.False(t, moved)
					require.Equal(t, before, after)
					continue
				}
				require.True(t, moved)
				require.Equal(t, before.Step(dir), after)
			}
		})
	}
}

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis("X")
	require.NoError(t, err)
	assert.Equal(t, AxisX, a)

	a, err = ParseAxis("y")
	require.NoError(t, err)
	assert.Equal(t, AxisY, a)
	assert.Equal(t, "y", a.String())

	_, err = ParseAxis("z")
	assert.ErrorIs(t, err, ErrInvalidAxis)

	assert.Equal(t, "x", AxisX.String())
	assert.Equal(t, "axis(5)", Axis(5).String())
}

func TestTiming(t *testing.T) {
	var tm Timing
	assert.Zero(t, tm.Elapsed())

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tm.SetStart(start)
	assert.Zero(t, tm.Elapsed())

	tm.SetEnd(start.Add(90 * time.Second))
	assert.Equal(t, 90*time.Second, tm.Elapsed())
	assert.Equal(t, start, tm.Start())
}

func TestLayout(t *testing.T) {
	l := Layout{CellSize: 30, BorderWidth: 2}
	assert.Equal(t, 34, l.Pitch())

	x, y := l.PixelPosition(maze.Position{X: 0, Y: 0})
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, y)

	x, y = l.PixelPosition(maze.Position{X: 3, Y: 1})
	assert.Equal(t, 3*34+2, x)
	assert.Equal(t, 34+2, y)
}
