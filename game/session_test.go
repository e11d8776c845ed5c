package game

import (
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solve returns the directions leading from the maze start to its exit.
func solve(t *testing.T, m *maze.Maze) []maze.Direction {
	t.Helper()
	type step struct {
		from maze.Position
		dir  maze.Direction
	}
	prev := map[maze.Position]step{}
	seen := map[maze.Position]bool{m.Start(): true}
	queue := []maze.Position{m.Start()}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p == m.Exit() {
			break
		}
		walls, err := m.Walls(p)
		require.NoError(t, err)
		for _, d := range []maze.Direction{maze.Top, maze.Bottom, maze.Left, maze.Right} {
			next := p.Step(d)
			if walls.Has(d) || seen[next] {
				continue
			}
			seen[next] = true
			prev[next] = step{from: p, dir: d}
			queue = append(queue, next)
		}
	}
	require.True(t, seen[m.Exit()], "exit unreachable")

	var path []maze.Direction
	for p := m.Exit(); p != m.Start(); p = prev[p].from {
		path = append([]maze.Direction{prev[p].dir}, path...)
	}
	return path
}

func newTestSession(t *testing.T, size int, now time.Time) *Session {
	t.Helper()
	m, err := maze.NewGenerator(maze.WithSeed(11)).Generate(size)
	require.NoError(t, err)
	return NewSession(uuid.New(), uuid.New(), m, now)
}

func TestSession_WalkToExit(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestSession(t, 6, created)
	path := solve(t, s.Maze())
	require.NotEmpty(t, path)

	now := created
	for i, d := range path {
		now = now.Add(time.Second)
		axis, delta := axisOf(d)
		res, err := s.Move(axis, delta*34, now)
		require.NoError(t, err)
		require.True(t, res.Moved)
		assert.Equal(t, int64(i+1), res.Version)
		assert.Equal(t, i == len(path)-1, res.ReachedExit)
		assert.Equal(t, res.ReachedExit, res.Finished)
	}

	assert.True(t, s.Finished())
	snap := s.Snapshot()
	assert.Equal(t, s.Maze().Exit(), snap.Position)
	assert.True(t, snap.Finished)
	assert.Equal(t, created, snap.StartedAt, "start falls back to creation time")
	assert.Equal(t, now, snap.FinishedAt)

	_, err := s.Move(AxisX, 1, now)
	assert.ErrorIs(t, err, ErrSessionFinished)

	assert.ErrorIs(t, s.SetStart(now.Add(time.Hour)), ErrSessionFinished)
	assert.Equal(t, created, s.Snapshot().StartedAt)
}

func TestSession_SingleCellNeverFinishes(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestSession(t, 1, created)

	for _, axis := range []Axis{AxisX, AxisY} {
		for _, delta := range []int{-1, 1} {
			res, err := s.Move(axis, delta, created)
			require.NoError(t, err)
			assert.False(t, res.Moved)
			assert.True(t, res.IsExit)
			assert.False(t, res.ReachedExit)
			assert.Equal(t, s.Finished(), res.Finished)
		}
	}
	assert.False(t, s.Finished())
}

func TestSession_BlockedMovesAreCounted(t *testing.T) {
	created := time.Now()
	s := newTestSession(t, 4, created)

	walls, err := s.Maze().Walls(s.Maze().Start())
	require.NoError(t, err)

	// Corners always have two outer walls.
	var closed maze.Direction
	for _, d := range []maze.Direction{maze.Top, maze.Bottom, maze.Left, maze.Right} {
		if walls.Has(d) {
			closed = d
			break
		}
	}
	axis, delta := axisOf(closed)

	res, err := s.Move(axis, delta, created)
	require.NoError(t, err)
	assert.False(t, res.Moved)
	assert.Equal(t, s.Maze().Start(), res.Position)

	res, err = s.Move(AxisY, 0, created)
	require.NoError(t, err)
	assert.False(t, res.Moved)

	moves, blocked, _, _ := s.Stats()
	assert.Zero(t, moves)
	assert.Equal(t, 2, blocked)
	assert.False(t, s.Finished())
}

func TestSession_ExplicitStart(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestSession(t, 3, created)
	started := created.Add(5 * time.Minute)
	require.NoError(t, s.SetStart(started))

	now := started
	for _, d := range solve(t, s.Maze()) {
		now = now.Add(time.Second)
		axis, delta := axisOf(d)
		_, err := s.Move(axis, delta, now)
		require.NoError(t, err)
	}
	require.True(t, s.Finished())

	_, _, startedAt, finishedAt := s.Stats()
	assert.Equal(t, started, startedAt)
	assert.Equal(t, now, finishedAt)
	assert.Equal(t, now.Sub(started), s.Snapshot().FinishedAt.Sub(s.Snapshot().StartedAt))
}

func TestSession_Idle(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestSession(t, 3, created)

	assert.True(t, s.IdleSince(created.Add(time.Minute)))
	assert.False(t, s.IdleSince(created))

	_, err := s.Move(AxisX, 0, created.Add(2*time.Minute))
	require.NoError(t, err)
	assert.False(t, s.IdleSince(created.Add(time.Minute)))
}
