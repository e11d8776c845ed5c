package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingGenerator struct{}

func (failingGenerator) Generate(int) (*maze.Maze, error) {
	return nil, maze.ErrInvalidSize
}

type managerFixture struct {
	manager *MazeSessionManager
	runs    *memoryRunRepo
	board   *Leaderboard
	clock   *fakeClock
}

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	runs := &memoryRunRepo{}
	board, err := NewLeaderboard(newMemorySortedStorage(), nil, nil)
	require.NoError(t, err)

	m, err := NewMazeSessionManager(&Config{
		Generator:   maze.NewGenerator(maze.WithSeed(3)),
		RunRepo:     runs,
		Leaderboard: board,
		DefaultSize: 4,
		MaxSize:     8,
		SessionTTL:  time.Minute,
		Clock:       clock.Now,
	})
	require.NoError(t, err)

	return &managerFixture{manager: m, runs: runs, board: board, clock: clock}
}

// shortestPath returns the directions from the maze start to its exit.
func shortestPath(t *testing.T, m *maze.Maze) []maze.Direction {
	t.Helper()
	prev := map[maze.Position]maze.Direction{}
	seen := map[maze.Position]bool{m.Start(): true}
	queue := []maze.Position{m.Start()}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		walls, err := m.Walls(p)
		require.NoError(t, err)
		for _, d := range []maze.Direction{maze.Top, maze.Bottom, maze.Left, maze.Right} {
			next := p.Step(d)
			if walls.Has(d) || seen[next] {
				continue
			}
			seen[next] = true
			prev[next] = d
			queue = append(queue, next)
		}
	}
	require.True(t, seen[m.Exit()])

	var path []maze.Direction
	for p := m.Exit(); p != m.Start(); p = p.Step(prev[p].Opposite()) {
		path = append([]maze.Direction{prev[p]}, path...)
	}
	return path
}

func axisDelta(d maze.Direction) (game.Axis, int) {
	delta := d.Delta()
	if delta.X != 0 {
		return game.AxisX, delta.X
	}
	return game.AxisY, delta.Y
}

func TestNewMazeSessionManager(t *testing.T) {
	_, err := NewMazeSessionManager(nil)
	assert.ErrorIs(t, err, ErrNilGenerator)

	_, err = NewMazeSessionManager(&Config{})
	assert.ErrorIs(t, err, ErrNilGenerator)

	m, err := NewMazeSessionManager(&Config{Generator: maze.NewGenerator()})
	require.NoError(t, err)
	assert.Equal(t, defaultMazeSize, m.defaultSize)
	assert.Equal(t, defaultMaxSize, m.maxSize)
	assert.Equal(t, defaultSessionTTL, m.ttl)
}

func TestMazeSessionManager_NewSession(t *testing.T) {
	f := newManagerFixture(t)
	player := uuid.New()

	s, err := f.manager.NewSession(player, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Maze().Size(), "zero size selects the default")
	assert.Equal(t, player, s.PlayerID())

	_, err = f.manager.NewSession(player, 9)
	assert.ErrorIs(t, err, ErrMazeTooLarge)

	_, err = f.manager.NewSession(player, -2)
	assert.ErrorIs(t, err, ErrMazeTooSmall)

	replacement, err := f.manager.NewSession(player, 6)
	require.NoError(t, err)
	assert.Equal(t, 1, f.manager.Count())

	_, err = f.manager.Session(s.ID(), player)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	got, err := f.manager.Session(replacement.ID(), player)
	require.NoError(t, err)
	assert.Same(t, replacement, got)
}

func TestMazeSessionManager_RejectsSingleCell(t *testing.T) {
	f := newManagerFixture(t)

	s, err := f.manager.NewSession(uuid.New(), 1)
	assert.ErrorIs(t, err, ErrMazeTooSmall)
	assert.Nil(t, s)
	assert.Zero(t, f.manager.Count())
	assert.Empty(t, f.runs.runs)
}

func TestMazeSessionManager_GeneratorFailure(t *testing.T) {
	m, err := NewMazeSessionManager(&Config{Generator: failingGenerator{}})
	require.NoError(t, err)

	_, err = m.NewSession(uuid.New(), 5)
	assert.ErrorIs(t, err, maze.ErrInvalidSize)
	assert.Zero(t, m.Count())
}

func TestMazeSessionManager_Ownership(t *testing.T) {
	f := newManagerFixture(t)
	owner, stranger := uuid.New(), uuid.New()

	s, err := f.manager.NewSession(owner, 3)
	require.NoError(t, err)

	_, err = f.manager.Session(s.ID(), stranger)
	assert.ErrorIs(t, err, ErrNotSessionOwner)

	_, err = f.manager.Move(context.Background(), s.ID(), stranger, game.AxisX, 1)
	assert.ErrorIs(t, err, ErrNotSessionOwner)

	assert.ErrorIs(t, f.manager.Start(s.ID(), stranger), ErrNotSessionOwner)
	assert.ErrorIs(t, f.manager.Close(s.ID(), stranger), ErrNotSessionOwner)
	assert.ErrorIs(t, f.manager.Close(uuid.New(), owner), ErrSessionNotFound)

	require.NoError(t, f.manager.Close(s.ID(), owner))
	assert.Zero(t, f.manager.Count())
}

func TestMazeSessionManager_MoveToExitRecordsRun(t *testing.T) {
	f := newManagerFixture(t)
	ctx := context.Background()
	player := uuid.New()

	s, err := f.manager.NewSession(player, 5)
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	require.NoError(t, f.manager.Start(s.ID(), player))

	path := shortestPath(t, s.Maze())
	var last game.MoveResult
	for _, d := range path {
		f.clock.Advance(time.Second)
		axis, delta := axisDelta(d)
		last, err = f.manager.Move(ctx, s.ID(), player, axis, delta)
		require.NoError(t, err)
		require.True(t, last.Moved)
		require.Equal(t, last.ReachedExit, last.Finished)
	}
	assert.True(t, last.ReachedExit)
	assert.True(t, last.Finished)
	assert.Equal(t, s.Maze().Exit(), last.Position)

	runs, err := f.runs.ByPlayer(ctx, player, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, s.ID(), runs[0].SessionID)
	assert.Equal(t, 5, runs[0].MazeSize)
	assert.Equal(t, len(path), runs[0].Moves)
	assert.Equal(t, time.Duration(len(path))*time.Second, runs[0].Duration())

	top, err := f.board.Top(ctx, 5, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, player, top[0].PlayerID)
	assert.Equal(t, runs[0].Duration(), top[0].Duration)

	_, err = f.manager.Move(ctx, s.ID(), player, game.AxisX, 1)
	assert.ErrorIs(t, err, game.ErrSessionFinished)

	f.clock.Advance(time.Minute)
	assert.ErrorIs(t, f.manager.Start(s.ID(), player), game.ErrSessionFinished)
	assert.Equal(t, runs[0].StartedAt, s.Snapshot().StartedAt)
}

func TestMazeSessionManager_RecordFailuresDoNotFailMove(t *testing.T) {
	f := newManagerFixture(t)
	f.runs.err = errors.New("db down")
	player := uuid.New()

	s, err := f.manager.NewSession(player, 3)
	require.NoError(t, err)

	var last game.MoveResult
	for _, d := range shortestPath(t, s.Maze()) {
		axis, delta := axisDelta(d)
		last, err = f.manager.Move(context.Background(), s.ID(), player, axis, delta)
		require.NoError(t, err)
	}
	assert.True(t, last.ReachedExit)
	assert.Empty(t, f.runs.runs)
}

func TestMazeSessionManager_Sweep(t *testing.T) {
	f := newManagerFixture(t)
	idle, active := uuid.New(), uuid.New()

	idleSession, err := f.manager.NewSession(idle, 3)
	require.NoError(t, err)
	activeSession, err := f.manager.NewSession(active, 3)
	require.NoError(t, err)

	f.clock.Advance(50 * time.Second)
	_, err = f.manager.Move(context.Background(), activeSession.ID(), active, game.AxisX, 0)
	require.NoError(t, err)

	f.clock.Advance(20 * time.Second)
	assert.Equal(t, 1, f.manager.Sweep())

	_, err = f.manager.Session(idleSession.ID(), idle)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.manager.Session(activeSession.ID(), active)
	assert.NoError(t, err)

	f.manager.StopAll()
	assert.Zero(t, f.manager.Count())
}

func TestMazeSessionManager_RunStopsWithContext(t *testing.T) {
	f := newManagerFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		f.manager.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
