package game

import (
	"errors"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// Session-related errors.
var (
	ErrSessionFinished = errors.New("session already reached the exit")
)

// MoveResult describes the outcome of one movement request.
type MoveResult struct {
	Moved       bool          `json:"moved"`       // Moved is false for zero deltas and blocked moves.
	Position    maze.Position `json:"position"`    // Position after the request.
	Walls       maze.Walls    `json:"walls"`       // Walls of the cell at Position.
	IsExit      bool          `json:"isExit"`      // IsExit is true when Position is the exit.
	ReachedExit bool          `json:"reachedExit"` // ReachedExit is true only for the move that arrived at the exit.
	Finished    bool          `json:"finished"`    // Finished is the session state after the request.
	Version     int64         `json:"version"`     // Version counts successful moves.
}

// Snapshot is a point-in-time copy of a session's state.
type Snapshot struct {
	ID         uuid.UUID     `json:"id"`
	PlayerID   uuid.UUID     `json:"playerId"`
	Size       int           `json:"size"`
	Start      maze.Position `json:"start"`
	Exit       maze.Position `json:"exit"`
	Position   maze.Position `json:"position"`
	Grid       [][]maze.Cell `json:"grid"`
	Version    int64         `json:"version"`
	Blocked    int           `json:"blocked"`
	Finished   bool          `json:"finished"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
}

// Session is one player's walk through one maze, from creation until the
// exit is reached or the session is discarded.
type Session struct {
	id         uuid.UUID
	playerID   uuid.UUID
	maze       *maze.Maze
	tracker    *Tracker
	timing     Timing
	version    int64     // Successful moves, used by clients to order updates.
	blocked    int       // Requests that did not move the actor.
	finished   bool      // Set once the actor reaches the exit.
	createdAt  time.Time // Fallback start time when none was recorded.
	lastActive time.Time // Last time the session was touched.
	sync.RWMutex
}

// NewSession wraps a generated maze and places the player on its start.
func NewSession(id, playerID uuid.UUID, m *maze.Maze, now time.Time) *Session {
	return &Session{
		id:         id,
		playerID:   playerID,
		maze:       m,
		tracker:    NewTracker(m),
		createdAt:  now,
		lastActive: now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// PlayerID returns the owner of the session.
func (s *Session) PlayerID() uuid.UUID {
	return s.playerID
}

// Maze returns the read-only maze of the session.
func (s *Session) Maze() *maze.Maze {
	return s.maze
}

// Move applies a movement request. Blocked and zero moves are reported via
// MoveResult.Moved, not as errors.
func (s *Session) Move(axis Axis, delta int, now time.Time) (MoveResult, error) {
	s.Lock()
	defer s.Unlock()

	if s.finished {
		return MoveResult{}, ErrSessionFinished
	}
	s.lastActive = now

	moved := s.tracker.RequestMove(axis, delta)
	if moved {
		s.version++
	} else {
		s.blocked++
	}

	cell := s.tracker.CurrentCell()
	result := MoveResult{
		Moved:    moved,
		Position: s.tracker.Position(),
		Walls:    cell.Walls,
		IsExit:   cell.IsExit,
		Version:  s.version,
	}

	if moved && cell.IsExit {
		s.finished = true
		result.ReachedExit = true
		if s.timing.Start().IsZero() {
			s.timing.SetStart(s.createdAt)
		}
		s.timing.SetEnd(now)
	}
	result.Finished = s.finished

	return result, nil
}

// SetStart records when the player started. The value is stored as given.
// A finished session keeps the start its run was recorded with.
func (s *Session) SetStart(ts time.Time) error {
	s.Lock()
	defer s.Unlock()
	if s.finished {
		return ErrSessionFinished
	}
	s.timing.SetStart(ts)
	s.lastActive = ts
	return nil
}

// SetEnd records when the player finished. The value is stored as given.
func (s *Session) SetEnd(ts time.Time) {
	s.Lock()
	defer s.Unlock()
	s.timing.SetEnd(ts)
}

// Finished reports whether the exit was reached.
func (s *Session) Finished() bool {
	s.RLock()
	defer s.RUnlock()
	return s.finished
}

// IdleSince reports whether the session was last touched before t.
func (s *Session) IdleSince(t time.Time) bool {
	s.RLock()
	defer s.RUnlock()
	return s.lastActive.Before(t)
}

// Stats returns the counters and timestamps a completed run is recorded with.
func (s *Session) Stats() (moves, blocked int, startedAt, finishedAt time.Time) {
	s.RLock()
	defer s.RUnlock()
	return int(s.version), s.blocked, s.timing.Start(), s.timing.End()
}

// Snapshot creates a snapshot of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.RLock()
	defer s.RUnlock()

	return Snapshot{
		ID:         s.id,
		PlayerID:   s.playerID,
		Size:       s.maze.Size(),
		Start:      s.maze.Start(),
		Exit:       s.maze.Exit(),
		Position:   s.tracker.Position(),
		Grid:       s.maze.Rows(),
		Version:    s.version,
		Blocked:    s.blocked,
		Finished:   s.finished,
		StartedAt:  s.timing.Start(),
		FinishedAt: s.timing.End(),
	}
}
