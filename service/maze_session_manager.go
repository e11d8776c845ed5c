package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const (
	minMazeSize       = 2 // A single cell starts on its exit, so it has no run to record.
	defaultMazeSize   = 10
	defaultMaxSize    = 50
	defaultSessionTTL = 30 * time.Minute

	recordTimeout = 2 * time.Second
)

// Session manager errors.
var (
	ErrNilGenerator    = errors.New("maze generator is required")
	ErrMazeTooLarge    = errors.New("maze size exceeds the maximum")
	ErrMazeTooSmall    = errors.New("maze size is below the minimum")
	ErrSessionNotFound = errors.New("session not found")
	ErrNotSessionOwner = errors.New("session belongs to another player")
)

var _ i.MazeSessionManager = &MazeSessionManager{}

// MazeSessionManager keeps the active maze sessions in memory and records a
// run whenever a player reaches an exit.
type MazeSessionManager struct {
	sessions        map[uuid.UUID]*game.Session
	playerToSession map[uuid.UUID]uuid.UUID
	generator       i.MazeGenerator
	runRepo         i.RunRepo
	leaderboard     i.Leaderboard
	logger          logger.Logger
	defaultSize     int
	maxSize         int
	ttl             time.Duration
	now             func() time.Time
	sync.RWMutex
}

// Config holds the dependencies of a MazeSessionManager. Only Generator is
// required; RunRepo and Leaderboard may be nil to skip recording.
type Config struct {
	Generator   i.MazeGenerator
	RunRepo     i.RunRepo
	Leaderboard i.Leaderboard
	Logger      logger.Logger
	DefaultSize int           // Size used when a request asks for 0.
	MaxSize     int           // Largest size a request may ask for.
	SessionTTL  time.Duration // Idle time after which Sweep discards a session.
	Clock       func() time.Time
}

// NewMazeSessionManager creates a manager, filling unset options with defaults.
func NewMazeSessionManager(c *Config) (*MazeSessionManager, error) {
	if c == nil || c.Generator == nil {
		return nil, ErrNilGenerator
	}

	m := &MazeSessionManager{
		sessions:        make(map[uuid.UUID]*game.Session),
		playerToSession: make(map[uuid.UUID]uuid.UUID),
		generator:       c.Generator,
		runRepo:         c.RunRepo,
		leaderboard:     c.Leaderboard,
		logger:          c.Logger,
		defaultSize:     c.DefaultSize,
		maxSize:         c.MaxSize,
		ttl:             c.SessionTTL,
		now:             c.Clock,
	}

	if m.logger == nil {
		m.logger = logger.Discard()
	}
	if m.defaultSize <= 0 {
		m.defaultSize = defaultMazeSize
	}
	if m.maxSize <= 0 {
		m.maxSize = defaultMaxSize
	}
	if m.defaultSize > m.maxSize {
		m.defaultSize = m.maxSize
	}
	if m.ttl <= 0 {
		m.ttl = defaultSessionTTL
	}
	if m.now == nil {
		m.now = time.Now
	}

	return m, nil
}

// NewSession generates a maze and starts a session for the player. A player
// holds at most one session; starting a new one discards the old. Sizes below
// 2 are rejected with ErrMazeTooSmall.
func (m *MazeSessionManager) NewSession(playerID uuid.UUID, size int) (*game.Session, error) {
	if size == 0 {
		size = m.defaultSize
	}
	if size > m.maxSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrMazeTooLarge, size, m.maxSize)
	}
	if size < minMazeSize {
		return nil, fmt.Errorf("%w: %d < %d", ErrMazeTooSmall, size, minMazeSize)
	}

	mz, err := m.generator.Generate(size)
	if err != nil {
		m.logger.Error(fmt.Sprintf("generating %dx%d maze for player %s: %s", size, size, playerID, err))
		return nil, err
	}

	m.Lock()
	defer m.Unlock()

	if oldID, ok := m.playerToSession[playerID]; ok {
		delete(m.sessions, oldID)
		m.logger.Info(fmt.Sprintf("replaced session %s of player %s", oldID, playerID))
	}

	sessionID := uuid.New()
	for {
		if _, ok := m.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}

	session := game.NewSession(sessionID, playerID, mz, m.now())
	m.sessions[sessionID] = session
	m.playerToSession[playerID] = sessionID

	m.logger.Info(fmt.Sprintf("started %dx%d maze session %s for player %s", size, size, sessionID, playerID))
	return session, nil
}

// Session returns the session if it exists and belongs to playerID.
func (m *MazeSessionManager) Session(id, playerID uuid.UUID) (*game.Session, error) {
	m.RLock()
	defer m.RUnlock()
	return m.owned(id, playerID)
}

// owned looks up a session and checks ownership. Callers hold the lock.
func (m *MazeSessionManager) owned(id, playerID uuid.UUID) (*game.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.PlayerID() != playerID {
		return nil, ErrNotSessionOwner
	}
	return s, nil
}

// Move applies a movement request. When the move reaches the exit the run is
// stored and submitted to the leaderboard; failures there are logged only.
func (m *MazeSessionManager) Move(ctx context.Context, id, playerID uuid.UUID, axis game.Axis, delta int) (game.MoveResult, error) {
	s, err := m.Session(id, playerID)
	if err != nil {
		return game.MoveResult{}, err
	}

	result, err := s.Move(axis, delta, m.now())
	if err != nil {
		return result, err
	}

	if result.ReachedExit {
		m.logger.Info(fmt.Sprintf("player %s reached the exit of session %s", playerID, id))
		m.record(ctx, s)
	}
	return result, nil
}

// record persists a finished session.
func (m *MazeSessionManager) record(ctx context.Context, s *game.Session) {
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	moves, blocked, startedAt, finishedAt := s.Stats()
	run := &dmn.Run{
		ID:         uuid.New(),
		SessionID:  s.ID(),
		PlayerID:   s.PlayerID(),
		MazeSize:   s.Maze().Size(),
		Moves:      moves,
		Blocked:    blocked,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}

	if m.runRepo != nil {
		if err := m.runRepo.Save(ctx, run); err != nil {
			m.logger.Error(fmt.Sprintf("saving run of session %s: %s", s.ID(), err))
		}
	}

	if m.leaderboard != nil {
		best, err := m.leaderboard.Submit(ctx, run.MazeSize, run.PlayerID, run.Duration())
		if err != nil {
			m.logger.Error(fmt.Sprintf("submitting run of session %s: %s", s.ID(), err))
			return
		}
		if best {
			m.logger.Info(fmt.Sprintf("new best time %s for player %s on size %d", run.Duration(), run.PlayerID, run.MazeSize))
		}
	}
}

// Start records the current time as the session start. Finished sessions
// return game.ErrSessionFinished.
func (m *MazeSessionManager) Start(id, playerID uuid.UUID) error {
	s, err := m.Session(id, playerID)
	if err != nil {
		return err
	}
	return s.SetStart(m.now())
}

// Close discards the session.
func (m *MazeSessionManager) Close(id, playerID uuid.UUID) error {
	m.Lock()
	defer m.Unlock()

	if _, err := m.owned(id, playerID); err != nil {
		return err
	}
	m.clean(id)
	return nil
}

// Sweep discards sessions idle for longer than the TTL and returns how many
// were removed.
func (m *MazeSessionManager) Sweep() int {
	cutoff := m.now().Add(-m.ttl)

	m.Lock()
	defer m.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.IdleSince(cutoff) {
			m.clean(id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info(fmt.Sprintf("swept %d idle sessions", removed))
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is done.
func (m *MazeSessionManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Count returns the number of active sessions.
func (m *MazeSessionManager) Count() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.sessions)
}

// StopAll discards every session.
func (m *MazeSessionManager) StopAll() {
	m.Lock()
	defer m.Unlock()

	for id := range m.sessions {
		m.clean(id)
	}
}

// clean removes a session and its player index. Callers hold the lock.
func (m *MazeSessionManager) clean(id uuid.UUID) {
	s, ok := m.sessions[id]
	if !ok {
		return
	}
	if m.playerToSession[s.PlayerID()] == id {
		delete(m.playerToSession, s.PlayerID())
	}
	delete(m.sessions, id)
}
