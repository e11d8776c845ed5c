package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// MazeGenerator builds a perfect maze of the given size.
type MazeGenerator interface {
	Generate(size int) (*maze.Maze, error)
}

// MazeSessionManager creates maze sessions and routes movement requests to them.
type MazeSessionManager interface {
	// NewSession generates a maze for the player. A zero size selects the default.
	NewSession(playerID uuid.UUID, size int) (*game.Session, error)

	// Session returns the player's session with the given ID.
	Session(id, playerID uuid.UUID) (*game.Session, error)

	// Move applies a movement request to the session.
	Move(ctx context.Context, id, playerID uuid.UUID, axis game.Axis, delta int) (game.MoveResult, error)

	// Start records the session start time.
	Start(id, playerID uuid.UUID) error

	// Close discards the session.
	Close(id, playerID uuid.UUID) error
}
