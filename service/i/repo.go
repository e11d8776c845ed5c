package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(ctx context.Context, user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(ctx context.Context, username string) (*dmn.User, error)
}

// RunRepo stores completed maze runs.
type RunRepo interface {
	// Save inserts a completed run.
	Save(ctx context.Context, run *dmn.Run) error

	// ByPlayer returns the player's most recent runs, newest first.
	ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]*dmn.Run, error)
}
