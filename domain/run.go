// Package domain holds the records the service persists.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Run is the record of a maze session that reached its exit. Moves counts
// requests that changed the position and Blocked counts requests stopped by
// a wall. The maze itself is not stored.
type Run struct {
	ID         uuid.UUID `bson:"_id"`
	SessionID  uuid.UUID `bson:"sessionId"`
	PlayerID   uuid.UUID `bson:"playerId"`
	MazeSize   int       `bson:"mazeSize"`
	Moves      int       `bson:"moves"`
	Blocked    int       `bson:"blocked"`
	StartedAt  time.Time `bson:"startedAt"`
	FinishedAt time.Time `bson:"finishedAt"`
}

// Duration returns the time between start and finish.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
