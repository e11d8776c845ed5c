package i

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LeaderboardEntry is one player's best completion time.
type LeaderboardEntry struct {
	Rank     int           `json:"rank"`
	PlayerID uuid.UUID     `json:"playerId"`
	Duration time.Duration `json:"duration"`
}

// Leaderboard ranks players by their fastest completion per maze size.
type Leaderboard interface {
	// Submit records a completion time. It reports whether it became the
	// player's new best.
	Submit(ctx context.Context, size int, playerID uuid.UUID, d time.Duration) (bool, error)

	// Top returns up to n fastest entries for the size.
	Top(ctx context.Context, size int, n int64) ([]LeaderboardEntry, error)
}
