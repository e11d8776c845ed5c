package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultLeaderboardPrefix   = "leaderboard"
	defaultLeaderboardCapacity = 100
	boardKeyFmt                = "%s:size_%d"
)

var (
	ErrNilSortedStorage = errors.New("sorted storage is required")
)

var _ i.Leaderboard = &Leaderboard{}

// LeaderboardOptions configures a Leaderboard.
type LeaderboardOptions struct {
	Prefix   string // Key prefix for every board.
	Capacity int64  // Entries kept per board.
}

// Leaderboard keeps each player's best completion time per maze size in a
// sorted storage, lowest time first.
type Leaderboard struct {
	storage i.SortedStorage
	logger  logger.Logger
	opts    *LeaderboardOptions
}

// NewLeaderboard creates a Leaderboard, filling unset options with defaults.
func NewLeaderboard(storage i.SortedStorage, l logger.Logger, opts *LeaderboardOptions) (*Leaderboard, error) {
	if storage == nil {
		return nil, ErrNilSortedStorage
	}

	o := LeaderboardOptions{}
	if opts != nil {
		o = *opts
	}
	if o.Prefix == "" {
		o.Prefix = defaultLeaderboardPrefix
	}
	if o.Capacity <= 0 {
		o.Capacity = defaultLeaderboardCapacity
	}
	if l == nil {
		l = logger.Discard()
	}

	return &Leaderboard{
		storage: storage,
		logger:  l,
		opts:    &o,
	}, nil
}

// Submit records d for the player on the board of the given size.
func (lb *Leaderboard) Submit(ctx context.Context, size int, playerID uuid.UUID, d time.Duration) (bool, error) {
	key := lb.boardKey(size)
	improved, err := lb.storage.AddIfLower(ctx, key, float64(d.Milliseconds()), playerID.String())
	if err != nil {
		lb.logger.Error(fmt.Sprintf("Failed to submit time: %s", err))
		return false, err
	}

	if improved && lb.storage.Count(ctx, key) > lb.opts.Capacity {
		if err := lb.storage.Trim(ctx, key, lb.opts.Capacity); err != nil {
			lb.logger.Warning(fmt.Sprintf("Trimming board %s: %s", key, err))
		}
	}

	lb.logger.Debug(fmt.Sprintf("Submitted time: player=%s size=%d duration=%s improved=%t", playerID, size, d, improved))
	return improved, nil
}

// Top returns up to n fastest entries for the size, ranked from 1.
func (lb *Leaderboard) Top(ctx context.Context, size int, n int64) ([]i.LeaderboardEntry, error) {
	if n <= 0 || n > lb.opts.Capacity {
		n = lb.opts.Capacity
	}

	members, err := lb.storage.Lowest(ctx, lb.boardKey(size), n)
	if err != nil {
		return nil, err
	}

	entries := make([]i.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m.Member)
		if err != nil {
			lb.logger.Warning(fmt.Sprintf("Non-UUID value on board: %s", m.Member))
			continue
		}
		entries = append(entries, i.LeaderboardEntry{
			Rank:     len(entries) + 1,
			PlayerID: id,
			Duration: time.Duration(m.Score) * time.Millisecond,
		})
	}
	return entries, nil
}

func (lb *Leaderboard) boardKey(size int) string {
	return fmt.Sprintf(boardKeyFmt, lb.opts.Prefix, size)
}
