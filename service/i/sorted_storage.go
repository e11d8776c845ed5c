package i

import "context"

// ScoredMember is a member of a sorted set together with its score.
type ScoredMember struct {
	Member string
	Score  float64
}

// SortedStorage is a keyed collection of sorted sets ordered by ascending score.
type SortedStorage interface {
	// AddIfLower stores member with score unless it already holds a lower or
	// equal score. It reports whether the stored score changed.
	AddIfLower(ctx context.Context, key string, score float64, member string) (bool, error)

	// Lowest returns up to n members with the lowest scores, ascending.
	Lowest(ctx context.Context, key string, n int64) ([]ScoredMember, error)

	// Trim keeps only the keep lowest-scored members.
	Trim(ctx context.Context, key string, keep int64) error

	// Count returns the number of members under key.
	Count(ctx context.Context, key string) int64
}
