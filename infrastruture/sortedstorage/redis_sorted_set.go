package sortedstorage

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const lockSuffix = ":score_lock"

var (
	ErrNilClient = errors.New("redis client is required")
)

var _ i.SortedStorage = &RedisSortedSet{}

// RedisSortedSet stores ascending sorted sets in Redis with optional TTL.
type RedisSortedSet struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisSortedSet initializes a RedisSortedSet. A ttlSeconds of 0 keeps keys forever.
func NewRedisSortedSet(client *redis.Client, ttlSeconds int) (*RedisSortedSet, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	set := &RedisSortedSet{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	set.locker = redsync.New(pool)
	return set, nil
}

// AddIfLower stores the score when the member has none or a higher one.
func (rs *RedisSortedSet) AddIfLower(ctx context.Context, key string, score float64, member string) (bool, error) {
	mutex := rs.locker.NewMutex(key + lockSuffix)
	if err := mutex.LockContext(ctx); err != nil {
		return false, err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	current, err := rs.client.ZScore(ctx, key, member).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return false, err
	case current <= score:
		return false, nil
	}

	if err := rs.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return false, err
	}

	// Set expiration only if it's not already set
	if rs.ttl > 0 {
		ttl, err := rs.client.TTL(ctx, key).Result()
		if err == nil && ttl == -1 {
			_ = rs.client.Expire(ctx, key, rs.ttl).Err()
		}
	}

	return true, nil
}

// Lowest returns up to n members with the lowest scores.
func (rs *RedisSortedSet) Lowest(ctx context.Context, key string, n int64) ([]i.ScoredMember, error) {
	if n <= 0 {
		return nil, nil
	}

	zs, err := rs.client.ZRangeWithScores(ctx, key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	members := make([]i.ScoredMember, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		members = append(members, i.ScoredMember{Member: member, Score: z.Score})
	}
	return members, nil
}

// Trim removes every member ranked after the keep lowest.
func (rs *RedisSortedSet) Trim(ctx context.Context, key string, keep int64) error {
	return rs.client.ZRemRangeByRank(ctx, key, keep, -1).Err()
}

// Count returns the number of members in the sorted set.
func (rs *RedisSortedSet) Count(ctx context.Context, key string) int64 {
	return rs.client.ZCard(ctx, key).Val()
}
