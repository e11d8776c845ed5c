package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

// memorySortedStorage is an in-memory i.SortedStorage.
type memorySortedStorage struct {
	sets map[string]map[string]float64
	err  error
	mu   sync.Mutex
}

func newMemorySortedStorage() *memorySortedStorage {
	return &memorySortedStorage{sets: map[string]map[string]float64{}}
}

func (m *memorySortedStorage) AddIfLower(_ context.Context, key string, score float64, member string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	set, ok := m.sets[key]
	if !ok {
		set = map[string]float64{}
		m.sets[key] = set
	}
	if old, ok := set[member]; ok && old <= score {
		return false, nil
	}
	set[member] = score
	return true, nil
}

func (m *memorySortedStorage) sorted(key string) []i.ScoredMember {
	var out []i.ScoredMember
	for member, score := range m.sets[key] {
		out = append(out, i.ScoredMember{Member: member, Score: score})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Score == out[b].Score {
			return out[a].Member < out[b].Member
		}
		return out[a].Score < out[b].Score
	})
	return out
}

func (m *memorySortedStorage) Lowest(_ context.Context, key string, n int64) ([]i.ScoredMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.sorted(key)
	if int64(len(out)) > n {
		out = out[:n]
	}
	return out, nil
}

func (m *memorySortedStorage) Trim(_ context.Context, key string, keep int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sorted(key)
	for idx, sm := range all {
		if int64(idx) >= keep {
			delete(m.sets[key], sm.Member)
		}
	}
	return nil
}

func (m *memorySortedStorage) Count(_ context.Context, key string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.sets[key]))
}

// memoryRunRepo is an in-memory i.RunRepo.
type memoryRunRepo struct {
	runs []*dmn.Run
	err  error
	mu   sync.Mutex
}

func (r *memoryRunRepo) Save(_ context.Context, run *dmn.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.runs = append(r.runs, run)
	return nil
}

func (r *memoryRunRepo) ByPlayer(_ context.Context, playerID uuid.UUID, limit int64) ([]*dmn.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*dmn.Run
	for idx := len(r.runs) - 1; idx >= 0 && int64(len(out)) < limit; idx-- {
		if r.runs[idx].PlayerID == playerID {
			out = append(out, r.runs[idx])
		}
	}
	return out, nil
}

// memoryUserRepo is an in-memory i.UserRepo.
type memoryUserRepo struct {
	users map[uuid.UUID]*dmn.User
	mu    sync.Mutex
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[uuid.UUID]*dmn.User{}}
}

func (r *memoryUserRepo) Save(_ context.Context, user *dmn.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, dmn.ErrUserNotFound
}

func (r *memoryUserRepo) ByUsername(_ context.Context, username string) (*dmn.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, dmn.ErrUserNotFound
}

// fakeTokenizer returns the claims' userID as the token.
type fakeTokenizer struct {
	lastClaims map[string]any
	lastExp    time.Duration
}

func (f *fakeTokenizer) Generate(claims map[string]any, exp time.Duration) (string, error) {
	f.lastClaims = claims
	f.lastExp = exp
	id, _ := claims["userID"].(string)
	return "token-" + id, nil
}

func (f *fakeTokenizer) Decode(token string) (map[string]any, error) {
	return nil, errors.New("not implemented")
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	t  time.Time
	mu sync.Mutex
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
