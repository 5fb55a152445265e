package repository

import (
	"context"
	"sync"

	"github.com/categoryarena/arena-backend/internal/entity"
)

// memoryMatch is a process-local MatchRepository for tests and Redis-less
// development runs.
type memoryMatch struct {
	mu      sync.RWMutex
	matches map[string]*entity.Match
}

func NewMemoryMatchRepository() MatchRepository {
	return &memoryMatch{
		matches: make(map[string]*entity.Match),
	}
}

func (that *memoryMatch) Save(_ context.Context, match *entity.Match) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.matches[match.ID] = match.Clone()

	return nil
}

func (that *memoryMatch) GetByID(_ context.Context, id string) (*entity.Match, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	match, ok := that.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}

	return match.Clone(), nil
}

func (that *memoryMatch) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.matches, id)

	return nil
}

func (that *memoryMatch) ListActive(_ context.Context) ([]*entity.Match, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	matches := make([]*entity.Match, 0, len(that.matches))
	for _, match := range that.matches {
		if !match.IsEnded() {
			matches = append(matches, match.Clone())
		}
	}

	return matches, nil
}
