package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/categoryarena/arena-backend/internal/entity"
)

var ErrMatchNotFound = errors.New("match not found")

const (
	matchKeyPrefix = "match:"
	activeSetKey   = "matches:active"
)

// MatchRepository is the storage collaborator contract: the session calls
// Save after every mutation and DeleteByID on teardown; it never relies on
// storage for in-memory correctness, only for external visibility.
type MatchRepository interface {
	Save(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]*entity.Match, error)
}

type dbMatch struct {
	client *redis.Client
}

func NewMatchRepository(client *redis.Client) MatchRepository {
	return &dbMatch{
		client: client,
	}
}

func (that *dbMatch) Save(ctx context.Context, match *entity.Match) error {
	matchJSON, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("could not marshal match: %w", err)
	}

	matchKey := matchKeyPrefix + match.ID
	if err = that.client.Set(ctx, matchKey, matchJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set match: %w", err)
	}

	if match.IsEnded() {
		if err = that.client.SRem(ctx, activeSetKey, match.ID).Err(); err != nil {
			return fmt.Errorf("failed to remove match from active set: %w", err)
		}
		return nil
	}

	if err = that.client.SAdd(ctx, activeSetKey, match.ID).Err(); err != nil {
		return fmt.Errorf("failed to add match to active set: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*entity.Match, error) {
	matchKey := matchKeyPrefix + id

	response, err := that.client.Get(ctx, matchKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	var existingMatch entity.Match
	if err = json.Unmarshal([]byte(response), &existingMatch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &existingMatch, nil
}

func (that *dbMatch) DeleteByID(ctx context.Context, id string) error {
	matchKey := matchKeyPrefix + id

	if err := that.client.Del(ctx, matchKey).Err(); err != nil {
		return fmt.Errorf("failed to delete match by id: %w", err)
	}

	if err := that.client.SRem(ctx, activeSetKey, id).Err(); err != nil {
		return fmt.Errorf("failed to remove match from active set: %w", err)
	}

	return nil
}

func (that *dbMatch) ListActive(ctx context.Context) ([]*entity.Match, error) {
	ids, err := that.client.SMembers(ctx, activeSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list active match ids: %w", err)
	}

	matches := make([]*entity.Match, 0, len(ids))
	for _, id := range ids {
		match, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrMatchNotFound) {
			// Stale index entry; drop it and move on.
			_ = that.client.SRem(ctx, activeSetKey, id).Err()
			continue
		}
		if err != nil {
			return nil, err
		}

		if !match.IsEnded() {
			matches = append(matches, match)
		}
	}

	return matches, nil
}
