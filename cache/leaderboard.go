package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"hackacure-backend/entity"
)

// ErrMiss is returned when no unexpired snapshot is stored.
var ErrMiss = errors.New("leaderboard not cached")

const leaderboardKey = "hackacure:leaderboard"

// DefaultTTL bounds leaderboard read load. 15 seconds keeps the board
// near-live during the competition while still absorbing refresh storms.
const DefaultTTL = 15 * time.Second

// Leaderboard stores a ranked snapshot of all users under a fixed key.
type Leaderboard interface {
	Get(ctx context.Context) ([]entity.User, error)
	Set(ctx context.Context, users []entity.User) error
}

type RedisLeaderboard struct {
	rdb redis.Cmdable
	ttl time.Duration
}

var _ Leaderboard = (*RedisLeaderboard)(nil)

func NewRedisLeaderboard(rdb redis.Cmdable, ttl time.Duration) *RedisLeaderboard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisLeaderboard{rdb: rdb, ttl: ttl}
}

func (l *RedisLeaderboard) Get(ctx context.Context) ([]entity.User, error) {
	b, err := l.rdb.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}

		return nil, err
	}

	users := []entity.User{}
	if err := json.Unmarshal(b, &users); err != nil {
		return nil, err
	}

	return users, nil
}

func (l *RedisLeaderboard) Set(ctx context.Context, users []entity.User) error {
	b, err := json.Marshal(users)
	if err != nil {
		return err
	}

	return l.rdb.Set(ctx, leaderboardKey, b, l.ttl).Err()
}
