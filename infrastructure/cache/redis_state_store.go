package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "photo_frame:oauth_state:"

// RedisStateStore keeps pending OAuth states in Redis, for frames that share one
type RedisStateStore struct {
	client redis.UniversalClient
}

func NewRedisStateStore(client redis.UniversalClient) *RedisStateStore {
	return &RedisStateStore{client: client}
}

// NewRedisClient connects and pings, so a misconfigured address is caught at start-up
func NewRedisClient(ctx context.Context, addr, username, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Save stores state under the session key. A ttl of zero sets no expiry.
func (s *RedisStateStore) Save(ctx context.Context, sessionID, state string, ttl time.Duration) error {
	if err := s.client.Set(ctx, stateKeyPrefix+sessionID, state, ttl).Err(); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

func (s *RedisStateStore) Take(ctx context.Context, sessionID string) (string, error) {
	state, err := s.client.GetDel(ctx, stateKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("load state: %w", err)
	}
	return state, nil
}
