package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
)

// Key layout. Changing these prefixes invalidates existing sessions.
const (
	tokenKeyPrefix = "github_token:"
	stateKeyPrefix = "oauth_state:"
)

// RedisStore backs both stores with a shared redis instance. SET/GET/DEL on
// single keys only, so concurrent requests never race across calls.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore connects to redis and verifies the connection. A dead store
// at startup is the one failure this service treats as fatal, so callers
// should abort on error.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis ping")
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps a pre-built client. Used by tests with
// miniredis.
func NewRedisStoreWithClient(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) SaveToken(ctx context.Context, userID, accessToken string) error {
	return s.client.Set(ctx, tokenKeyPrefix+userID, accessToken, 0).Err()
}

func (s *RedisStore) GetToken(ctx context.Context, userID string) (string, error) {
	val, err := s.client.Get(ctx, tokenKeyPrefix+userID).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "get token")
	}
	return val, nil
}

func (s *RedisStore) DeleteToken(ctx context.Context, userID string) error {
	return s.client.Del(ctx, tokenKeyPrefix+userID).Err()
}

func (s *RedisStore) SaveState(ctx context.Context, state string, pending PendingAuth, ttl time.Duration) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return errors.Wrap(err, "marshal pending auth")
	}
	return s.client.Set(ctx, stateKeyPrefix+state, data, ttl).Err()
}

func (s *RedisStore) GetState(ctx context.Context, state string) (PendingAuth, error) {
	val, err := s.client.Get(ctx, stateKeyPrefix+state).Result()
	if err == redis.Nil {
		return PendingAuth{}, ErrNotFound
	}
	if err != nil {
		return PendingAuth{}, errors.Wrap(err, "get state")
	}
	var pending PendingAuth
	if err := json.Unmarshal([]byte(val), &pending); err != nil {
		return PendingAuth{}, errors.Wrap(err, "unmarshal pending auth")
	}
	return pending, nil
}

func (s *RedisStore) DeleteState(ctx context.Context, state string) error {
	return s.client.Del(ctx, stateKeyPrefix+state).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
