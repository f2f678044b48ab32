package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"todolists/internal/core/port"
)

// RedisStore keeps sessions in Redis so that several processes can serve the
// same visitor.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)

	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

func (s *RedisStore) Session(id string) port.Session {
	return &redisSession{store: s, id: id}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

type redisSession struct {
	store *RedisStore
	id    string
}

func (r *redisSession) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.store.client.Get(ctx, sessionKey(r.id, key)).Bytes()

	if errors.Is(err, redis.Nil) {
		return nil, port.ErrSessionKeyNotFound
	}

	if err != nil {
		return nil, err
	}

	return raw, nil
}

func (r *redisSession) Set(ctx context.Context, key string, value []byte) error {
	return r.store.client.Set(ctx, sessionKey(r.id, key), value, r.store.ttl).Err()
}
