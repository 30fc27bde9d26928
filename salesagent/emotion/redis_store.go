package emotion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces PAD keys in a shared Redis.
const DefaultRedisPrefix = "axis:pad:"

// RedisStore keeps each vector as a JSON Record under Prefix+key, with no expiry unless TTL
// is set.
type RedisStore struct {
	Client redis.Cmdable
	Prefix string
	TTL    time.Duration
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{Client: client, Prefix: DefaultRedisPrefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) (Vector, bool, error) {
	if key == "" {
		return Vector{}, false, ErrEmptyKey
	}
	data, err := s.Client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Vector{}, false, nil
	}
	if err != nil {
		return Vector{}, false, fmt.Errorf("emotion.RedisStore.Get: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Vector{}, false, fmt.Errorf("emotion.RedisStore.Get: decode %q: %w", key, err)
	}
	return rec.Vector, true, nil
}

func (s *RedisStore) Upsert(ctx context.Context, key string, v Vector) error {
	if key == "" {
		return ErrEmptyKey
	}
	data, err := json.Marshal(Record{Key: key, Vector: v, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("emotion.RedisStore.Upsert: encode: %w", err)
	}
	if err := s.Client.Set(ctx, s.redisKey(key), data, s.TTL).Err(); err != nil {
		return fmt.Errorf("emotion.RedisStore.Upsert: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := s.Client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("emotion.RedisStore.Delete: %w", err)
	}
	return nil
}

func (s *RedisStore) redisKey(key string) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return prefix + key
}

var _ Store = (*RedisStore)(nil)
