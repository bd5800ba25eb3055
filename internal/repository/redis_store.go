package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisStore struct{ rdb *redis.Client }

// NewRedisStore keeps every entry as a plain Redis string without expiry.
func NewRedisStore(rdb *redis.Client) KVStore { return &redisStore{rdb: rdb} }

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return v, err
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

func (s *redisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
