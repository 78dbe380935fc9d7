package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "hoops:save:"

// RedisStore keeps each save slot under its own string key.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func redisKey(slot string) string { return redisKeyPrefix + slot }

func (r *RedisStore) Load(ctx context.Context, slot string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, redisKey(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", slot, err)
	}
	return b, nil
}

func (r *RedisStore) Save(ctx context.Context, slot string, blob []byte) error {
	if err := r.rdb.Set(ctx, redisKey(slot), blob, 0).Err(); err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, slot string) error {
	if err := r.rdb.Del(ctx, redisKey(slot)).Err(); err != nil {
		return fmt.Errorf("delete slot %s: %w", slot, err)
	}
	return nil
}

func (r *RedisStore) Close() error { return r.rdb.Close() }
