package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RedisSetNXJSON stores value only if key is absent. It reports whether the write happened.
func RedisSetNXJSON(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) (bool, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	return rdb.SetNX(ctx, key, b, ttl).Result()
}

// RedisReplaceJSON overwrites an existing key, keeping its remaining TTL.
// It reports false when the key no longer exists.
func RedisReplaceJSON(ctx context.Context, rdb *redis.Client, key string, value interface{}) (bool, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	_, err = rdb.SetArgs(ctx, key, b, redis.SetArgs{Mode: "XX", KeepTTL: true}).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func RedisGetJSON[T any](ctx context.Context, rdb *redis.Client, key string, dest *T) (bool, error) {
	res, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(res, dest); err != nil {
		return false, err
	}
	return true, nil
}

func RedisDel(ctx context.Context, rdb *redis.Client, keys ...string) error {
	return rdb.Del(ctx, keys...).Err()
}

// RedisIncrWithin increments key and, on its first increment, gives it the
// remaining lifetime of owner so both keys expire together. fallback is used
// when owner has no TTL.
func RedisIncrWithin(ctx context.Context, rdb *redis.Client, key, owner string, fallback time.Duration) (int64, error) {
	n, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		ttl, err := rdb.PTTL(ctx, owner).Result()
		if err != nil {
			return n, err
		}
		if ttl <= 0 {
			ttl = fallback
		}
		if err := rdb.PExpire(ctx, key, ttl).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}
