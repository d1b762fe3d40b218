package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisGateway stores state blobs as plain redis keys under a prefix, with no
// expiration: the store is the durable copy, not a cache.
type RedisGateway struct {
	client *redis.Client
	prefix string
}

func NewRedisGateway(ctx context.Context, addr, password string, db int, prefix string) (*RedisGateway, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisGateway{client: client, prefix: prefix}, nil
}

func (g *RedisGateway) key(key string) string {
	return g.prefix + ":" + key
}

func (g *RedisGateway) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := g.client.Get(ctx, g.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyMissing
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return data, nil
}

func (g *RedisGateway) Save(ctx context.Context, key string, value []byte) error {
	if err := g.client.Set(ctx, g.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (g *RedisGateway) Close() error {
	return g.client.Close()
}
