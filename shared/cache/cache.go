package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"reserva/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"

	clearBatchSize = 100
)

// Nil is returned by Get on a miss.
const Nil = redis.Nil

type RedisCache interface {
	// Get decodes the value under key into dest. Strings are copied raw,
	// anything else is JSON.
	Get(ctx context.Context, key string, dest any) error
	Save(ctx context.Context, key string, value any, ttlSeconds int) error
	// Incr bumps the counter under key and starts its window on the first hit.
	Incr(ctx context.Context, key string, windowSeconds int) (int64, error)
	// Clear deletes every key matching the glob pattern.
	Clear(ctx context.Context, pattern string) error
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

func (c *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) (err error) {
	ctx, scope := c.scope(ctx, "Get", key)
	defer scope.End()

	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if s, ok := dest.(*string); ok {
		*s = raw

		return nil
	}

	if err = json.Unmarshal([]byte(raw), dest); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

func (c *redisCache) Save(ctx context.Context, key string, value any, ttlSeconds int) error {
	ctx, scope := c.scope(ctx, "Save", key)
	defer scope.End()

	payload, err := encode(value)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to marshal cache")

		return err
	}

	if err = c.client.Set(ctx, key, payload, seconds(ttlSeconds)).Err(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Msg("cache stored")

	return nil
}

func (c *redisCache) Incr(ctx context.Context, key string, windowSeconds int) (int64, error) {
	ctx, scope := c.scope(ctx, "Incr", key)
	defer scope.End()

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}

	if count == 1 {
		if err = c.client.Expire(ctx, key, seconds(windowSeconds)).Err(); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("key", key).Msg("failed to start counter window")

			return count, fmt.Errorf("failed to expire counter: %w", err)
		}
	}

	return count, nil
}

func (c *redisCache) Clear(ctx context.Context, pattern string) error {
	ctx, scope := c.scope(ctx, "Clear", pattern)
	defer scope.End()

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	batch := make([]string, 0, clearBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		err := c.client.Del(ctx, batch...).Err()
		batch = batch[:0]

		return err
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())

		if len(batch) == clearBatchSize {
			if err := flush(); err != nil {
				return c.clearFailed(scope, pattern, err)
			}
		}
	}

	if err := iter.Err(); err != nil {
		return c.clearFailed(scope, pattern, err)
	}

	if err := flush(); err != nil {
		return c.clearFailed(scope, pattern, err)
	}

	return nil
}

func (c *redisCache) clearFailed(scope otel.Scope, pattern string, err error) error {
	scope.TraceError(err)
	log.Error().Err(err).Str("pattern", pattern).Msg("failed to clear cache")

	return fmt.Errorf("failed to clear cache: %w", err)
}

func encode(value any) ([]byte, error) {
	if s, ok := value.(string); ok {
		return []byte(s), nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return payload, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
