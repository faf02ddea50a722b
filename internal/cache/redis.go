package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sseol-server/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "sseol:descriptor:"

var _ DescriptorCache = (*RedisDescriptorCache)(nil)

// RedisDescriptorCache хранит описания изображений в Redis в виде JSON с TTL.
type RedisDescriptorCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisDescriptorCache создаёт кэш поверх готового клиента.
func NewRedisDescriptorCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisDescriptorCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisDescriptorCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisDescriptorCache"),
	}
}

// Get читает описание. Index в сохранённом описании не значим: его выставляет вызывающий.
func (c *RedisDescriptorCache) Get(ctx context.Context, key string) (domain.ImageDescriptor, error) {
	var d domain.ImageDescriptor
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return d, domain.ErrCacheMiss
		}
		return d, fmt.Errorf("failed to get descriptor from redis: %w", err)
	}
	if err := json.Unmarshal(data, &d); err != nil {
		c.logger.Warn("Corrupted descriptor in redis, ignoring", zap.String("key", key), zap.Error(err))
		return domain.ImageDescriptor{}, domain.ErrCacheMiss
	}
	return d, nil
}

func (c *RedisDescriptorCache) Set(ctx context.Context, key string, descriptor domain.ImageDescriptor) error {
	data, err := json.Marshal(descriptor)
	if err != nil {
		return fmt.Errorf("failed to marshal descriptor: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store descriptor in redis: %w", err)
	}
	return nil
}

// Connect создаёт клиента Redis и проверяет соединение, повторяя ping до maxRetries раз.
func Connect(ctx context.Context, opts *redis.Options, maxRetries int, retryDelay time.Duration, logger *zap.Logger) (*redis.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRetries <= 0 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			logger.Info("Connected to Redis", zap.String("address", opts.Addr), zap.Int("attempt", attempt))
			return client, nil
		}

		_ = client.Close()
		lastErr = fmt.Errorf("unable to ping redis (attempt %d/%d): %w", attempt, maxRetries, err)
		logger.Warn("Redis ping failed, retrying...", zap.Int("attempt", attempt), zap.Error(err))

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}
	return nil, lastErr
}
