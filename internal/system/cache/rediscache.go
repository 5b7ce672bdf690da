/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/halport/portal/internal/system/config"
	"github.com/halport/portal/internal/system/log"
)

var (
	redisClient     *redis.Client
	redisClientOnce sync.Once
)

// getRedisClient returns the shared redis client for all redis backed caches.
func getRedisClient() *redis.Client {
	redisClientOnce.Do(func() {
		redisConfig := config.GetPortalRuntime().Config.Cache.Redis
		redisClient = redis.NewClient(&redis.Options{
			Addr:     redisConfig.Addr,
			Password: redisConfig.Password,
			DB:       redisConfig.DB,
		})
	})
	return redisClient
}

// redisCache implements the internal cache interface backed by redis.
// Entry expiry is delegated to redis TTLs.
type redisCache[T any] struct {
	enabled   bool
	name      string
	client    *redis.Client
	ttl       time.Duration
	hitCount  int64
	missCount int64
	mu        sync.Mutex
}

// newRedisCache creates a new instance of redisCache.
func newRedisCache[T any](name string, enabled bool, ttl time.Duration) internalCacheInterface[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RedisCache"),
		log.String("name", name))

	if !enabled {
		logger.Warn("Redis cache is disabled, returning empty cache")
		return &redisCache[T]{
			name:    name,
			enabled: false,
		}
	}

	cacheTTL := ttl
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL * time.Second
	}

	return &redisCache[T]{
		enabled: true,
		name:    name,
		client:  getRedisClient(),
		ttl:     cacheTTL,
	}
}

// GetName returns the name of the cache.
func (c *redisCache[T]) GetName() string {
	return c.name
}

// IsEnabled returns whether the cache is enabled.
func (c *redisCache[T]) IsEnabled() bool {
	return c.enabled
}

// redisKey builds the namespaced redis key for a cache key.
func (c *redisCache[T]) redisKey(key CacheKey) string {
	return redisKeyPrefix + c.name + ":" + key.ToString()
}

// Set stores a value in redis with the cache TTL.
func (c *redisCache[T]) Set(key CacheKey, value T) error {
	if !c.enabled {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(context.Background(), c.redisKey(key), payload, c.ttl).Err()
}

// Get retrieves a value from redis.
func (c *redisCache[T]) Get(key CacheKey) (T, bool) {
	var zero T
	if !c.enabled {
		return zero, false
	}

	payload, err := c.client.Get(context.Background(), c.redisKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RedisCache")).
				Warn("Failed to read from redis cache", log.String("name", c.name), log.Error(err))
		}
		c.mu.Lock()
		c.missCount++
		c.mu.Unlock()
		return zero, false
	}

	var value T
	if err := json.Unmarshal(payload, &value); err != nil {
		c.mu.Lock()
		c.missCount++
		c.mu.Unlock()
		return zero, false
	}

	c.mu.Lock()
	c.hitCount++
	c.mu.Unlock()
	return value, true
}

// Delete removes a value from redis.
func (c *redisCache[T]) Delete(key CacheKey) error {
	if !c.enabled {
		return nil
	}
	return c.client.Del(context.Background(), c.redisKey(key)).Err()
}

// Clear removes all values belonging to this cache from redis.
func (c *redisCache[T]) Clear() error {
	if !c.enabled {
		return nil
	}

	ctx := context.Background()
	iter := c.client.Scan(ctx, 0, redisKeyPrefix+c.name+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// CleanupExpired is a no-op for redis caches since redis expires keys natively.
func (c *redisCache[T]) CleanupExpired() {}

// GetStats returns the cache statistics.
func (c *redisCache[T]) GetStats() CacheStat {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStat{
		Enabled:   c.enabled,
		HitCount:  c.hitCount,
		MissCount: c.missCount,
	}
}
