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

// Package cache provides a centralized cache management system for different cache implementations.
package cache

import (
	"sync"
	"time"

	"github.com/halport/portal/internal/system/config"
	"github.com/halport/portal/internal/system/log"
)

// internalCacheInterface defines the common interface for internal cache implementations.
type internalCacheInterface[T any] interface {
	Set(key CacheKey, value T) error
	Get(key CacheKey) (T, bool)
	Delete(key CacheKey) error
	Clear() error
	IsEnabled() bool
	GetStats() CacheStat
	CleanupExpired()
	GetName() string
}

// CacheInterface defines the common interface for cache operations.
type CacheInterface[T any] interface {
	GetName() string
	Set(key CacheKey, value T) error
	Get(key CacheKey) (T, bool)
	Delete(key CacheKey) error
	Clear() error
	IsEnabled() bool
	CleanupExpired()
	GetStats() CacheStat
}

// Cache implements the CacheInterface for individual caches.
type Cache[T any] struct {
	enabled       bool
	cacheName     string
	internalCache internalCacheInterface[T]
	mu            sync.RWMutex
}

// newCache creates a new cache instance.
func newCache[T any](cacheName string) CacheInterface[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Cache"),
		log.String("cacheName", cacheName))

	cacheConfig := config.GetPortalRuntime().Config.Cache
	if cacheConfig.Disabled {
		logger.Debug("Caching is disabled, returning empty")
		return &Cache[T]{
			enabled:   false,
			cacheName: cacheName,
		}
	}

	cacheProperty := getCacheProperty(cacheConfig, cacheName)

	if cacheProperty.Disabled {
		logger.Debug("Individual cache is disabled, returning empty")
		return &Cache[T]{
			enabled:   false,
			cacheName: cacheName,
		}
	}

	logger.Debug("Initializing the cache")

	size := cacheProperty.Size
	if size <= 0 {
		size = cacheConfig.Size
	}

	ttl := cacheProperty.TTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	var internalCache internalCacheInterface[T]
	switch getCacheType(cacheConfig) {
	case cacheTypeRedis:
		internalCache = newRedisCache[T](cacheName, true, time.Duration(ttl)*time.Second)
	case cacheTypeInMemory:
		internalCache = newInMemoryCache[T](cacheName, true, size, time.Duration(ttl)*time.Second)
	default:
		logger.Warn("Unknown cache type, defaulting to in-memory cache")
		internalCache = newInMemoryCache[T](cacheName, true, defaultCacheSize, defaultCacheTTL*time.Second)
	}

	return &Cache[T]{
		enabled:       true,
		cacheName:     cacheName,
		internalCache: internalCache,
	}
}

// GetName returns the name of the cache.
func (c *Cache[T]) GetName() string {
	return c.cacheName
}

// IsEnabled returns whether the cache is enabled.
func (c *Cache[T]) IsEnabled() bool {
	return c.enabled && c.internalCache != nil && c.internalCache.IsEnabled()
}

// Set stores a value in the cache.
func (c *Cache[T]) Set(key CacheKey, value T) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Cache"),
		log.String("cacheName", c.cacheName))

	if c.IsEnabled() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if err := c.internalCache.Set(key, value); err != nil {
			logger.Warn("Failed to set value in the cache", log.String("key", key.ToString()), log.Error(err))
		}
	}
	return nil
}

// Get retrieves a value from the cache.
func (c *Cache[T]) Get(key CacheKey) (T, bool) {
	var zero T
	if !c.IsEnabled() {
		return zero, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.internalCache.Get(key)
}

// Delete removes a value from the cache.
func (c *Cache[T]) Delete(key CacheKey) error {
	if !c.IsEnabled() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.internalCache.Delete(key)
}

// Clear removes all values from the cache.
func (c *Cache[T]) Clear() error {
	if !c.IsEnabled() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.internalCache.Clear()
}

// CleanupExpired removes all expired entries from the cache.
func (c *Cache[T]) CleanupExpired() {
	if !c.IsEnabled() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.internalCache.CleanupExpired()
}

// GetStats returns the cache statistics.
func (c *Cache[T]) GetStats() CacheStat {
	if !c.IsEnabled() {
		return CacheStat{Enabled: false}
	}
	return c.internalCache.GetStats()
}

// getCacheType resolves the configured cache backend type.
func getCacheType(cacheConfig config.CacheConfig) cacheType {
	switch cacheType(cacheConfig.Type) {
	case cacheTypeRedis:
		return cacheTypeRedis
	case cacheTypeInMemory, "":
		return cacheTypeInMemory
	default:
		return cacheType(cacheConfig.Type)
	}
}

// getCacheProperty returns the configuration property for the named cache.
func getCacheProperty(cacheConfig config.CacheConfig, cacheName string) config.CacheProperty {
	for _, property := range cacheConfig.Properties {
		if property.Name == cacheName {
			return property
		}
	}
	return config.CacheProperty{Name: cacheName}
}
