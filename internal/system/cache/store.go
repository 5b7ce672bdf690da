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
	"reflect"
	"sync"

	"github.com/halport/portal/internal/system/log"
)

// cacheStore is a singleton that holds all typed caches.
type cacheStore struct {
	caches map[string]interface{}
	mu     sync.RWMutex
}

var (
	storeInstance *cacheStore
	storeOnce     sync.Once
)

// getCacheStore returns the singleton instance of the cache store.
func getCacheStore() *cacheStore {
	storeOnce.Do(func() {
		storeInstance = &cacheStore{
			caches: make(map[string]interface{}),
		}
	})
	return storeInstance
}

// GetCache returns a singleton cache for the given type and cache name.
func GetCache[T any](cacheName string) CacheInterface[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CacheStore"))

	cs := getCacheStore()

	var t T
	typeName := reflect.TypeOf(&t).Elem().String()
	cacheKey := cacheName + ":" + typeName

	cs.mu.RLock()
	if c, exists := cs.caches[cacheKey]; exists {
		cs.mu.RUnlock()
		if typed, ok := c.(CacheInterface[T]); ok {
			return typed
		}
		logger.Warn("Type mismatch for cache", log.String("cacheName", cacheName),
			log.String("expectedType", typeName))
		return nil
	}
	cs.mu.RUnlock()

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if c, exists := cs.caches[cacheKey]; exists {
		if typed, ok := c.(CacheInterface[T]); ok {
			return typed
		}
		logger.Warn("Type mismatch for cache", log.String("cacheName", cacheName),
			log.String("expectedType", typeName))
		return nil
	}

	logger.Debug("Creating new cache", log.String("cacheName", cacheName), log.String("type", typeName))
	newC := newCache[T](cacheName)
	cs.caches[cacheKey] = newC

	return newC
}

// forEachCache invokes the provided function for every registered cache.
func forEachCache(fn func(name string, cleanup func())) {
	cs := getCacheStore()

	cs.mu.RLock()
	defer cs.mu.RUnlock()

	for key, c := range cs.caches {
		if cleanable, ok := c.(interface {
			GetName() string
			CleanupExpired()
		}); ok {
			fn(key, cleanable.CleanupExpired)
		}
	}
}

// resetCacheStore is used for testing purposes to reset the cache store state.
func resetCacheStore() {
	if storeInstance != nil {
		storeInstance.mu.Lock()
		storeInstance.caches = make(map[string]interface{})
		storeInstance.mu.Unlock()
	}
}
