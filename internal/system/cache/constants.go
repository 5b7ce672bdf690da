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

// cacheType defines the type of cache backend being used.
type cacheType string

const (
	// cacheTypeInMemory represents an in-memory cache backend.
	cacheTypeInMemory cacheType = "inmemory"
	// cacheTypeRedis represents a redis cache backend.
	cacheTypeRedis cacheType = "redis"
)

const (
	// defaultCleanupInterval represents the default interval for cleaning up caches in seconds.
	defaultCleanupInterval = 300
	// defaultCacheTTL represents the default TTL for cache entries in seconds.
	defaultCacheTTL = 3600
	// defaultCacheSize represents the default size for the caches.
	defaultCacheSize = 1000
)

// redisKeyPrefix is the namespace prefix applied to all redis cache keys.
const redisKeyPrefix = "portal:cache:"
