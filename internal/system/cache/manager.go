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
	"sync"
	"time"

	"github.com/halport/portal/internal/system/config"
	"github.com/halport/portal/internal/system/log"
)

// CacheManagerInterface defines the interface for the centralized cache manager.
type CacheManagerInterface interface {
	Init()
	Stop()
}

// CacheManager runs the centralized cleanup routine over all registered caches.
type CacheManager struct {
	stopCh  chan struct{}
	started bool
	mu      sync.Mutex
}

var (
	managerInstance *CacheManager
	managerOnce     sync.Once
)

// GetCacheManager returns the singleton instance of CacheManager.
func GetCacheManager() CacheManagerInterface {
	managerOnce.Do(func() {
		managerInstance = &CacheManager{
			stopCh: make(chan struct{}),
		}
	})
	return managerInstance
}

// Init starts the background cleanup routine for all registered caches.
func (cm *CacheManager) Init() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CacheManager"))

	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.started {
		return
	}

	cacheConfig := config.GetPortalRuntime().Config.Cache
	if cacheConfig.Disabled {
		logger.Debug("Caching is disabled, skipping cleanup routine")
		return
	}

	interval := cacheConfig.CleanupInterval
	if interval <= 0 {
		interval = defaultCleanupInterval
	}

	cm.started = true
	go cm.cleanupLoop(time.Duration(interval) * time.Second)
	logger.Debug("Cache cleanup routine started", log.Int("intervalSeconds", interval))
}

// Stop terminates the background cleanup routine.
func (cm *CacheManager) Stop() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.started {
		close(cm.stopCh)
		cm.started = false
	}
}

// cleanupLoop periodically removes expired entries from all registered caches.
func (cm *CacheManager) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			forEachCache(func(name string, cleanup func()) {
				cleanup()
			})
		case <-cm.stopCh:
			return
		}
	}
}
