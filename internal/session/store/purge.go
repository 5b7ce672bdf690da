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

package store

import (
	"sync"
	"time"

	"github.com/halport/portal/internal/system/log"
)

// defaultPurgeInterval is used when no purge interval is configured.
const defaultPurgeInterval = 3600

// SessionPurgerInterface defines the background purge routine for
// expired sessions.
type SessionPurgerInterface interface {
	Start(intervalSeconds int64)
	Stop()
}

// SessionPurger periodically removes sessions past their expiry so the
// session table does not accumulate rows that Verify would reject anyway.
type SessionPurger struct {
	store   SessionStoreInterface
	stopCh  chan struct{}
	started bool
	mu      sync.Mutex
}

// NewSessionPurger creates a purger over the given session store.
func NewSessionPurger(store SessionStoreInterface) SessionPurgerInterface {
	return &SessionPurger{
		store:  store,
		stopCh: make(chan struct{}),
	}
}

// Start launches the background purge routine.
func (p *SessionPurger) Start(intervalSeconds int64) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "SessionPurger"))

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}

	if intervalSeconds <= 0 {
		intervalSeconds = defaultPurgeInterval
	}

	p.started = true
	go p.purgeLoop(time.Duration(intervalSeconds) * time.Second)
	logger.Debug("Session purge routine started", log.Int("intervalSeconds", int(intervalSeconds)))
}

// Stop terminates the background purge routine.
func (p *SessionPurger) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		close(p.stopCh)
		p.started = false
	}
}

func (p *SessionPurger) purgeLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.purgeOnce()
		case <-p.stopCh:
			return
		}
	}
}

func (p *SessionPurger) purgeOnce() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "SessionPurger"))

	deleted, err := p.store.DeleteExpiredSessions(time.Now())
	if err != nil {
		logger.Error("Failed to purge expired sessions", log.Error(err))
		return
	}
	if deleted > 0 {
		logger.Debug("Purged expired sessions", log.Int("count", int(deleted)))
	}
}
