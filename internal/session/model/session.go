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

// Package model defines the data structures for session management.
package model

import (
	"errors"
	"time"
)

// ErrSessionNotFound is returned when no session matches the lookup.
var ErrSessionNotFound = errors.New("session not found")

// Session represents an authenticated browser session. The signature binds
// the session to the client's network address and user agent.
type Session struct {
	SessionID        string     `json:"sessionId"`
	UserID           string     `json:"userId"`
	SessionSignature string     `json:"-"`
	IPAddress        string     `json:"ipAddress"`
	UserAgent        string     `json:"userAgent"`
	DateCreated      time.Time  `json:"dateCreated"`
	DateExpires      time.Time  `json:"dateExpires"`
	DateLastAccessed *time.Time `json:"dateLastAccessed,omitempty"`
}

// IsExpired reports whether the session has passed its expiry time.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.DateExpires)
}
