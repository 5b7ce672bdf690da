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

// Package model defines the data structures for API key management.
package model

import (
	"errors"
	"time"
)

// ErrAPIKeyNotFound is returned when no API key matches the lookup.
var ErrAPIKeyNotFound = errors.New("api key not found")

// APIKey represents a long-lived programmatic credential. Only the bcrypt
// hash of the secret is stored; the cleartext key is returned exactly once,
// at creation.
type APIKey struct {
	APIKeyID    string     `json:"apiKeyId"`
	UserID      string     `json:"userId"`
	Description string     `json:"description"`
	SecretHash  string     `json:"-"`
	DateCreated time.Time  `json:"dateCreated"`
	DateExpires *time.Time `json:"dateExpires,omitempty"`
	LastUsed    *time.Time `json:"lastUsed,omitempty"`
}

// IsExpired reports whether the key has passed its optional expiry time.
func (k *APIKey) IsExpired(now time.Time) bool {
	return k.DateExpires != nil && now.After(*k.DateExpires)
}
