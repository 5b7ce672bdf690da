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

// Package model defines the data structures for portal user records.
package model

import (
	"encoding/json"
	"errors"
	"time"
)

// Roles a portal user can hold. Support users may act on other users'
// resources; Base users only on their own.
const (
	RoleBase    = "Base"
	RoleSupport = "Support"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// User represents a portal user record. Users are created implicitly on
// first successful authentication; there is no public CRUD surface.
type User struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
	DateCreated time.Time       `json:"dateCreated"`
}

// IsSupport reports whether the user holds the elevated Support role.
func (u *User) IsSupport() bool {
	return u.Role == RoleSupport
}
