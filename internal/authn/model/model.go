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

// Package model defines the data structures for authentication operations.
package model

import (
	"time"

	usermodel "github.com/halport/portal/internal/user/model"
)

// AuthType discriminates how a caller was authenticated.
type AuthType string

const (
	// AuthTypeSession marks a caller authenticated with a session token.
	AuthTypeSession AuthType = "session"
	// AuthTypeAPIKey marks a caller authenticated with an API key.
	AuthTypeAPIKey AuthType = "apiKey"
	// AuthTypeUnknown marks an unauthenticated caller.
	AuthTypeUnknown AuthType = "unknown"
)

// AuthContext describes the authenticated caller of a request. A nil User
// with type unknown means no valid credential was presented.
type AuthContext struct {
	Type            AuthType
	User            *usermodel.User
	SessionKey      string
	APIKeyID        string
	Description     string
	IPAddress       string
	UserAgent       string
	AuthenticatedAt time.Time
}

// IsAuthenticated reports whether a valid credential was presented.
func (a *AuthContext) IsAuthenticated() bool {
	return a != nil && a.Type != AuthTypeUnknown && a.User != nil
}

// AuthenticateRequest carries a federated access token for session creation.
type AuthenticateRequest struct {
	AccessToken string `json:"accessToken"`
	IPAddress   string `json:"-"`
	UserAgent   string `json:"-"`
}

// AuthenticateResponse returns the minted compound session token.
type AuthenticateResponse struct {
	SessionToken string          `json:"sessionToken"`
	User         *usermodel.User `json:"user"`
}

// VerifyRequest carries a compound session token for validation.
type VerifyRequest struct {
	SessionToken string
	IPAddress    string
	UserAgent    string
}

// RevokeRequest carries a compound session token for revocation.
type RevokeRequest struct {
	SessionToken string
	IPAddress    string
	UserAgent    string
}

// VerifyAPIKeyRequest carries an API key presented in the request body.
type VerifyAPIKeyRequest struct {
	APIKey string `json:"apiKey"`
}
