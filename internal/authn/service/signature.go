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

package service

import (
	"errors"
	"strings"

	"github.com/halport/portal/internal/system/crypto/hash"
)

// sessionTokenDelimiter separates the session key from the user ID in a
// compound session token. Both parts are UUIDs, which never contain a dot.
const sessionTokenDelimiter = "."

// errMalformedSessionToken is returned when a compound token cannot be split.
var errMalformedSessionToken = errors.New("malformed session token")

// computeSessionSignature derives the keyed fingerprint binding a session
// to the exact client. The same inputs always produce the same signature;
// changing any one of them produces a different one.
func computeSessionSignature(sessionKey, ipAddress, userAgent, salt string) string {
	return hash.HashString(sessionKey + "_" + ipAddress + "_" + userAgent + "_" + salt)
}

// composeSessionToken builds the compound token handed to clients.
func composeSessionToken(sessionKey, userID string) string {
	return sessionKey + sessionTokenDelimiter + userID
}

// parseSessionToken splits a compound token into session key and user ID.
func parseSessionToken(token string) (sessionKey, userID string, err error) {
	parts := strings.SplitN(token, sessionTokenDelimiter, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errMalformedSessionToken
	}
	return parts[0], parts[1], nil
}
