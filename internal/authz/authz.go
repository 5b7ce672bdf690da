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

// Package authz enforces the ownership and role rules layered on top of
// authentication.
package authz

import (
	"github.com/halport/portal/internal/authn/model"
	"github.com/halport/portal/internal/system/error/serviceerror"
)

// Authorization errors.
var (
	// ErrorForbidden is the error returned when a caller acts on another
	// user's resources without the Support role.
	ErrorForbidden = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTHZ-1403",
		Error:            "Forbidden",
		ErrorDescription: "The authenticated identity is not permitted to act on this user's resources",
	}
	// ErrorSessionAccessRequired is the error returned when a destructive
	// session operation is attempted with API key authentication.
	ErrorSessionAccessRequired = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTHZ-1405",
		Error:            "Forbidden",
		ErrorDescription: "This operation requires session authentication",
	}
)

// CheckUserAccess permits a caller to act on the target user's resources
// only when the authenticated identity is that user or holds the elevated
// Support role.
func CheckUserAccess(authContext *model.AuthContext, targetUserID string) *serviceerror.ServiceError {
	if !authContext.IsAuthenticated() {
		return &ErrorForbidden
	}
	if authContext.User.ID == targetUserID || authContext.User.IsSupport() {
		return nil
	}
	return &ErrorForbidden
}

// RequireSessionAccess permits destructive session operations only for
// session-authenticated callers. API key callers are rejected regardless of
// role.
func RequireSessionAccess(authContext *model.AuthContext) *serviceerror.ServiceError {
	if !authContext.IsAuthenticated() || authContext.Type != model.AuthTypeSession {
		return &ErrorSessionAccessRequired
	}
	return nil
}
