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

// Package constants defines error constants for session management operations.
package constants

import (
	"github.com/halport/portal/internal/system/error/serviceerror"
)

// Client errors for session management operations.
var (
	// ErrorInvalidRequestFormat is the error returned when the request format is invalid.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SES-1001",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorMissingUserID is the error returned when the user ID is missing.
	ErrorMissingUserID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SES-1002",
		Error:            "Invalid request format",
		ErrorDescription: "User ID is required",
	}
	// ErrorMissingSessionID is the error returned when the session ID is missing.
	ErrorMissingSessionID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SES-1003",
		Error:            "Invalid request format",
		ErrorDescription: "Session ID is required",
	}
	// ErrorInvalidPagingCursor is the error returned when a paging cursor cannot be decoded.
	ErrorInvalidPagingCursor = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SES-1004",
		Error:            "Invalid paging cursor",
		ErrorDescription: "The paging instruction could not be decoded",
	}
)

// Server errors for session management operations.
var (
	// ErrorInternalServerError is the error returned for unexpected failures.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "SES-5001",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
