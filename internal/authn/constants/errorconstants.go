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

// Package constants defines error constants for authentication operations.
package constants

import (
	"github.com/halport/portal/internal/system/error/serviceerror"
)

// Client errors for authentication operations.
var (
	// ErrorInvalidRequestFormat is the error returned when the request format is invalid.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTH-1001",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorMissingAccessToken is the error returned when no access token is provided.
	ErrorMissingAccessToken = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTH-1002",
		Error:            "Invalid request format",
		ErrorDescription: "An access token is required",
	}
	// ErrorInvalidAccessToken is the error returned when access token verification fails.
	ErrorInvalidAccessToken = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTH-1003",
		Error:            "Invalid access token",
		ErrorDescription: "The access token could not be verified against the identity provider",
	}
	// ErrorUnauthenticated is the error returned when no valid credential is presented.
	ErrorUnauthenticated = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTH-1401",
		Error:            "Unauthenticated",
		ErrorDescription: "A valid session token or API key is required",
	}
	// ErrorMissingAPIKey is the error returned when no API key is provided.
	ErrorMissingAPIKey = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTH-1004",
		Error:            "Invalid request format",
		ErrorDescription: "An API key is required",
	}
	// ErrorInvalidAPIKey is the error returned when API key verification fails.
	ErrorInvalidAPIKey = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTH-1005",
		Error:            "Invalid API key",
		ErrorDescription: "The API key could not be verified",
	}
)

// Server errors for authentication operations.
var (
	// ErrorInternalServerError is the error returned for unexpected failures.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "AUTH-5001",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
