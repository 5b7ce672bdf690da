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

// Package constants defines error constants for API key management operations.
package constants

import (
	"github.com/halport/portal/internal/system/error/serviceerror"
)

// MaxDescriptionLength bounds the API key description field.
const MaxDescriptionLength = 120

// Client errors for API key management operations.
var (
	// ErrorInvalidRequestFormat is the error returned when the request format is invalid.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "KEY-1001",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorMissingUserID is the error returned when the user ID is missing.
	ErrorMissingUserID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "KEY-1002",
		Error:            "Invalid request format",
		ErrorDescription: "User ID is required",
	}
	// ErrorMissingAPIKeyID is the error returned when the API key ID is missing.
	ErrorMissingAPIKeyID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "KEY-1003",
		Error:            "Invalid request format",
		ErrorDescription: "API key ID is required",
	}
	// ErrorMissingDescription is the error returned when the description is missing.
	ErrorMissingDescription = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "KEY-1004",
		Error:            "Invalid request format",
		ErrorDescription: "A description is required",
	}
	// ErrorDescriptionTooLong is the error returned when the description exceeds the limit.
	ErrorDescriptionTooLong = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "KEY-1005",
		Error:            "Invalid request format",
		ErrorDescription: "The description exceeds the maximum length",
	}
	// ErrorMissingAPIKeyIDs is the error returned when the bulk delete list is empty.
	ErrorMissingAPIKeyIDs = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "KEY-1006",
		Error:            "Invalid request format",
		ErrorDescription: "At least one API key ID is required",
	}
	// ErrorInvalidPagingCursor is the error returned when a paging cursor cannot be decoded.
	ErrorInvalidPagingCursor = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "KEY-1007",
		Error:            "Invalid paging cursor",
		ErrorDescription: "The paging instruction could not be decoded",
	}
)

// Server errors for API key management operations.
var (
	// ErrorInternalServerError is the error returned for unexpected failures.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "KEY-5001",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
