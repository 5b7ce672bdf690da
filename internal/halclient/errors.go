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

package halclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/halport/portal/internal/hal"
)

// FetchError represents a non-2xx HTTP response from the portal API.
// Network level failures propagate as-is and are never wrapped in a FetchError.
type FetchError struct {
	StatusCode int
	Status     string
	URL        string
}

// Error returns the string representation of the fetch error.
func (e *FetchError) Error() string {
	return fmt.Sprintf("request to %s failed: %s", e.URL, e.Status)
}

// IsUnauthorized reports whether the error is a 401 fetch error. Embedding
// shells use this to trigger the sign-in redirect convention.
func IsUnauthorized(err error) bool {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// ValidationError reports template data that failed the declared property
// contracts. The operation is never submitted when validation fails.
type ValidationError struct {
	Fields []hal.FieldError
}

// Error returns the string representation of the validation error.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "template data validation failed"
	}
	messages := make([]string, 0, len(e.Fields))
	for _, fieldErr := range e.Fields {
		messages = append(messages, fieldErr.Message)
	}
	return "template data validation failed: " + strings.Join(messages, "; ")
}
