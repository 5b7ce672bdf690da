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

package utils

import "strings"

// ParseStringArray parses a comma separated string into a slice of trimmed,
// non-empty values. An empty input yields an empty slice, and an input
// without a separator yields a single element.
func ParseStringArray(value string) []string {
	result := make([]string, 0)
	if strings.TrimSpace(value) == "" {
		return result
	}
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GetAllowedOrigin returns the matching origin from the allowed origins list,
// or an empty string when the request origin is not allowed.
func GetAllowedOrigin(allowedOrigins []string, requestOrigin string) string {
	for _, origin := range allowedOrigins {
		if strings.EqualFold(strings.TrimRight(origin, "/"), strings.TrimRight(requestOrigin, "/")) {
			return origin
		}
	}
	return ""
}

// TitleCaseSegment converts a kebab-case or snake_case path segment into a
// human readable title, e.g. "api-keys" -> "Api Keys".
func TitleCaseSegment(segment string) string {
	replaced := strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	words := strings.Fields(replaced)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
