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

package hal

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FieldError describes a single template validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateTemplateData checks the submitted data against the template's
// declared property constraints and returns the violations in property
// declaration order. Validation is purely local: it never performs network
// calls, never mutates the data and never fails hard. Optional properties
// with empty values skip every constraint except required.
func ValidateTemplateData(template Template, data map[string]any) []FieldError {
	errors := make([]FieldError, 0)

	for _, property := range template.Properties {
		value, present := data[property.Name]
		strValue := stringifyValue(value)
		empty := !present || strValue == ""

		if property.Required && empty {
			errors = append(errors, FieldError{
				Field:   property.Name,
				Message: property.Label() + " is required",
			})
			continue
		}
		if empty {
			continue
		}

		if err := validateValue(property, value, strValue); err != nil {
			errors = append(errors, *err)
		}
	}

	return errors
}

// validateValue applies the non-required constraints to a non-empty value.
func validateValue(property TemplateProperty, value any, strValue string) *FieldError {
	label := property.Label()

	if number, ok := numericValue(value); ok {
		if property.Min != nil && number < *property.Min {
			return &FieldError{Field: property.Name,
				Message: fmt.Sprintf("%s must be at least %s", label, formatNumber(*property.Min))}
		}
		if property.Max != nil && number > *property.Max {
			return &FieldError{Field: property.Name,
				Message: fmt.Sprintf("%s must be at most %s", label, formatNumber(*property.Max))}
		}
	}

	length := utf8.RuneCountInString(strValue)
	if property.MinLength != nil && length < *property.MinLength {
		return &FieldError{Field: property.Name,
			Message: fmt.Sprintf("%s must be at least %d characters", label, *property.MinLength)}
	}
	if property.MaxLength != nil && length > *property.MaxLength {
		return &FieldError{Field: property.Name,
			Message: fmt.Sprintf("%s must be at most %d characters", label, *property.MaxLength)}
	}

	switch property.Type {
	case "email":
		if !emailPattern.MatchString(strValue) {
			return &FieldError{Field: property.Name, Message: label + " must be a valid email address"}
		}
	case "url":
		if parsed, err := url.Parse(strValue); err != nil || !parsed.IsAbs() || parsed.Host == "" {
			return &FieldError{Field: property.Name, Message: label + " must be a valid URL"}
		}
	}

	if property.Regex != "" {
		pattern, err := regexp.Compile(property.Regex)
		if err == nil && !pattern.MatchString(strValue) {
			return &FieldError{Field: property.Name, Message: label + " has an invalid format"}
		}
	}

	return nil
}

// stringifyValue renders a submitted value as a string for emptiness and
// length checks.
func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatNumber(v)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// numericValue extracts a numeric value from the submitted data when possible.
func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		number, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return number, true
	default:
		return 0, false
	}
}

// formatNumber renders a float without a trailing fractional part when whole.
func formatNumber(number float64) string {
	return strconv.FormatFloat(number, 'f', -1, 64)
}
