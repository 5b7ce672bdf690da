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

import "github.com/halport/portal/internal/system/utils"

// ApplyPropertyTransforms returns a copy of the submitted data with declared
// field transforms applied. Properties declared with type "array" accept a
// comma separated string and are transformed into a string slice: an empty
// string becomes an empty slice and a value without a separator becomes a
// single element.
func ApplyPropertyTransforms(template Template, data map[string]any) map[string]any {
	transformed := make(map[string]any, len(data))
	for name, value := range data {
		transformed[name] = value
	}

	for _, property := range template.Properties {
		if property.Type != "array" {
			continue
		}
		if raw, ok := transformed[property.Name].(string); ok {
			transformed[property.Name] = utils.ParseStringArray(raw)
		}
	}

	return transformed
}
