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

package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/halport/portal/internal/system/constants"
	"github.com/halport/portal/internal/system/error/apierror"
	"github.com/halport/portal/internal/system/log"
	"github.com/halport/portal/internal/system/utils"
)

// maxOverrideBodySize bounds the request body read when looking for a method override.
const maxOverrideBodySize = 1 << 20

// WithMethodOverride rewrites the request method from the method-override
// body field on POST requests. Clients tunnel PUT and DELETE over POST by
// including the override field in the JSON body; the body is restored so
// downstream handlers can decode it again.
func WithMethodOverride(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Body == nil {
			next(w, r)
			return
		}

		contentType := r.Header.Get(constants.ContentTypeHeaderName)
		if !strings.HasPrefix(contentType, constants.ContentTypeJSON) {
			next(w, r)
			return
		}

		raw, err := io.ReadAll(io.LimitReader(r.Body, maxOverrideBodySize))
		if err != nil {
			log.GetLogger().With(log.String(log.LoggerKeyComponentName, "MethodOverrideMiddleware")).
				Warn("Failed to read request body", log.Error(err))
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(raw))

		var body map[string]any
		if err := json.Unmarshal(raw, &body); err == nil {
			if override, ok := body[constants.MethodOverrideField].(string); ok {
				switch strings.ToUpper(override) {
				case http.MethodPut:
					r.Method = http.MethodPut
				case http.MethodDelete:
					r.Method = http.MethodDelete
				case http.MethodPatch:
					r.Method = http.MethodPatch
				}
			}
		}

		next(w, r)
	}
}

// RequireMethodOverride rejects requests that are still POST after the
// override middleware ran. The POST registration of a destructive route
// exists only as a tunnel for clients that cannot send the real method;
// a plain POST without the override field must not reach the handler.
func RequireMethodOverride(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			utils.WriteJSONError(w, http.StatusMethodNotAllowed, apierror.ErrorResponse{
				Code:    "SRV-1405",
				Message: "Method override required",
				Description: "POST requests to this endpoint must carry the " +
					constants.MethodOverrideField + " field in the JSON body",
			})
			return
		}
		next(w, r)
	}
}
