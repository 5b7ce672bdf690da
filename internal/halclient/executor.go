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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/halport/portal/internal/hal"
	"github.com/halport/portal/internal/system/constants"
	syshttp "github.com/halport/portal/internal/system/http"
	"github.com/halport/portal/internal/system/log"
)

const contentTypeFormURLEncoded = "application/x-www-form-urlencoded"

// Executor fetches HAL resources and executes HAL-FORMS operation templates
// against their declared targets.
type Executor struct {
	entryPoint *EntryPoint
	client     syshttp.HTTPClientInterface
}

// NewExecutor creates an executor sharing the entry point's credential and
// header configuration.
func NewExecutor(entryPoint *EntryPoint) *Executor {
	return &Executor{
		entryPoint: entryPoint,
		client:     entryPoint.client,
	}
}

// Fetch performs a GET for the HAL resource at the given URL. Non-2xx
// responses yield a *FetchError.
func (x *Executor) Fetch(ctx context.Context, resourceURL string) (*hal.Resource, error) {
	return x.entryPoint.get(ctx, resourceURL)
}

// FetchLink resolves a relation through the entry point and fetches the
// resource it points at. Returns nil without error when the relation is not
// declared, letting callers treat missing capabilities as absent features.
func (x *Executor) FetchLink(ctx context.Context, rels []string, params map[string]string) (*hal.Resource, error) {
	href, ok, err := x.entryPoint.GetLinkHref(ctx, rels, params)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return x.Fetch(ctx, href)
}

// ExecuteTemplate validates data against the template's property contracts,
// applies the declared property transforms and submits the operation to the
// template target.
//
// PUT, DELETE and PATCH operations are tunneled as POST requests carrying
// the real verb lowercased in the `_method` body field, matching servers
// that only accept POST on mutating endpoints. Validation failures are
// returned as a *ValidationError before any network traffic happens.
func (x *Executor) ExecuteTemplate(ctx context.Context, template hal.Template, data map[string]any) (*hal.Resource, error) {
	if fieldErrors := hal.ValidateTemplateData(template, data); len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	payload := hal.ApplyPropertyTransforms(template, data)

	method := strings.ToUpper(template.Method)
	if method == "" {
		method = http.MethodPost
	}

	wireMethod := method
	if method == http.MethodPut || method == http.MethodDelete || method == http.MethodPatch {
		wireMethod = http.MethodPost
		payload[constants.MethodOverrideField] = strings.ToLower(method)
	}

	body, contentType, err := encodeTemplatePayload(template, payload)
	if err != nil {
		return nil, err
	}

	return x.submit(ctx, wireMethod, template.Target, body, contentType)
}

// submit sends the request and decodes a HAL resource from the response.
// A 204 response yields a nil resource.
func (x *Executor) submit(ctx context.Context, method, target string, body []byte, contentType string) (*hal.Resource, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TemplateExecutor"))

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	x.entryPoint.applyHeaders(req)
	req.Header.Set(constants.ContentTypeHeaderName, contentType)

	resp, err := x.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("Failed to close response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{StatusCode: resp.StatusCode, Status: resp.Status, URL: target}
	}

	if resp.StatusCode == http.StatusNoContent || resp.ContentLength == 0 {
		return nil, nil
	}

	return decodeResource(resp)
}

// encodeTemplatePayload serializes the payload per the template content
// type, defaulting to JSON.
func encodeTemplatePayload(template hal.Template, payload map[string]any) ([]byte, string, error) {
	if strings.EqualFold(template.ContentType, contentTypeFormURLEncoded) {
		values := url.Values{}
		for name, value := range payload {
			switch typed := value.(type) {
			case []string:
				for _, item := range typed {
					values.Add(name, item)
				}
			default:
				values.Set(name, fmt.Sprintf("%v", value))
			}
		}
		return []byte(values.Encode()), contentTypeFormURLEncoded, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, "", err
	}
	return body, constants.ContentTypeJSON, nil
}

// decodeResource reads and unmarshals a HAL document from a response body.
func decodeResource(resp *http.Response) (*hal.Resource, error) {
	resource := hal.NewResource()
	if err := json.NewDecoder(resp.Body).Decode(resource); err != nil {
		return nil, fmt.Errorf("failed to decode hypermedia response: %w", err)
	}
	return resource, nil
}
