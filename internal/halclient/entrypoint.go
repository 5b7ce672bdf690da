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

// Package halclient implements the hypermedia navigation protocol of the
// portal API: entry-point capability discovery, HAL-FORMS template
// execution and navigation history reconstruction. Clients start from the
// entry point URL and resolve every other capability dynamically; no route
// is ever hardcoded.
package halclient

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/halport/portal/internal/hal"
	"github.com/halport/portal/internal/system/constants"
	syshttp "github.com/halport/portal/internal/system/http"
	"github.com/halport/portal/internal/system/log"
)

// defaultEntryPointTTL is how long a fetched entry-point document stays fresh.
const defaultEntryPointTTL = 5 * time.Minute

// EntryPointOptions configures an EntryPoint client.
type EntryPointOptions struct {
	// BaseURL is the entry point URL, the sole fixed URL a client needs to know.
	BaseURL string
	// AuthToken is the credential presented in the Authorization header, if any.
	AuthToken string
	// AuthScheme is the Authorization scheme, defaulting to SessionToken.
	AuthScheme string
	// DefaultHeaders are added to every request.
	DefaultHeaders map[string]string
	// TTL overrides the default cache lifetime.
	TTL time.Duration
	// HTTPClient overrides the transport used for requests.
	HTTPClient syshttp.HTTPClientInterface
}

// EntryPoint discovers and caches the API's root hypermedia document and
// resolves link relations and operation templates by name.
//
// An EntryPoint is constructed explicitly and owns a single cache slot.
// Concurrent first fetches may duplicate the network call; the document is
// read-only so overwriting the slot is harmless.
type EntryPoint struct {
	mu         sync.Mutex
	baseURL    string
	authToken  string
	authScheme string
	headers    map[string]string
	ttl        time.Duration
	client     syshttp.HTTPClientInterface

	cached    *hal.Resource
	fetchedAt time.Time
}

// NewEntryPoint creates a new entry-point client.
func NewEntryPoint(opts EntryPointOptions) *EntryPoint {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultEntryPointTTL
	}

	client := opts.HTTPClient
	if client == nil {
		client = syshttp.GetHTTPClient()
	}

	scheme := opts.AuthScheme
	if scheme == "" {
		scheme = constants.TokenTypeSessionToken
	}

	headers := make(map[string]string, len(opts.DefaultHeaders))
	for name, value := range opts.DefaultHeaders {
		headers[name] = value
	}

	return &EntryPoint{
		baseURL:    opts.BaseURL,
		authToken:  opts.AuthToken,
		authScheme: scheme,
		headers:    headers,
		ttl:        ttl,
		client:     client,
	}
}

// Fetch returns the entry-point document, serving the cached copy while it
// is younger than the TTL. Passing forceRefresh bypasses the cache. Non-2xx
// responses yield a *FetchError; network failures propagate unchanged.
func (e *EntryPoint) Fetch(ctx context.Context, forceRefresh bool) (*hal.Resource, error) {
	e.mu.Lock()
	if !forceRefresh && e.cached != nil && time.Since(e.fetchedAt) < e.ttl {
		cached := e.cached
		e.mu.Unlock()
		return cached, nil
	}
	baseURL := e.baseURL
	e.mu.Unlock()

	resource, err := e.get(ctx, baseURL)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cached = resource
	e.fetchedAt = time.Now()
	e.mu.Unlock()

	return resource, nil
}

// GetLinkHref resolves the first matching relation among the given
// candidates, expanding `{param}` placeholders from params. The candidate
// order defines the fallback priority: the first relation found wins. An
// empty string and false are returned when no relation matches.
func (e *EntryPoint) GetLinkHref(ctx context.Context, rels []string, params map[string]string) (string, bool, error) {
	resource, err := e.Fetch(ctx, false)
	if err != nil {
		return "", false, err
	}

	link := resource.Link(rels...)
	if link == nil {
		return "", false, nil
	}
	return link.Expand(params), true, nil
}

// HasCapability reports whether any of the given relations is declared in
// the entry point's links or templates.
func (e *EntryPoint) HasCapability(ctx context.Context, rels ...string) (bool, error) {
	resource, err := e.Fetch(ctx, false)
	if err != nil {
		return false, err
	}
	return resource.HasCapability(rels...), nil
}

// GetCapabilities returns all link relation names declared by the entry point.
func (e *EntryPoint) GetCapabilities(ctx context.Context) ([]string, error) {
	resource, err := e.Fetch(ctx, false)
	if err != nil {
		return nil, err
	}
	return resource.Capabilities(), nil
}

// GetTemplate returns the named operation template from the entry point.
func (e *EntryPoint) GetTemplate(ctx context.Context, name string) (hal.Template, bool, error) {
	resource, err := e.Fetch(ctx, false)
	if err != nil {
		return hal.Template{}, false, err
	}
	template, ok := resource.Template(name)
	return template, ok, nil
}

// GetTemplateTarget returns the target URL of the named operation template.
func (e *EntryPoint) GetTemplateTarget(ctx context.Context, name string) (string, bool, error) {
	template, ok, err := e.GetTemplate(ctx, name)
	if err != nil || !ok {
		return "", ok, err
	}
	return template.Target, true, nil
}

// HasTemplate reports whether the entry point declares the named template.
func (e *EntryPoint) HasTemplate(ctx context.Context, name string) (bool, error) {
	_, ok, err := e.GetTemplate(ctx, name)
	return ok, err
}

// SetAuthToken updates the credential and invalidates the cache, forcing
// the next Fetch to hit the network.
func (e *EntryPoint) SetAuthToken(token string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.authToken = token
	e.invalidateLocked()
}

// ClearAuthToken removes the credential and invalidates the cache.
func (e *EntryPoint) ClearAuthToken() {
	e.SetAuthToken("")
}

// SetBaseURL changes the entry point URL and invalidates the cache.
func (e *EntryPoint) SetBaseURL(baseURL string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.baseURL = baseURL
	e.invalidateLocked()
}

// ClearCache drops the cached document.
func (e *EntryPoint) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.invalidateLocked()
}

// invalidateLocked drops the cached document. Caller must hold the lock.
func (e *EntryPoint) invalidateLocked() {
	e.cached = nil
	e.fetchedAt = time.Time{}
}

// get performs an HTTP GET for a HAL document.
func (e *EntryPoint) get(ctx context.Context, url string) (*hal.Resource, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "EntryPoint"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	e.applyHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("Failed to close response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{StatusCode: resp.StatusCode, Status: resp.Status, URL: url}
	}

	return decodeResource(resp)
}

// applyHeaders sets the accept, default and authorization headers on a request.
func (e *EntryPoint) applyHeaders(req *http.Request) {
	e.mu.Lock()
	defer e.mu.Unlock()

	req.Header.Set(constants.AcceptHeaderName, constants.AcceptHAL)
	for name, value := range e.headers {
		req.Header.Set(name, value)
	}
	if e.authToken != "" {
		req.Header.Set(constants.AuthorizationHeaderName, e.authScheme+" "+e.authToken)
	}
}
