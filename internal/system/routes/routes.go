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

// Package routes declares the static route table for the portal API.
// Every href advertised in a HAL document is resolved from this table,
// never assembled ad hoc by handlers.
package routes

import (
	"fmt"
	"strings"
)

// RouteKey identifies a route by resource and operation.
type RouteKey struct {
	Resource  string
	Operation string
}

// Resource names used in the route table.
const (
	ResourceEntryPoint = "entrypoint"
	ResourceSitemap    = "sitemap"
	ResourceAuth       = "auth"
	ResourceSessions   = "sessions"
	ResourceAPIKeys    = "apiKeys"
)

// Operation names used in the route table.
const (
	OperationRoot         = "root"
	OperationAuthenticate = "authenticate"
	OperationVerifyAPIKey = "verifyApiKey"
	OperationSignOut      = "signOut"
	OperationList         = "list"
	OperationCreate       = "create"
	OperationDelete       = "delete"
	OperationDeleteAll    = "deleteAll"
	OperationDeleteMany   = "deleteMany"
)

// table maps (resource, operation) to a path template. Templates use
// `{param}` placeholders compatible with both http.ServeMux patterns and
// HAL templated links.
var table = map[RouteKey]string{
	{ResourceEntryPoint, OperationRoot}:    "/",
	{ResourceSitemap, OperationRoot}:       "/sitemap",
	{ResourceAuth, OperationAuthenticate}:  "/auth/authenticate",
	{ResourceAuth, OperationVerifyAPIKey}:  "/auth/verify",
	{ResourceAuth, OperationSignOut}:       "/auth/sign-out",
	{ResourceSessions, OperationList}:      "/users/{userId}/sessions",
	{ResourceSessions, OperationDelete}:    "/users/{userId}/sessions/{sessionId}",
	{ResourceSessions, OperationDeleteAll}: "/users/{userId}/sessions/delete-all",
	{ResourceAPIKeys, OperationCreate}:     "/users/{userId}/api-keys",
	{ResourceAPIKeys, OperationList}:       "/users/{userId}/api-keys/list",
	{ResourceAPIKeys, OperationDelete}:     "/users/{userId}/api-keys/{apiKeyId}",
	{ResourceAPIKeys, OperationDeleteMany}: "/users/{userId}/api-keys/delete-many",
}

// PathTemplate returns the declared path template for the given resource and operation.
func PathTemplate(resource, operation string) (string, bool) {
	template, ok := table[RouteKey{Resource: resource, Operation: operation}]
	return template, ok
}

// BuildHref resolves the path template for the given resource and operation,
// expanding `{param}` placeholders from the provided parameters.
func BuildHref(resource, operation string, params map[string]string) (string, error) {
	template, ok := PathTemplate(resource, operation)
	if !ok {
		return "", fmt.Errorf("no route declared for %s/%s", resource, operation)
	}

	href := template
	for name, value := range params {
		href = strings.ReplaceAll(href, "{"+name+"}", value)
	}
	if strings.Contains(href, "{") {
		return "", fmt.Errorf("unresolved parameters in route %s/%s: %s", resource, operation, href)
	}
	return href, nil
}
