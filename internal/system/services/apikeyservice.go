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

package services

import (
	"net/http"

	"github.com/halport/portal/internal/apikey/handler"
	"github.com/halport/portal/internal/authn"
	authnsvc "github.com/halport/portal/internal/authn/service"
	"github.com/halport/portal/internal/system/middleware"
)

// APIKeyService defines the service for handling API key management requests.
type APIKeyService struct {
	apiKeyHandler *handler.APIKeyHandler
}

// NewAPIKeyService creates a new instance of APIKeyService.
func NewAPIKeyService(mux *http.ServeMux) ServiceInterface {
	instance := &APIKeyService{
		apiKeyHandler: handler.NewAPIKeyHandler(),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the APIKeyService. List is a POST
// operation because paging instructions travel in the request body.
func (s *APIKeyService) RegisterRoutes(mux *http.ServeMux) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "POST, DELETE",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}

	withAuth := authn.WithAuthContext(authnsvc.GetAuthnService())

	createAPIKey := middleware.Chain(s.apiKeyHandler.HandleAPIKeyCreateRequest,
		withAuth, authn.RequireAuthenticated)
	mux.HandleFunc(middleware.WithCORS("OPTIONS /users/{userId}/api-keys", preflightHandler, opts))
	mux.HandleFunc(middleware.WithCORS("POST /users/{userId}/api-keys", createAPIKey, opts))

	listAPIKeys := middleware.Chain(s.apiKeyHandler.HandleAPIKeyListRequest,
		withAuth, authn.RequireAuthenticated)
	mux.HandleFunc(middleware.WithCORS("OPTIONS /users/{userId}/api-keys/list", preflightHandler, opts))
	mux.HandleFunc(middleware.WithCORS("POST /users/{userId}/api-keys/list", listAPIKeys, opts))

	deleteAPIKey := middleware.Chain(s.apiKeyHandler.HandleAPIKeyDeleteRequest,
		withAuth, authn.RequireAuthenticated)
	mux.HandleFunc(middleware.WithCORS("OPTIONS /users/{userId}/api-keys/{apiKeyId}", preflightHandler, opts))
	mux.HandleFunc(middleware.WithCORS("DELETE /users/{userId}/api-keys/{apiKeyId}", deleteAPIKey, opts))
	mux.HandleFunc(middleware.WithCORS("POST /users/{userId}/api-keys/{apiKeyId}",
		middleware.Chain(deleteAPIKey, middleware.WithMethodOverride, middleware.RequireMethodOverride), opts))

	deleteAPIKeys := middleware.Chain(s.apiKeyHandler.HandleAPIKeyDeleteManyRequest,
		withAuth, authn.RequireAuthenticated)
	mux.HandleFunc(middleware.WithCORS("OPTIONS /users/{userId}/api-keys/delete-many", preflightHandler, opts))
	mux.HandleFunc(middleware.WithCORS("DELETE /users/{userId}/api-keys/delete-many", deleteAPIKeys, opts))
	mux.HandleFunc(middleware.WithCORS("POST /users/{userId}/api-keys/delete-many",
		middleware.Chain(deleteAPIKeys, middleware.WithMethodOverride, middleware.RequireMethodOverride), opts))
}
