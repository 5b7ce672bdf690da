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

	"github.com/halport/portal/internal/authn"
	authnsvc "github.com/halport/portal/internal/authn/service"
	"github.com/halport/portal/internal/entrypoint/handler"
	"github.com/halport/portal/internal/system/middleware"
)

// EntryPointService defines the service for the API entry point.
type EntryPointService struct {
	entryPointHandler *handler.EntryPointHandler
}

// NewEntryPointService creates a new instance of EntryPointService.
func NewEntryPointService(mux *http.ServeMux) ServiceInterface {
	instance := &EntryPointService{
		entryPointHandler: handler.NewEntryPointHandler(),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the EntryPointService. The entry
// point is served to anonymous callers as well, so authentication is
// resolved but never required.
func (s *EntryPointService) RegisterRoutes(mux *http.ServeMux) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}

	mux.HandleFunc(middleware.WithCORS("OPTIONS /{$}", preflightHandler, opts))
	mux.HandleFunc(middleware.WithCORS("GET /{$}",
		middleware.Chain(s.entryPointHandler.HandleEntryPointRequest,
			authn.WithAuthContext(authnsvc.GetAuthnService())), opts))
}
