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

	"github.com/halport/portal/internal/authn/handler"
	"github.com/halport/portal/internal/system/middleware"
)

// AuthService defines the service for handling authentication requests.
type AuthService struct {
	authnHandler *handler.AuthnHandler
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(mux *http.ServeMux) ServiceInterface {
	instance := &AuthService{
		authnHandler: handler.NewAuthnHandler(),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the AuthService. Authentication
// endpoints carry their credentials in the request itself, so no auth
// middleware is applied here.
func (s *AuthService) RegisterRoutes(mux *http.ServeMux) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "POST",
		AllowedHeaders:   "Content-Type, Authorization, SessionToken",
		AllowCredentials: true,
	}

	mux.HandleFunc(middleware.WithCORS("OPTIONS /auth/authenticate", preflightHandler, opts))
	mux.HandleFunc(middleware.WithCORS("POST /auth/authenticate",
		s.authnHandler.HandleAuthenticateRequest, opts))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /auth/verify", preflightHandler, opts))
	mux.HandleFunc(middleware.WithCORS("POST /auth/verify",
		s.authnHandler.HandleVerifyAPIKeyRequest, opts))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /auth/sign-out", preflightHandler, opts))
	mux.HandleFunc(middleware.WithCORS("POST /auth/sign-out",
		s.authnHandler.HandleSignOutRequest, opts))
}
