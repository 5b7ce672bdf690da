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
	"github.com/halport/portal/internal/session/handler"
	"github.com/halport/portal/internal/system/middleware"
)

// SessionService defines the service for handling session management requests.
type SessionService struct {
	sessionHandler *handler.SessionHandler
}

// NewSessionService creates a new instance of SessionService.
func NewSessionService(mux *http.ServeMux) ServiceInterface {
	instance := &SessionService{
		sessionHandler: handler.NewSessionHandler(),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the SessionService. Destructive
// operations are registered both under their real method and under POST
// behind the method-override middleware, so browser clients that can only
// send GET and POST reach them through the override field.
func (s *SessionService) RegisterRoutes(mux *http.ServeMux) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "POST, DELETE",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}

	withAuth := authn.WithAuthContext(authnsvc.GetAuthnService())

	listSessions := middleware.Chain(s.sessionHandler.HandleSessionListRequest,
		withAuth, authn.RequireAuthenticated)
	mux.HandleFunc(middleware.WithCORS("OPTIONS /users/{userId}/sessions", preflightHandler, opts))
	mux.HandleFunc(middleware.WithCORS("POST /users/{userId}/sessions", listSessions, opts))

	deleteSession := middleware.Chain(s.sessionHandler.HandleSessionDeleteRequest,
		withAuth, authn.RequireAuthenticated)
	mux.HandleFunc(middleware.WithCORS("OPTIONS /users/{userId}/sessions/{sessionId}", preflightHandler, opts))
	mux.HandleFunc(middleware.WithCORS("DELETE /users/{userId}/sessions/{sessionId}", deleteSession, opts))
	mux.HandleFunc(middleware.WithCORS("POST /users/{userId}/sessions/{sessionId}",
		middleware.Chain(deleteSession, middleware.WithMethodOverride, middleware.RequireMethodOverride), opts))

	deleteAllSessions := middleware.Chain(s.sessionHandler.HandleSessionDeleteAllRequest,
		withAuth, authn.RequireAuthenticated)
	mux.HandleFunc(middleware.WithCORS("OPTIONS /users/{userId}/sessions/delete-all", preflightHandler, opts))
	mux.HandleFunc(middleware.WithCORS("DELETE /users/{userId}/sessions/delete-all", deleteAllSessions, opts))
	mux.HandleFunc(middleware.WithCORS("POST /users/{userId}/sessions/delete-all",
		middleware.Chain(deleteAllSessions, middleware.WithMethodOverride, middleware.RequireMethodOverride), opts))
}
