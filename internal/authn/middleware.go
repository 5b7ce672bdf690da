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

// Package authn provides request-level authentication for the portal API.
package authn

import (
	"context"
	"net/http"
	"strings"

	"github.com/halport/portal/internal/authn/constants"
	"github.com/halport/portal/internal/authn/model"
	"github.com/halport/portal/internal/authn/service"
	serverconst "github.com/halport/portal/internal/system/constants"
	"github.com/halport/portal/internal/system/error/apierror"
	"github.com/halport/portal/internal/system/log"
	"github.com/halport/portal/internal/system/middleware"
	"github.com/halport/portal/internal/system/utils"
)

// contextKey is the private type for authentication context values.
type contextKey int

const authContextKey contextKey = iota

// WithAuthContext resolves the caller's identity from the Authorization
// header and attaches an AuthContext to the request. Requests without a
// valid credential proceed with an unknown context; enforcement happens in
// RequireAuthenticated or in the services' authorization checks.
func WithAuthContext(authnService service.AuthnServiceInterface) middleware.Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthMiddleware"))

			authContext := &model.AuthContext{
				Type:      model.AuthTypeUnknown,
				IPAddress: utils.ExtractClientAddress(r),
				UserAgent: r.UserAgent(),
			}

			header := r.Header.Get(serverconst.AuthorizationHeaderName)
			if token, ok := strings.CutPrefix(header, serverconst.TokenTypeSessionToken+" "); ok {
				verified, err := authnService.Verify(model.VerifyRequest{
					SessionToken: strings.TrimSpace(token),
					IPAddress:    authContext.IPAddress,
					UserAgent:    authContext.UserAgent,
				})
				if err != nil {
					logger.Error("Session verification failed", log.Error(err))
				} else if verified != nil {
					verified.IPAddress = authContext.IPAddress
					verified.UserAgent = authContext.UserAgent
					authContext = verified
				}
			} else if key, ok := strings.CutPrefix(header, serverconst.TokenTypeAPIKey+" "); ok {
				verified, err := authnService.VerifyAPIKey(strings.TrimSpace(key))
				if err != nil {
					logger.Error("API key verification failed", log.Error(err))
				} else if verified != nil {
					verified.IPAddress = authContext.IPAddress
					verified.UserAgent = authContext.UserAgent
					authContext = verified
				}
			}

			next(w, r.WithContext(NewContextWithAuthContext(r.Context(), authContext)))
		}
	}
}

// RequireAuthenticated rejects requests without a valid credential.
func RequireAuthenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authContext := AuthContextFromRequest(r)
		if !authContext.IsAuthenticated() {
			writeUnauthenticated(w)
			return
		}
		next(w, r)
	}
}

// NewContextWithAuthContext returns a context carrying the given AuthContext.
func NewContextWithAuthContext(ctx context.Context, authContext *model.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, authContext)
}

// AuthContextFromRequest returns the AuthContext attached to the request.
// Requests that did not pass through WithAuthContext get an unknown context.
func AuthContextFromRequest(r *http.Request) *model.AuthContext {
	if authContext, ok := r.Context().Value(authContextKey).(*model.AuthContext); ok {
		return authContext
	}
	return &model.AuthContext{Type: model.AuthTypeUnknown}
}

func writeUnauthenticated(w http.ResponseWriter) {
	utils.WriteJSONError(w, http.StatusUnauthorized, apierror.ErrorResponse{
		Code:        constants.ErrorUnauthenticated.Code,
		Message:     constants.ErrorUnauthenticated.Error,
		Description: constants.ErrorUnauthenticated.ErrorDescription,
	})
}
