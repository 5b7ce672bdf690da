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

// Package handler provides the HTTP handlers for authentication operations.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/halport/portal/internal/authn/constants"
	"github.com/halport/portal/internal/authn/model"
	"github.com/halport/portal/internal/authn/service"
	"github.com/halport/portal/internal/hal"
	serverconst "github.com/halport/portal/internal/system/constants"
	"github.com/halport/portal/internal/system/error/apierror"
	"github.com/halport/portal/internal/system/error/serviceerror"
	"github.com/halport/portal/internal/system/jwt"
	"github.com/halport/portal/internal/system/log"
	"github.com/halport/portal/internal/system/utils"
)

const loggerComponentName = "AuthnHandler"

// AuthnHandler is the handler for authentication operations.
type AuthnHandler struct {
	authnService service.AuthnServiceInterface
}

// NewAuthnHandler creates a new instance of AuthnHandler.
func NewAuthnHandler() *AuthnHandler {
	return &AuthnHandler{authnService: service.GetAuthnService()}
}

// NewAuthnHandlerWithService creates an authentication handler using the
// given service.
func NewAuthnHandlerWithService(authnService service.AuthnServiceInterface) *AuthnHandler {
	return &AuthnHandler{authnService: authnService}
}

// HandleAuthenticateRequest handles the federated sign-in request. The
// access token arrives in the Authorization header with the Bearer scheme
// or in the request body.
func (ah *AuthnHandler) HandleAuthenticateRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	var authRequest model.AuthenticateRequest
	if err := utils.DecodeJSONBody(r, &authRequest); err != nil {
		authRequest = model.AuthenticateRequest{}
	}

	if authRequest.AccessToken == "" {
		header := r.Header.Get(serverconst.AuthorizationHeaderName)
		if token, ok := strings.CutPrefix(header, serverconst.TokenTypeBearer+" "); ok {
			authRequest.AccessToken = strings.TrimSpace(token)
		}
	}
	if authRequest.AccessToken == "" {
		writeServiceError(w, logger, &constants.ErrorMissingAccessToken, http.StatusBadRequest)
		return
	}

	authRequest.IPAddress = utils.ExtractClientAddress(r)
	authRequest.UserAgent = r.UserAgent()

	response, err := ah.authnService.Authenticate(authRequest)
	if err != nil {
		if errors.Is(err, jwt.ErrInvalidToken) {
			writeServiceError(w, logger, &constants.ErrorInvalidAccessToken, http.StatusUnauthorized)
			return
		}
		logger.Error("Authentication failed", log.Error(err))
		writeServiceError(w, logger, &constants.ErrorInternalServerError, http.StatusInternalServerError)
		return
	}

	resource := hal.NewResource()
	if err := resource.SetField("sessionToken", response.SessionToken); err != nil {
		logger.Error("Failed to build response", log.Error(err))
		writeServiceError(w, logger, &constants.ErrorInternalServerError, http.StatusInternalServerError)
		return
	}
	if err := resource.SetField("user", response.User); err != nil {
		logger.Error("Failed to build response", log.Error(err))
		writeServiceError(w, logger, &constants.ErrorInternalServerError, http.StatusInternalServerError)
		return
	}

	hal.WriteResource(w, http.StatusOK, resource)
}

// HandleVerifyAPIKeyRequest handles the API key verification request. The
// key is presented in the request body, never in a header.
func (ah *AuthnHandler) HandleVerifyAPIKeyRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	var verifyRequest model.VerifyAPIKeyRequest
	if err := utils.DecodeJSONBody(r, &verifyRequest); err != nil || verifyRequest.APIKey == "" {
		writeServiceError(w, logger, &constants.ErrorMissingAPIKey, http.StatusBadRequest)
		return
	}

	authContext, err := ah.authnService.VerifyAPIKey(verifyRequest.APIKey)
	if err != nil {
		logger.Error("API key verification failed", log.Error(err))
		writeServiceError(w, logger, &constants.ErrorInternalServerError, http.StatusInternalServerError)
		return
	}
	if authContext == nil {
		writeServiceError(w, logger, &constants.ErrorInvalidAPIKey, http.StatusUnauthorized)
		return
	}

	resource := hal.NewResource()
	if err := resource.SetField("valid", true); err != nil {
		logger.Error("Failed to build response", log.Error(err))
		writeServiceError(w, logger, &constants.ErrorInternalServerError, http.StatusInternalServerError)
		return
	}
	if err := resource.SetField("userId", authContext.User.ID); err != nil {
		logger.Error("Failed to build response", log.Error(err))
		writeServiceError(w, logger, &constants.ErrorInternalServerError, http.StatusInternalServerError)
		return
	}
	if err := resource.SetField("description", authContext.Description); err != nil {
		logger.Error("Failed to build response", log.Error(err))
		writeServiceError(w, logger, &constants.ErrorInternalServerError, http.StatusInternalServerError)
		return
	}

	hal.WriteResource(w, http.StatusOK, resource)
}

// HandleSignOutRequest handles the sign-out request, revoking the session
// named by the presented token. Revoking an already-gone session succeeds.
func (ah *AuthnHandler) HandleSignOutRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	header := r.Header.Get(serverconst.AuthorizationHeaderName)
	token, ok := strings.CutPrefix(header, serverconst.TokenTypeSessionToken+" ")
	if !ok {
		writeServiceError(w, logger, &constants.ErrorUnauthenticated, http.StatusUnauthorized)
		return
	}

	err := ah.authnService.Revoke(model.RevokeRequest{
		SessionToken: strings.TrimSpace(token),
		IPAddress:    utils.ExtractClientAddress(r),
		UserAgent:    r.UserAgent(),
	})
	if err != nil {
		logger.Error("Sign-out failed", log.Error(err))
		writeServiceError(w, logger, &constants.ErrorInternalServerError, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError writes a service error with the given status code.
func writeServiceError(w http.ResponseWriter, logger *log.Logger,
	svcErr *serviceerror.ServiceError, statusCode int) {
	if svcErr.Type == serviceerror.ServerErrorType {
		logger.Error("Request failed", log.String("error_code", svcErr.Code))
	}

	utils.WriteJSONError(w, statusCode, apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
	})
}
