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

// Package handler provides the HTTP handlers for session management operations.
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/halport/portal/internal/authn"
	authnmodel "github.com/halport/portal/internal/authn/model"
	"github.com/halport/portal/internal/authz"
	"github.com/halport/portal/internal/hal"
	"github.com/halport/portal/internal/session/constants"
	"github.com/halport/portal/internal/session/model"
	"github.com/halport/portal/internal/session/service"
	"github.com/halport/portal/internal/system/error/apierror"
	"github.com/halport/portal/internal/system/error/serviceerror"
	"github.com/halport/portal/internal/system/log"
	"github.com/halport/portal/internal/system/routes"
	"github.com/halport/portal/internal/system/utils"
)

const loggerComponentName = "SessionHandler"

// sessionListRequest is the POST body of the session list operation.
type sessionListRequest struct {
	Page *hal.PageInstruction `json:"page,omitempty"`
}

// SessionHandler is the handler for session management operations.
type SessionHandler struct {
	sessionService service.SessionServiceInterface
}

// NewSessionHandler creates a new instance of SessionHandler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{sessionService: service.GetSessionService()}
}

// NewSessionHandlerWithService creates a session handler using the given service.
func NewSessionHandlerWithService(sessionService service.SessionServiceInterface) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// HandleSessionListRequest handles the list sessions request. Collections
// are requested with POST so the paging instruction travels in the body.
func (sh *SessionHandler) HandleSessionListRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	userID := r.PathValue("userId")
	if userID == "" {
		writeServiceError(w, logger, &constants.ErrorMissingUserID)
		return
	}

	var listRequest sessionListRequest
	if err := utils.DecodeJSONBody(r, &listRequest); err != nil && !errors.Is(err, io.EOF) {
		writeServiceError(w, logger, &constants.ErrorInvalidRequestFormat)
		return
	}

	authContext := authn.AuthContextFromRequest(r)
	result, svcErr := sh.sessionService.ListSessions(authContext, userID, listRequest.Page)
	if svcErr != nil {
		writeServiceError(w, logger, svcErr)
		return
	}

	collection, err := buildSessionCollection(authContext, userID, result)
	if err != nil {
		logger.Error("Failed to build session collection", log.Error(err))
		writeServiceError(w, logger, &constants.ErrorInternalServerError)
		return
	}

	hal.WriteResource(w, http.StatusOK, collection)
	logger.Debug("Successfully listed sessions", log.String(log.LoggerKeyUserID, userID))
}

// HandleSessionDeleteRequest handles the delete session request. The
// operation arrives as a POST with a `_method` override.
func (sh *SessionHandler) HandleSessionDeleteRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	userID := r.PathValue("userId")
	if userID == "" {
		writeServiceError(w, logger, &constants.ErrorMissingUserID)
		return
	}
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		writeServiceError(w, logger, &constants.ErrorMissingSessionID)
		return
	}

	authContext := authn.AuthContextFromRequest(r)
	if svcErr := sh.sessionService.RevokeSession(authContext, userID, sessionID); svcErr != nil {
		writeServiceError(w, logger, svcErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSessionDeleteAllRequest handles the bulk session delete request.
func (sh *SessionHandler) HandleSessionDeleteAllRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	userID := r.PathValue("userId")
	if userID == "" {
		writeServiceError(w, logger, &constants.ErrorMissingUserID)
		return
	}

	authContext := authn.AuthContextFromRequest(r)
	deleted, svcErr := sh.sessionService.RevokeAllSessions(authContext, userID)
	if svcErr != nil {
		writeServiceError(w, logger, svcErr)
		return
	}

	response := hal.NewResource()
	if err := response.SetField("deleted", deleted); err != nil {
		logger.Error("Failed to build response", log.Error(err))
		writeServiceError(w, logger, &constants.ErrorInternalServerError)
		return
	}

	hal.WriteResource(w, http.StatusOK, response)
}

// buildSessionCollection renders one page of sessions as a HAL collection.
func buildSessionCollection(authContext *authnmodel.AuthContext, userID string,
	result *service.SessionListResult) (*hal.Resource, error) {
	selfHref, err := routes.BuildHref(routes.ResourceSessions, routes.OperationList,
		map[string]string{"userId": userID})
	if err != nil {
		return nil, err
	}

	items := make([]hal.Resource, 0, len(result.Sessions))
	for _, session := range result.Sessions {
		item, err := buildSessionResource(userID, session)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	collection, err := hal.NewCollection(selfHref, "Sessions", "sessions", items,
		result.TotalCount, result.Offset, result.Limit)
	if err != nil {
		return nil, err
	}

	collection.AddTemplate("listSessions", hal.Template{
		Title:  "List sessions",
		Method: http.MethodPost,
		Target: selfHref,
		Properties: []hal.TemplateProperty{
			{Name: "page", Prompt: "Page", Type: "object"},
		},
	})

	// API key callers never see the bulk delete operation.
	if authContext.Type == authnmodel.AuthTypeSession {
		deleteAllHref, err := routes.BuildHref(routes.ResourceSessions, routes.OperationDeleteAll,
			map[string]string{"userId": userID})
		if err != nil {
			return nil, err
		}
		collection.AddTemplate("deleteAllSessions", hal.Template{
			Title:  "Sign out everywhere",
			Method: http.MethodDelete,
			Target: deleteAllHref,
		})
	}

	return collection, nil
}

// buildSessionResource renders a single session as a HAL resource.
func buildSessionResource(userID string, session model.Session) (*hal.Resource, error) {
	href, err := routes.BuildHref(routes.ResourceSessions, routes.OperationDelete,
		map[string]string{"userId": userID, "sessionId": session.SessionID})
	if err != nil {
		return nil, err
	}

	resource := hal.NewResource()
	resource.AddLink(hal.SelfRel, hal.Link{Href: href, Title: "Session"})
	resource.AddTemplate("deleteSession", hal.Template{
		Title:  "Revoke session",
		Method: http.MethodDelete,
		Target: href,
	})

	if err := resource.SetField("sessionId", session.SessionID); err != nil {
		return nil, err
	}
	if err := resource.SetField("ipAddress", session.IPAddress); err != nil {
		return nil, err
	}
	if err := resource.SetField("userAgent", session.UserAgent); err != nil {
		return nil, err
	}
	if err := resource.SetField("dateCreated", session.DateCreated); err != nil {
		return nil, err
	}
	if err := resource.SetField("dateExpires", session.DateExpires); err != nil {
		return nil, err
	}
	if session.DateLastAccessed != nil {
		if err := resource.SetField("dateLastAccessed", *session.DateLastAccessed); err != nil {
			return nil, err
		}
	}

	return resource, nil
}

// writeServiceError maps a service error onto the HTTP response.
func writeServiceError(w http.ResponseWriter, logger *log.Logger, svcErr *serviceerror.ServiceError) {
	statusCode := http.StatusInternalServerError
	if svcErr.Type == serviceerror.ClientErrorType {
		switch svcErr.Code {
		case authz.ErrorForbidden.Code, authz.ErrorSessionAccessRequired.Code:
			statusCode = http.StatusForbidden
		default:
			statusCode = http.StatusBadRequest
		}
	}

	if svcErr.Type == serviceerror.ServerErrorType {
		logger.Error("Request failed", log.String("error_code", svcErr.Code))
	}

	utils.WriteJSONError(w, statusCode, apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
	})
}
