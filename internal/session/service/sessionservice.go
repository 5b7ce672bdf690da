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

// Package service provides the implementation for session management operations.
package service

import (
	authnmodel "github.com/halport/portal/internal/authn/model"
	"github.com/halport/portal/internal/authz"
	"github.com/halport/portal/internal/events"
	"github.com/halport/portal/internal/hal"
	"github.com/halport/portal/internal/session/constants"
	"github.com/halport/portal/internal/session/model"
	"github.com/halport/portal/internal/session/store"
	serverconst "github.com/halport/portal/internal/system/constants"
	"github.com/halport/portal/internal/system/database/provider"
	"github.com/halport/portal/internal/system/error/serviceerror"
	"github.com/halport/portal/internal/system/log"
)

const loggerComponentName = "SessionService"

// SessionListResult is one page of a user's sessions.
type SessionListResult struct {
	Sessions   []model.Session
	TotalCount int
	Offset     int
	Limit      int
}

// SessionServiceInterface defines the interface for session management operations.
type SessionServiceInterface interface {
	ListSessions(authContext *authnmodel.AuthContext, userID string,
		page *hal.PageInstruction) (*SessionListResult, *serviceerror.ServiceError)
	RevokeSession(authContext *authnmodel.AuthContext, userID, sessionID string) *serviceerror.ServiceError
	RevokeAllSessions(authContext *authnmodel.AuthContext, userID string) (int64, *serviceerror.ServiceError)
}

// SessionService is the default implementation of SessionServiceInterface.
type SessionService struct {
	sessionStore   store.SessionStoreInterface
	eventPublisher events.EventPublisherInterface
}

// GetSessionService creates a new instance of SessionService with the
// default collaborators.
func GetSessionService() SessionServiceInterface {
	return &SessionService{
		sessionStore:   store.NewSessionStore(provider.GetDBProvider()),
		eventPublisher: events.GetEventPublisher(),
	}
}

// NewSessionService creates a session service with the given collaborators.
func NewSessionService(sessionStore store.SessionStoreInterface,
	eventPublisher events.EventPublisherInterface) SessionServiceInterface {
	return &SessionService{
		sessionStore:   sessionStore,
		eventPublisher: eventPublisher,
	}
}

// ListSessions returns one page of the target user's sessions. The caller
// must own the sessions or hold the Support role.
func (ss *SessionService) ListSessions(authContext *authnmodel.AuthContext, userID string,
	page *hal.PageInstruction) (*SessionListResult, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if svcErr := authz.CheckUserAccess(authContext, userID); svcErr != nil {
		return nil, svcErr
	}

	offset, limit, err := hal.DecodeCursor(page)
	if err != nil {
		return nil, &constants.ErrorInvalidPagingCursor
	}
	if limit <= 0 {
		limit = serverconst.DefaultPageSize
	}
	if limit > serverconst.MaxPageSize {
		limit = serverconst.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	totalCount, err := ss.sessionStore.GetSessionCount(userID)
	if err != nil {
		logger.Error("Failed to count sessions", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	sessions, err := ss.sessionStore.GetSessionList(userID, limit, offset)
	if err != nil {
		logger.Error("Failed to list sessions", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	return &SessionListResult{
		Sessions:   sessions,
		TotalCount: totalCount,
		Offset:     offset,
		Limit:      limit,
	}, nil
}

// RevokeSession deletes one session of the target user. Deleting an
// already-gone session succeeds.
func (ss *SessionService) RevokeSession(authContext *authnmodel.AuthContext,
	userID, sessionID string) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if svcErr := authz.CheckUserAccess(authContext, userID); svcErr != nil {
		return svcErr
	}

	if err := ss.sessionStore.DeleteSession(userID, sessionID); err != nil {
		logger.Error("Failed to delete session", log.Error(err))
		return &constants.ErrorInternalServerError
	}

	ss.eventPublisher.Publish(events.AuditEvent{
		Type:     events.EventSessionRevoked,
		UserID:   userID,
		Metadata: map[string]string{"sessionId": sessionID},
	})

	logger.Info("Session revoked",
		log.String(log.LoggerKeyUserID, userID),
		log.String(log.LoggerKeySessionID, sessionID))

	return nil
}

// RevokeAllSessions deletes every session of the target user. The operation
// is restricted to session-authenticated callers; API key callers are
// rejected regardless of role.
func (ss *SessionService) RevokeAllSessions(authContext *authnmodel.AuthContext,
	userID string) (int64, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if svcErr := authz.RequireSessionAccess(authContext); svcErr != nil {
		return 0, svcErr
	}
	if svcErr := authz.CheckUserAccess(authContext, userID); svcErr != nil {
		return 0, svcErr
	}

	deleted, err := ss.sessionStore.DeleteAllSessions(userID)
	if err != nil {
		logger.Error("Failed to delete sessions", log.Error(err))
		return 0, &constants.ErrorInternalServerError
	}

	ss.eventPublisher.Publish(events.AuditEvent{
		Type:   events.EventSessionsCleared,
		UserID: userID,
	})

	logger.Info("All sessions revoked", log.String(log.LoggerKeyUserID, userID))

	return deleted, nil
}
