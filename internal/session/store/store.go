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

package store

import (
	"fmt"
	"time"

	"github.com/halport/portal/internal/session/model"
	"github.com/halport/portal/internal/system/database/provider"
)

// SessionStoreInterface defines the persistence operations for sessions.
type SessionStoreInterface interface {
	CreateSession(session model.Session) error
	GetSession(userID, sessionID string) (model.Session, error)
	GetSessionCount(userID string) (int, error)
	GetSessionList(userID string, limit, offset int) ([]model.Session, error)
	ExtendSession(userID, sessionID string, lastAccessed, expires time.Time) error
	DeleteSession(userID, sessionID string) error
	DeleteAllSessions(userID string) (int64, error)
	DeleteExpiredSessions(before time.Time) (int64, error)
}

// SessionStore is the default implementation of SessionStoreInterface
// backed by the runtime database.
type SessionStore struct {
	dbProvider provider.DBProviderInterface
}

// NewSessionStore creates a new session store.
func NewSessionStore(dbProvider provider.DBProviderInterface) SessionStoreInterface {
	return &SessionStore{dbProvider: dbProvider}
}

// CreateSession inserts a new session row.
func (s *SessionStore) CreateSession(session model.Session) error {
	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	_, err = dbClient.Execute(
		QueryCreateSession,
		session.SessionID,
		session.UserID,
		session.SessionSignature,
		session.IPAddress,
		session.UserAgent,
		session.DateCreated,
		session.DateExpires,
	)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// GetSession retrieves a session by user ID and session ID.
func (s *SessionStore) GetSession(userID, sessionID string) (model.Session, error) {
	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetSession, userID, sessionID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to execute query: %w", err)
	}

	if len(results) == 0 {
		return model.Session{}, model.ErrSessionNotFound
	}
	if len(results) != 1 {
		return model.Session{}, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	return buildSessionFromResultRow(results[0])
}

// GetSessionCount returns the total number of sessions for a user.
func (s *SessionStore) GetSessionCount(userID string) (int, error) {
	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return 0, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetSessionCount, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w", err)
	}

	var totalCount int
	if len(results) > 0 {
		if count, ok := results[0]["total"].(int64); ok {
			totalCount = int(count)
		} else {
			return 0, fmt.Errorf("unexpected type for total: %T", results[0]["total"])
		}
	}

	return totalCount, nil
}

// GetSessionList returns a page of sessions for a user, newest first.
func (s *SessionStore) GetSessionList(userID string, limit, offset int) ([]model.Session, error) {
	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetSessionList, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to execute paginated query: %w", err)
	}

	sessions := make([]model.Session, 0, len(results))
	for _, row := range results {
		session, err := buildSessionFromResultRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to build session from result row: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

// ExtendSession updates the last accessed and expiry times of a session.
func (s *SessionStore) ExtendSession(userID, sessionID string, lastAccessed, expires time.Time) error {
	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	rowsAffected, err := dbClient.Execute(QueryExtendSession, userID, sessionID, lastAccessed, expires)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if rowsAffected == 0 {
		return model.ErrSessionNotFound
	}

	return nil
}

// DeleteSession deletes a session. Deleting an absent session is not an error.
func (s *SessionStore) DeleteSession(userID, sessionID string) error {
	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	if _, err := dbClient.Execute(QueryDeleteSession, userID, sessionID); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// DeleteAllSessions deletes every session of a user, returning the count removed.
func (s *SessionStore) DeleteAllSessions(userID string) (int64, error) {
	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return 0, fmt.Errorf("failed to get database client: %w", err)
	}

	rowsAffected, err := dbClient.Execute(QueryDeleteAllSessions, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return rowsAffected, nil
}

// DeleteExpiredSessions purges sessions that expired before the given time.
func (s *SessionStore) DeleteExpiredSessions(before time.Time) (int64, error) {
	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return 0, fmt.Errorf("failed to get database client: %w", err)
	}

	rowsAffected, err := dbClient.Execute(QueryDeleteExpiredSessions, before)
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return rowsAffected, nil
}

func buildSessionFromResultRow(row map[string]interface{}) (model.Session, error) {
	sessionID, ok := row["session_id"].(string)
	if !ok {
		return model.Session{}, fmt.Errorf("failed to parse session_id as string")
	}

	userID, ok := row["user_id"].(string)
	if !ok {
		return model.Session{}, fmt.Errorf("failed to parse user_id as string")
	}

	signature, ok := row["session_signature"].(string)
	if !ok {
		return model.Session{}, fmt.Errorf("failed to parse session_signature as string")
	}

	session := model.Session{
		SessionID:        sessionID,
		UserID:           userID,
		SessionSignature: signature,
	}

	if ipAddress, ok := row["ip_address"].(string); ok {
		session.IPAddress = ipAddress
	}
	if userAgent, ok := row["user_agent"].(string); ok {
		session.UserAgent = userAgent
	}
	if dateCreated, ok := row["date_created"].(time.Time); ok {
		session.DateCreated = dateCreated
	}
	if dateExpires, ok := row["date_expires"].(time.Time); ok {
		session.DateExpires = dateExpires
	}
	if lastAccessed, ok := row["date_last_accessed"].(time.Time); ok {
		session.DateLastAccessed = &lastAccessed
	}

	return session, nil
}
