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

	"github.com/halport/portal/internal/apikey/model"
	"github.com/halport/portal/internal/system/database/provider"
)

// APIKeyStoreInterface defines the persistence operations for API keys.
type APIKeyStoreInterface interface {
	CreateAPIKey(apiKey model.APIKey) error
	GetAPIKeyByID(apiKeyID string) (model.APIKey, error)
	GetAPIKeyCount(userID string) (int, error)
	GetAPIKeyList(userID string, limit, offset int) ([]model.APIKey, error)
	TouchAPIKey(apiKeyID string, lastUsed time.Time) error
	DeleteAPIKey(userID, apiKeyID string) error
	DeleteAPIKeys(userID string, apiKeyIDs []string) (int64, error)
}

// APIKeyStore is the default implementation of APIKeyStoreInterface backed
// by the runtime database.
type APIKeyStore struct {
	dbProvider provider.DBProviderInterface
}

// NewAPIKeyStore creates a new API key store.
func NewAPIKeyStore(dbProvider provider.DBProviderInterface) APIKeyStoreInterface {
	return &APIKeyStore{dbProvider: dbProvider}
}

// CreateAPIKey inserts a new API key row.
func (s *APIKeyStore) CreateAPIKey(apiKey model.APIKey) error {
	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	var dateExpires interface{}
	if apiKey.DateExpires != nil {
		dateExpires = *apiKey.DateExpires
	}

	_, err = dbClient.Execute(
		QueryCreateAPIKey,
		apiKey.APIKeyID,
		apiKey.UserID,
		apiKey.Description,
		apiKey.SecretHash,
		apiKey.DateCreated,
		dateExpires,
	)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// GetAPIKeyByID retrieves an API key by its ID.
func (s *APIKeyStore) GetAPIKeyByID(apiKeyID string) (model.APIKey, error) {
	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return model.APIKey{}, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetAPIKeyByID, apiKeyID)
	if err != nil {
		return model.APIKey{}, fmt.Errorf("failed to execute query: %w", err)
	}

	if len(results) == 0 {
		return model.APIKey{}, model.ErrAPIKeyNotFound
	}
	if len(results) != 1 {
		return model.APIKey{}, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	return buildAPIKeyFromResultRow(results[0])
}

// GetAPIKeyCount returns the total number of API keys for a user.
func (s *APIKeyStore) GetAPIKeyCount(userID string) (int, error) {
	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return 0, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetAPIKeyCount, userID)
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

// GetAPIKeyList returns a page of API keys for a user, newest first.
func (s *APIKeyStore) GetAPIKeyList(userID string, limit, offset int) ([]model.APIKey, error) {
	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetAPIKeyList, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to execute paginated query: %w", err)
	}

	apiKeys := make([]model.APIKey, 0, len(results))
	for _, row := range results {
		apiKey, err := buildAPIKeyFromResultRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to build api key from result row: %w", err)
		}
		apiKeys = append(apiKeys, apiKey)
	}

	return apiKeys, nil
}

// TouchAPIKey records the time an API key was last used.
func (s *APIKeyStore) TouchAPIKey(apiKeyID string, lastUsed time.Time) error {
	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	if _, err := dbClient.Execute(QueryTouchAPIKey, apiKeyID, lastUsed); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// DeleteAPIKey deletes an API key of a user. Deleting an absent key is not
// an error.
func (s *APIKeyStore) DeleteAPIKey(userID, apiKeyID string) error {
	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	if _, err := dbClient.Execute(QueryDeleteAPIKey, userID, apiKeyID); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// DeleteAPIKeys deletes several API keys of a user, returning the count removed.
func (s *APIKeyStore) DeleteAPIKeys(userID string, apiKeyIDs []string) (int64, error) {
	if len(apiKeyIDs) == 0 {
		return 0, nil
	}

	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		return 0, fmt.Errorf("failed to get database client: %w", err)
	}

	query, args, err := buildBulkDeleteQuery(userID, apiKeyIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to build bulk delete query: %w", err)
	}

	rowsAffected, err := dbClient.Execute(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return rowsAffected, nil
}

func buildAPIKeyFromResultRow(row map[string]interface{}) (model.APIKey, error) {
	apiKeyID, ok := row["api_key_id"].(string)
	if !ok {
		return model.APIKey{}, fmt.Errorf("failed to parse api_key_id as string")
	}

	userID, ok := row["user_id"].(string)
	if !ok {
		return model.APIKey{}, fmt.Errorf("failed to parse user_id as string")
	}

	secretHash, ok := row["secret_hash"].(string)
	if !ok {
		return model.APIKey{}, fmt.Errorf("failed to parse secret_hash as string")
	}

	apiKey := model.APIKey{
		APIKeyID:   apiKeyID,
		UserID:     userID,
		SecretHash: secretHash,
	}

	if description, ok := row["description"].(string); ok {
		apiKey.Description = description
	}
	if dateCreated, ok := row["date_created"].(time.Time); ok {
		apiKey.DateCreated = dateCreated
	}
	if dateExpires, ok := row["date_expires"].(time.Time); ok {
		apiKey.DateExpires = &dateExpires
	}
	if lastUsed, ok := row["last_used"].(time.Time); ok {
		apiKey.LastUsed = &lastUsed
	}

	return apiKey, nil
}
