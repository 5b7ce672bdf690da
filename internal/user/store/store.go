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

	"github.com/halport/portal/internal/system/database/provider"
	"github.com/halport/portal/internal/system/log"
	"github.com/halport/portal/internal/user/model"
)

// UserStoreInterface defines the persistence operations for user records.
type UserStoreInterface interface {
	CreateUser(user model.User) error
	GetUser(id string) (model.User, error)
	GetUserByEmail(email string) (model.User, error)
	UpdateUserAttributes(id string, attributes []byte) error
	IdentifyUser(filters map[string]interface{}) (*string, error)
}

// UserStore is the default implementation of UserStoreInterface backed by
// the identity database.
type UserStore struct {
	dbProvider provider.DBProviderInterface
}

// NewUserStore creates a new user store.
func NewUserStore(dbProvider provider.DBProviderInterface) UserStoreInterface {
	return &UserStore{dbProvider: dbProvider}
}

// CreateUser inserts a new user record.
func (s *UserStore) CreateUser(user model.User) error {
	dbClient, err := s.dbProvider.GetDBClient("identity")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	attributes := user.Attributes
	if len(attributes) == 0 {
		attributes = []byte("{}")
	}

	_, err = dbClient.Execute(
		QueryCreateUser,
		user.ID,
		user.Email,
		user.Role,
		string(attributes),
		user.DateCreated,
	)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *UserStore) GetUser(id string) (model.User, error) {
	dbClient, err := s.dbProvider.GetDBClient("identity")
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetUserByUserID, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to execute query: %w", err)
	}

	if len(results) == 0 {
		return model.User{}, model.ErrUserNotFound
	}
	if len(results) != 1 {
		return model.User{}, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	return buildUserFromResultRow(results[0])
}

// GetUserByEmail retrieves a user by email address.
func (s *UserStore) GetUserByEmail(email string) (model.User, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "UserStore"))

	dbClient, err := s.dbProvider.GetDBClient("identity")
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetUserByEmail, email)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to execute query: %w", err)
	}

	if len(results) == 0 {
		if logger.IsDebugEnabled() {
			logger.Debug("User not found for email", log.String("email", log.MaskString(email)))
		}
		return model.User{}, model.ErrUserNotFound
	}
	if len(results) != 1 {
		return model.User{}, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	return buildUserFromResultRow(results[0])
}

// UpdateUserAttributes replaces the attribute document of a user.
func (s *UserStore) UpdateUserAttributes(id string, attributes []byte) error {
	dbClient, err := s.dbProvider.GetDBClient("identity")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	rowsAffected, err := dbClient.Execute(QueryUpdateUserAttributes, id, string(attributes))
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if rowsAffected == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// IdentifyUser identifies a user with the given attribute filters.
func (s *UserStore) IdentifyUser(filters map[string]interface{}) (*string, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "UserStore"))

	dbClient, err := s.dbProvider.GetDBClient("identity")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	identifyUserQuery, args, err := buildIdentifyQuery(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to build identify query: %w", err)
	}

	results, err := dbClient.Query(identifyUserQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	if len(results) == 0 {
		if logger.IsDebugEnabled() {
			logger.Debug("User not found with the provided filters", log.Any("filters", maskMapValues(filters)))
		}
		return nil, model.ErrUserNotFound
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	userID, ok := results[0]["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse user_id as string")
	}

	return &userID, nil
}

func buildUserFromResultRow(row map[string]interface{}) (model.User, error) {
	userID, ok := row["user_id"].(string)
	if !ok {
		return model.User{}, fmt.Errorf("failed to parse user_id as string")
	}

	email, ok := row["email"].(string)
	if !ok {
		return model.User{}, fmt.Errorf("failed to parse email as string")
	}

	role, ok := row["role"].(string)
	if !ok {
		return model.User{}, fmt.Errorf("failed to parse role as string")
	}

	var attributes string
	switch v := row["attributes"].(type) {
	case string:
		attributes = v
	case []byte:
		attributes = string(v)
	case nil:
		attributes = "{}"
	default:
		return model.User{}, fmt.Errorf("failed to parse attributes as string")
	}

	user := model.User{
		ID:         userID,
		Email:      email,
		Role:       role,
		Attributes: []byte(attributes),
	}

	if dateCreated, ok := row["date_created"].(time.Time); ok {
		user.DateCreated = dateCreated
	}

	return user, nil
}

// maskMapValues masks the values in a map to prevent sensitive data from
// being logged.
func maskMapValues(input map[string]interface{}) map[string]interface{} {
	masked := make(map[string]interface{})
	for key, value := range input {
		if strValue, ok := value.(string); ok {
			masked[key] = log.MaskString(strValue)
		} else {
			masked[key] = "***"
		}
	}
	return masked
}
