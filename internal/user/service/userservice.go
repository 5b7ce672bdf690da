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

// Package service provides the implementation for user management operations.
package service

import (
	"errors"
	"time"

	"github.com/halport/portal/internal/system/database/provider"
	"github.com/halport/portal/internal/system/log"
	"github.com/halport/portal/internal/system/utils"
	"github.com/halport/portal/internal/user/model"
	"github.com/halport/portal/internal/user/store"
)

// UserServiceInterface defines the interface for the user service.
type UserServiceInterface interface {
	GetUser(userID string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	UpsertUserByEmail(email string, attributes []byte) (*model.User, error)
}

// UserService is the default implementation of the UserServiceInterface.
type UserService struct {
	userStore store.UserStoreInterface
}

// GetUserService creates a new instance of UserService.
func GetUserService() UserServiceInterface {
	return &UserService{
		userStore: store.NewUserStore(provider.GetDBProvider()),
	}
}

// NewUserService creates a user service backed by the given store.
func NewUserService(userStore store.UserStoreInterface) UserServiceInterface {
	return &UserService{userStore: userStore}
}

// GetUser retrieves the user with the given ID.
func (us *UserService) GetUser(userID string) (*model.User, error) {
	user, err := us.userStore.GetUser(userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves the user with the given email address.
func (us *UserService) GetUserByEmail(email string) (*model.User, error) {
	user, err := us.userStore.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertUserByEmail returns the user with the given email, creating the
// record on first sight. New users receive the Base role; roles are never
// changed through this path.
func (us *UserService) UpsertUserByEmail(email string, attributes []byte) (*model.User, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "UserService"))

	existing, err := us.userStore.GetUserByEmail(email)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	user := model.User{
		ID:          utils.GenerateUUID(),
		Email:       email,
		Role:        model.RoleBase,
		Attributes:  attributes,
		DateCreated: time.Now().UTC(),
	}

	if err := us.userStore.CreateUser(user); err != nil {
		logger.Error("Failed to create user", log.Error(err))
		return nil, err
	}

	logger.Info("Created user on first authentication", log.String(log.LoggerKeyUserID, user.ID))
	return &user, nil
}
