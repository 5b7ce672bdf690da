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

// Package service provides the implementation for API key management operations.
package service

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/halport/portal/internal/apikey/constants"
	"github.com/halport/portal/internal/apikey/model"
	"github.com/halport/portal/internal/apikey/store"
	authnmodel "github.com/halport/portal/internal/authn/model"
	"github.com/halport/portal/internal/authz"
	"github.com/halport/portal/internal/events"
	"github.com/halport/portal/internal/hal"
	serverconst "github.com/halport/portal/internal/system/constants"
	"github.com/halport/portal/internal/system/crypto/hash"
	"github.com/halport/portal/internal/system/database/provider"
	"github.com/halport/portal/internal/system/error/serviceerror"
	"github.com/halport/portal/internal/system/log"
	"github.com/halport/portal/internal/system/utils"
)

const loggerComponentName = "APIKeyService"

// CreatedAPIKey carries a freshly created key together with the cleartext
// compound secret. The secret is never recoverable afterwards.
type CreatedAPIKey struct {
	APIKey model.APIKey
	// Key is the compound `keyID.secret` credential shown once.
	Key string
}

// APIKeyListResult is one page of a user's API keys.
type APIKeyListResult struct {
	APIKeys    []model.APIKey
	TotalCount int
	Offset     int
	Limit      int
}

// APIKeyServiceInterface defines the interface for API key management operations.
type APIKeyServiceInterface interface {
	CreateAPIKey(authContext *authnmodel.AuthContext, userID, description string,
		dateExpires *time.Time) (*CreatedAPIKey, *serviceerror.ServiceError)
	ListAPIKeys(authContext *authnmodel.AuthContext, userID string,
		page *hal.PageInstruction) (*APIKeyListResult, *serviceerror.ServiceError)
	RevokeAPIKey(authContext *authnmodel.AuthContext, userID, apiKeyID string) *serviceerror.ServiceError
	RevokeAPIKeys(authContext *authnmodel.AuthContext, userID string,
		apiKeyIDs []string) (int64, *serviceerror.ServiceError)
}

// APIKeyService is the default implementation of APIKeyServiceInterface.
type APIKeyService struct {
	apiKeyStore    store.APIKeyStoreInterface
	eventPublisher events.EventPublisherInterface
}

// GetAPIKeyService creates a new instance of APIKeyService with the default
// collaborators.
func GetAPIKeyService() APIKeyServiceInterface {
	return &APIKeyService{
		apiKeyStore:    store.NewAPIKeyStore(provider.GetDBProvider()),
		eventPublisher: events.GetEventPublisher(),
	}
}

// NewAPIKeyService creates an API key service with the given collaborators.
func NewAPIKeyService(apiKeyStore store.APIKeyStoreInterface,
	eventPublisher events.EventPublisherInterface) APIKeyServiceInterface {
	return &APIKeyService{
		apiKeyStore:    apiKeyStore,
		eventPublisher: eventPublisher,
	}
}

// CreateAPIKey mints a new API key for the target user. The cleartext
// secret is returned exactly once; only its bcrypt hash is stored.
func (ks *APIKeyService) CreateAPIKey(authContext *authnmodel.AuthContext, userID, description string,
	dateExpires *time.Time) (*CreatedAPIKey, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if svcErr := authz.CheckUserAccess(authContext, userID); svcErr != nil {
		return nil, svcErr
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, &constants.ErrorMissingDescription
	}
	if len(description) > constants.MaxDescriptionLength {
		return nil, &constants.ErrorDescriptionTooLong
	}

	secret, err := hash.GenerateSecret()
	if err != nil {
		logger.Error("Failed to generate API key secret", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	secretHash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash API key secret", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	apiKey := model.APIKey{
		APIKeyID:    utils.GenerateUUID(),
		UserID:      userID,
		Description: description,
		SecretHash:  string(secretHash),
		DateCreated: time.Now().UTC(),
		DateExpires: dateExpires,
	}

	if err := ks.apiKeyStore.CreateAPIKey(apiKey); err != nil {
		logger.Error("Failed to create API key", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	ks.eventPublisher.Publish(events.AuditEvent{
		Type:     events.EventAPIKeyCreated,
		UserID:   userID,
		Metadata: map[string]string{"apiKeyId": apiKey.APIKeyID},
	})

	logger.Info("API key created",
		log.String(log.LoggerKeyUserID, userID),
		log.String(log.LoggerKeyAPIKeyID, apiKey.APIKeyID))

	return &CreatedAPIKey{
		APIKey: apiKey,
		Key:    apiKey.APIKeyID + "." + secret,
	}, nil
}

// ListAPIKeys returns one page of the target user's API keys.
func (ks *APIKeyService) ListAPIKeys(authContext *authnmodel.AuthContext, userID string,
	page *hal.PageInstruction) (*APIKeyListResult, *serviceerror.ServiceError) {
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

	totalCount, err := ks.apiKeyStore.GetAPIKeyCount(userID)
	if err != nil {
		logger.Error("Failed to count API keys", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	apiKeys, err := ks.apiKeyStore.GetAPIKeyList(userID, limit, offset)
	if err != nil {
		logger.Error("Failed to list API keys", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	return &APIKeyListResult{
		APIKeys:    apiKeys,
		TotalCount: totalCount,
		Offset:     offset,
		Limit:      limit,
	}, nil
}

// RevokeAPIKey deletes one API key of the target user. Deleting an
// already-gone key succeeds.
func (ks *APIKeyService) RevokeAPIKey(authContext *authnmodel.AuthContext,
	userID, apiKeyID string) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if svcErr := authz.CheckUserAccess(authContext, userID); svcErr != nil {
		return svcErr
	}

	if err := ks.apiKeyStore.DeleteAPIKey(userID, apiKeyID); err != nil {
		logger.Error("Failed to delete API key", log.Error(err))
		return &constants.ErrorInternalServerError
	}

	ks.eventPublisher.Publish(events.AuditEvent{
		Type:     events.EventAPIKeyRevoked,
		UserID:   userID,
		Metadata: map[string]string{"apiKeyId": apiKeyID},
	})

	logger.Info("API key revoked",
		log.String(log.LoggerKeyUserID, userID),
		log.String(log.LoggerKeyAPIKeyID, apiKeyID))

	return nil
}

// RevokeAPIKeys deletes several API keys of the target user in one operation.
func (ks *APIKeyService) RevokeAPIKeys(authContext *authnmodel.AuthContext, userID string,
	apiKeyIDs []string) (int64, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if svcErr := authz.CheckUserAccess(authContext, userID); svcErr != nil {
		return 0, svcErr
	}

	if len(apiKeyIDs) == 0 {
		return 0, &constants.ErrorMissingAPIKeyIDs
	}

	deleted, err := ks.apiKeyStore.DeleteAPIKeys(userID, apiKeyIDs)
	if err != nil {
		logger.Error("Failed to delete API keys", log.Error(err))
		return 0, &constants.ErrorInternalServerError
	}

	for _, apiKeyID := range apiKeyIDs {
		ks.eventPublisher.Publish(events.AuditEvent{
			Type:     events.EventAPIKeyRevoked,
			UserID:   userID,
			Metadata: map[string]string{"apiKeyId": apiKeyID},
		})
	}

	logger.Info("API keys revoked", log.String(log.LoggerKeyUserID, userID),
		log.Int("count", len(apiKeyIDs)))

	return deleted, nil
}
