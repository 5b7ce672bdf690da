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

package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/halport/portal/internal/apikey/constants"
	"github.com/halport/portal/internal/apikey/model"
	authnmodel "github.com/halport/portal/internal/authn/model"
	"github.com/halport/portal/internal/authz"
	"github.com/halport/portal/internal/events"
	"github.com/halport/portal/internal/hal"
	serverconst "github.com/halport/portal/internal/system/constants"
	usermodel "github.com/halport/portal/internal/user/model"
)

type mockAPIKeyStore struct {
	mock.Mock
}

func (m *mockAPIKeyStore) CreateAPIKey(apiKey model.APIKey) error {
	return m.Called(apiKey).Error(0)
}

func (m *mockAPIKeyStore) GetAPIKeyByID(apiKeyID string) (model.APIKey, error) {
	args := m.Called(apiKeyID)
	return args.Get(0).(model.APIKey), args.Error(1)
}

func (m *mockAPIKeyStore) GetAPIKeyCount(userID string) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *mockAPIKeyStore) GetAPIKeyList(userID string, limit, offset int) ([]model.APIKey, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]model.APIKey), args.Error(1)
}

func (m *mockAPIKeyStore) TouchAPIKey(apiKeyID string, lastUsed time.Time) error {
	return m.Called(apiKeyID, lastUsed).Error(0)
}

func (m *mockAPIKeyStore) DeleteAPIKey(userID, apiKeyID string) error {
	return m.Called(userID, apiKeyID).Error(0)
}

func (m *mockAPIKeyStore) DeleteAPIKeys(userID string, apiKeyIDs []string) (int64, error) {
	args := m.Called(userID, apiKeyIDs)
	return args.Get(0).(int64), args.Error(1)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) Publish(event events.AuditEvent) {
	m.Called(event)
}

func (m *mockEventPublisher) Close() {
	m.Called()
}

type APIKeyServiceTestSuite struct {
	suite.Suite
	apiKeyStore    *mockAPIKeyStore
	eventPublisher *mockEventPublisher
	service        APIKeyServiceInterface
}

func TestAPIKeyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(APIKeyServiceTestSuite))
}

func (suite *APIKeyServiceTestSuite) SetupTest() {
	suite.apiKeyStore = new(mockAPIKeyStore)
	suite.eventPublisher = new(mockEventPublisher)
	suite.service = NewAPIKeyService(suite.apiKeyStore, suite.eventPublisher)
}

func sessionAuthContext(userID, role string) *authnmodel.AuthContext {
	return &authnmodel.AuthContext{
		Type: authnmodel.AuthTypeSession,
		User: &usermodel.User{ID: userID, Email: userID + "@example.com", Role: role},
	}
}

func (suite *APIKeyServiceTestSuite) TestCreateAPIKey() {
	suite.apiKeyStore.On("CreateAPIKey", mock.AnythingOfType("model.APIKey")).Return(nil)
	suite.eventPublisher.On("Publish", mock.MatchedBy(func(event events.AuditEvent) bool {
		return event.Type == events.EventAPIKeyCreated && event.UserID == "user-1"
	})).Return()

	created, svcErr := suite.service.CreateAPIKey(sessionAuthContext("user-1", usermodel.RoleBase),
		"user-1", "CI key", nil)
	suite.Require().Nil(svcErr)
	suite.Equal("user-1", created.APIKey.UserID)
	suite.Equal("CI key", created.APIKey.Description)
	suite.Nil(created.APIKey.DateExpires)

	// The compound credential is `keyID.secret` and the stored hash must
	// match the cleartext secret.
	parts := strings.SplitN(created.Key, ".", 2)
	suite.Require().Len(parts, 2)
	suite.Equal(created.APIKey.APIKeyID, parts[0])
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(created.APIKey.SecretHash), []byte(parts[1])))
	suite.NotContains(parts[1], ".")
}

func (suite *APIKeyServiceTestSuite) TestCreateAPIKeyTrimsDescription() {
	suite.apiKeyStore.On("CreateAPIKey", mock.AnythingOfType("model.APIKey")).Return(nil)
	suite.eventPublisher.On("Publish", mock.Anything).Return()

	created, svcErr := suite.service.CreateAPIKey(sessionAuthContext("user-1", usermodel.RoleBase),
		"user-1", "  deploy key  ", nil)
	suite.Require().Nil(svcErr)
	suite.Equal("deploy key", created.APIKey.Description)
}

func (suite *APIKeyServiceTestSuite) TestCreateAPIKeyMissingDescription() {
	_, svcErr := suite.service.CreateAPIKey(sessionAuthContext("user-1", usermodel.RoleBase),
		"user-1", "   ", nil)
	suite.Require().NotNil(svcErr)
	suite.Equal(constants.ErrorMissingDescription.Code, svcErr.Code)
	suite.apiKeyStore.AssertNotCalled(suite.T(), "CreateAPIKey", mock.Anything)
}

func (suite *APIKeyServiceTestSuite) TestCreateAPIKeyDescriptionTooLong() {
	_, svcErr := suite.service.CreateAPIKey(sessionAuthContext("user-1", usermodel.RoleBase),
		"user-1", strings.Repeat("x", constants.MaxDescriptionLength+1), nil)
	suite.Require().NotNil(svcErr)
	suite.Equal(constants.ErrorDescriptionTooLong.Code, svcErr.Code)
}

func (suite *APIKeyServiceTestSuite) TestCreateAPIKeyForbiddenForOtherUser() {
	_, svcErr := suite.service.CreateAPIKey(sessionAuthContext("user-2", usermodel.RoleBase),
		"user-1", "CI key", nil)
	suite.Require().NotNil(svcErr)
	suite.Equal(authz.ErrorForbidden.Code, svcErr.Code)
}

func (suite *APIKeyServiceTestSuite) TestCreateAPIKeyWithExpiry() {
	expires := time.Now().UTC().Add(24 * time.Hour)
	suite.apiKeyStore.On("CreateAPIKey", mock.MatchedBy(func(apiKey model.APIKey) bool {
		return apiKey.DateExpires != nil && apiKey.DateExpires.Equal(expires)
	})).Return(nil)
	suite.eventPublisher.On("Publish", mock.Anything).Return()

	created, svcErr := suite.service.CreateAPIKey(sessionAuthContext("user-1", usermodel.RoleBase),
		"user-1", "temporary key", &expires)
	suite.Require().Nil(svcErr)
	suite.Require().NotNil(created.APIKey.DateExpires)
}

func (suite *APIKeyServiceTestSuite) TestListAPIKeys() {
	apiKeys := []model.APIKey{{APIKeyID: "key-1", UserID: "user-1", Description: "CI key"}}
	suite.apiKeyStore.On("GetAPIKeyCount", "user-1").Return(1, nil)
	suite.apiKeyStore.On("GetAPIKeyList", "user-1", serverconst.DefaultPageSize, 0).
		Return(apiKeys, nil)

	result, svcErr := suite.service.ListAPIKeys(sessionAuthContext("user-1", usermodel.RoleBase), "user-1", nil)
	suite.Require().Nil(svcErr)
	suite.Equal(1, result.TotalCount)
	suite.Len(result.APIKeys, 1)
}

func (suite *APIKeyServiceTestSuite) TestListAPIKeysHonorsCursor() {
	suite.apiKeyStore.On("GetAPIKeyCount", "user-1").Return(40, nil)
	suite.apiKeyStore.On("GetAPIKeyList", "user-1", 5, 10).
		Return([]model.APIKey{}, nil)

	result, svcErr := suite.service.ListAPIKeys(sessionAuthContext("user-1", usermodel.RoleBase),
		"user-1", hal.EncodeCursor(10, 5))
	suite.Require().Nil(svcErr)
	suite.Equal(10, result.Offset)
	suite.Equal(5, result.Limit)
}

func (suite *APIKeyServiceTestSuite) TestListAPIKeysMalformedCursor() {
	_, svcErr := suite.service.ListAPIKeys(sessionAuthContext("user-1", usermodel.RoleBase),
		"user-1", &hal.PageInstruction{Cursor: "%%%"})
	suite.Require().NotNil(svcErr)
	suite.Equal(constants.ErrorInvalidPagingCursor.Code, svcErr.Code)
}

func (suite *APIKeyServiceTestSuite) TestListAPIKeysStoreFailure() {
	suite.apiKeyStore.On("GetAPIKeyCount", "user-1").Return(0, errors.New("db down"))

	_, svcErr := suite.service.ListAPIKeys(sessionAuthContext("user-1", usermodel.RoleBase), "user-1", nil)
	suite.Require().NotNil(svcErr)
	suite.Equal(constants.ErrorInternalServerError.Code, svcErr.Code)
}

func (suite *APIKeyServiceTestSuite) TestRevokeAPIKey() {
	suite.apiKeyStore.On("DeleteAPIKey", "user-1", "key-1").Return(nil)
	suite.eventPublisher.On("Publish", mock.MatchedBy(func(event events.AuditEvent) bool {
		return event.Type == events.EventAPIKeyRevoked && event.Metadata["apiKeyId"] == "key-1"
	})).Return()

	svcErr := suite.service.RevokeAPIKey(sessionAuthContext("user-1", usermodel.RoleBase), "user-1", "key-1")
	suite.Nil(svcErr)
}

func (suite *APIKeyServiceTestSuite) TestRevokeAPIKeyForbiddenForOtherUser() {
	svcErr := suite.service.RevokeAPIKey(sessionAuthContext("user-2", usermodel.RoleBase), "user-1", "key-1")
	suite.Require().NotNil(svcErr)
	suite.Equal(authz.ErrorForbidden.Code, svcErr.Code)
	suite.apiKeyStore.AssertNotCalled(suite.T(), "DeleteAPIKey", mock.Anything, mock.Anything)
}

func (suite *APIKeyServiceTestSuite) TestRevokeAPIKeySupportRole() {
	suite.apiKeyStore.On("DeleteAPIKey", "user-1", "key-1").Return(nil)
	suite.eventPublisher.On("Publish", mock.Anything).Return()

	svcErr := suite.service.RevokeAPIKey(sessionAuthContext("support-1", usermodel.RoleSupport), "user-1", "key-1")
	suite.Nil(svcErr)
}

func (suite *APIKeyServiceTestSuite) TestRevokeAPIKeys() {
	ids := []string{"key-1", "key-2"}
	suite.apiKeyStore.On("DeleteAPIKeys", "user-1", ids).Return(int64(2), nil)
	suite.eventPublisher.On("Publish", mock.MatchedBy(func(event events.AuditEvent) bool {
		return event.Type == events.EventAPIKeyRevoked
	})).Return().Times(2)

	deleted, svcErr := suite.service.RevokeAPIKeys(sessionAuthContext("user-1", usermodel.RoleBase), "user-1", ids)
	suite.Require().Nil(svcErr)
	suite.Equal(int64(2), deleted)
	suite.eventPublisher.AssertNumberOfCalls(suite.T(), "Publish", 2)
}

func (suite *APIKeyServiceTestSuite) TestRevokeAPIKeysEmptyList() {
	_, svcErr := suite.service.RevokeAPIKeys(sessionAuthContext("user-1", usermodel.RoleBase), "user-1", nil)
	suite.Require().NotNil(svcErr)
	suite.Equal(constants.ErrorMissingAPIKeyIDs.Code, svcErr.Code)
	suite.apiKeyStore.AssertNotCalled(suite.T(), "DeleteAPIKeys", mock.Anything, mock.Anything)
}
