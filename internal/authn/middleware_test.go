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

package authn

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/halport/portal/internal/authn/model"
	usermodel "github.com/halport/portal/internal/user/model"
)

type mockAuthnService struct {
	mock.Mock
}

func (m *mockAuthnService) Authenticate(request model.AuthenticateRequest) (*model.AuthenticateResponse, error) {
	args := m.Called(request)
	if response := args.Get(0); response != nil {
		return response.(*model.AuthenticateResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthnService) Verify(request model.VerifyRequest) (*model.AuthContext, error) {
	args := m.Called(request)
	if authContext := args.Get(0); authContext != nil {
		return authContext.(*model.AuthContext), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthnService) Revoke(request model.RevokeRequest) error {
	return m.Called(request).Error(0)
}

func (m *mockAuthnService) VerifyAPIKey(apiKey string) (*model.AuthContext, error) {
	args := m.Called(apiKey)
	if authContext := args.Get(0); authContext != nil {
		return authContext.(*model.AuthContext), args.Error(1)
	}
	return nil, args.Error(1)
}

type AuthMiddlewareTestSuite struct {
	suite.Suite
	authnService *mockAuthnService
}

func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (suite *AuthMiddlewareTestSuite) SetupTest() {
	suite.authnService = new(mockAuthnService)
}

func (suite *AuthMiddlewareTestSuite) invoke(authorization string) *model.AuthContext {
	var captured *model.AuthContext
	handler := WithAuthContext(suite.authnService)(func(w http.ResponseWriter, r *http.Request) {
		captured = AuthContextFromRequest(r)
	})

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("User-Agent", "Mozilla/5.0")
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	handler(httptest.NewRecorder(), request)
	return captured
}

func (suite *AuthMiddlewareTestSuite) TestNoCredentialYieldsUnknownContext() {
	authContext := suite.invoke("")
	suite.Require().NotNil(authContext)
	suite.Equal(model.AuthTypeUnknown, authContext.Type)
	suite.False(authContext.IsAuthenticated())
	suite.Equal("Mozilla/5.0", authContext.UserAgent)
}

func (suite *AuthMiddlewareTestSuite) TestSessionTokenScheme() {
	verified := &model.AuthContext{
		Type:       model.AuthTypeSession,
		User:       &usermodel.User{ID: "user-1", Role: usermodel.RoleBase},
		SessionKey: "session-key-1",
	}
	suite.authnService.On("Verify", mock.MatchedBy(func(request model.VerifyRequest) bool {
		return request.SessionToken == "session-key-1.user-1" && request.UserAgent == "Mozilla/5.0"
	})).Return(verified, nil)

	authContext := suite.invoke("SessionToken session-key-1.user-1")
	suite.Require().True(authContext.IsAuthenticated())
	suite.Equal(model.AuthTypeSession, authContext.Type)
	suite.Equal("user-1", authContext.User.ID)
	suite.Equal("Mozilla/5.0", authContext.UserAgent)
}

func (suite *AuthMiddlewareTestSuite) TestAPIKeyScheme() {
	verified := &model.AuthContext{
		Type:     model.AuthTypeAPIKey,
		User:     &usermodel.User{ID: "user-1", Role: usermodel.RoleBase},
		APIKeyID: "key-1",
	}
	suite.authnService.On("VerifyAPIKey", "key-1.secret-value").Return(verified, nil)

	authContext := suite.invoke("APIKey key-1.secret-value")
	suite.Require().True(authContext.IsAuthenticated())
	suite.Equal(model.AuthTypeAPIKey, authContext.Type)
	suite.Equal("key-1", authContext.APIKeyID)
}

func (suite *AuthMiddlewareTestSuite) TestInvalidSessionProceedsUnauthenticated() {
	suite.authnService.On("Verify", mock.Anything).Return(nil, nil)

	authContext := suite.invoke("SessionToken bogus")
	suite.False(authContext.IsAuthenticated())
}

func (suite *AuthMiddlewareTestSuite) TestUnknownSchemeIsIgnored() {
	authContext := suite.invoke("Bearer some-jwt")
	suite.False(authContext.IsAuthenticated())
	suite.authnService.AssertNotCalled(suite.T(), "Verify", mock.Anything)
	suite.authnService.AssertNotCalled(suite.T(), "VerifyAPIKey", mock.Anything)
}

func (suite *AuthMiddlewareTestSuite) TestRequireAuthenticatedRejects() {
	handler := RequireAuthenticated(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest(http.MethodGet, "/sitemap", nil))
	suite.Equal(http.StatusUnauthorized, recorder.Code)
	suite.Contains(recorder.Header().Get("Content-Type"), "application/json")
}

func (suite *AuthMiddlewareTestSuite) TestRequireAuthenticatedPasses() {
	handler := RequireAuthenticated(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	authContext := &model.AuthContext{
		Type: model.AuthTypeSession,
		User: &usermodel.User{ID: "user-1"},
	}
	request := httptest.NewRequest(http.MethodGet, "/sitemap", nil)
	request = request.WithContext(NewContextWithAuthContext(request.Context(), authContext))

	recorder := httptest.NewRecorder()
	handler(recorder, request)
	suite.Equal(http.StatusNoContent, recorder.Code)
}

func (suite *AuthMiddlewareTestSuite) TestAuthContextFromBareRequest() {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	authContext := AuthContextFromRequest(request)
	suite.Require().NotNil(authContext)
	suite.False(authContext.IsAuthenticated())
}
