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

package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/halport/portal/internal/authn"
	authnmodel "github.com/halport/portal/internal/authn/model"
	"github.com/halport/portal/internal/authz"
	"github.com/halport/portal/internal/hal"
	"github.com/halport/portal/internal/session/model"
	"github.com/halport/portal/internal/session/service"
	"github.com/halport/portal/internal/system/error/serviceerror"
	usermodel "github.com/halport/portal/internal/user/model"
)

type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) ListSessions(authContext *authnmodel.AuthContext, userID string,
	page *hal.PageInstruction) (*service.SessionListResult, *serviceerror.ServiceError) {
	args := m.Called(authContext, userID, page)
	var result *service.SessionListResult
	if value := args.Get(0); value != nil {
		result = value.(*service.SessionListResult)
	}
	var svcErr *serviceerror.ServiceError
	if value := args.Get(1); value != nil {
		svcErr = value.(*serviceerror.ServiceError)
	}
	return result, svcErr
}

func (m *mockSessionService) RevokeSession(authContext *authnmodel.AuthContext,
	userID, sessionID string) *serviceerror.ServiceError {
	args := m.Called(authContext, userID, sessionID)
	if value := args.Get(0); value != nil {
		return value.(*serviceerror.ServiceError)
	}
	return nil
}

func (m *mockSessionService) RevokeAllSessions(authContext *authnmodel.AuthContext,
	userID string) (int64, *serviceerror.ServiceError) {
	args := m.Called(authContext, userID)
	var svcErr *serviceerror.ServiceError
	if value := args.Get(1); value != nil {
		svcErr = value.(*serviceerror.ServiceError)
	}
	return args.Get(0).(int64), svcErr
}

type SessionHandlerTestSuite struct {
	suite.Suite
	sessionService *mockSessionService
	handler        *SessionHandler
}

func TestSessionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}

func (suite *SessionHandlerTestSuite) SetupTest() {
	suite.sessionService = new(mockSessionService)
	suite.handler = NewSessionHandlerWithService(suite.sessionService)
}

func (suite *SessionHandlerTestSuite) authContext(authType authnmodel.AuthType) *authnmodel.AuthContext {
	return &authnmodel.AuthContext{
		Type: authType,
		User: &usermodel.User{ID: "user-1", Email: "user@example.com", Role: usermodel.RoleBase},
	}
}

func (suite *SessionHandlerTestSuite) newRequest(method, target, body string,
	authContext *authnmodel.AuthContext, pathValues map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if authContext != nil {
		request = request.WithContext(authn.NewContextWithAuthContext(request.Context(), authContext))
	}
	for name, value := range pathValues {
		request.SetPathValue(name, value)
	}
	return request
}

func (suite *SessionHandlerTestSuite) decodeBody(recorder *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func (suite *SessionHandlerTestSuite) TestListSessions() {
	now := time.Now().UTC()
	result := &service.SessionListResult{
		Sessions: []model.Session{{
			SessionID:   "session-1",
			UserID:      "user-1",
			IPAddress:   "198.51.100.7",
			UserAgent:   "Mozilla/5.0",
			DateCreated: now,
			DateExpires: now.Add(time.Hour),
		}},
		TotalCount: 12,
		Offset:     0,
		Limit:      30,
	}
	suite.sessionService.On("ListSessions", mock.Anything, "user-1", (*hal.PageInstruction)(nil)).
		Return(result, nil)

	request := suite.newRequest(http.MethodPost, "/users/user-1/sessions", "",
		suite.authContext(authnmodel.AuthTypeSession), map[string]string{"userId": "user-1"})
	recorder := httptest.NewRecorder()
	suite.handler.HandleSessionListRequest(recorder, request)

	suite.Equal(http.StatusOK, recorder.Code)
	suite.Contains(recorder.Header().Get("Content-Type"), "application/hal+json")
	body := suite.decodeBody(recorder)
	suite.Equal(float64(12), body["count"])
	suite.Contains(body, "paging")

	links := body["_links"].(map[string]any)
	self := links["self"].(map[string]any)
	suite.Equal("/users/user-1/sessions", self["href"])

	embedded := body["_embedded"].(map[string]any)
	items := embedded["sessions"].([]any)
	suite.Require().Len(items, 1)
	item := items[0].(map[string]any)
	suite.Equal("session-1", item["sessionId"])
	itemTemplates := item["_templates"].(map[string]any)
	suite.Contains(itemTemplates, "deleteSession")

	templates := body["_templates"].(map[string]any)
	suite.Contains(templates, "listSessions")
	suite.Contains(templates, "deleteAllSessions")
}

func (suite *SessionHandlerTestSuite) TestListSessionsHidesBulkDeleteFromAPIKeyCallers() {
	result := &service.SessionListResult{Sessions: nil, TotalCount: 0, Offset: 0, Limit: 30}
	suite.sessionService.On("ListSessions", mock.Anything, "user-1", (*hal.PageInstruction)(nil)).
		Return(result, nil)

	request := suite.newRequest(http.MethodPost, "/users/user-1/sessions", "",
		suite.authContext(authnmodel.AuthTypeAPIKey), map[string]string{"userId": "user-1"})
	recorder := httptest.NewRecorder()
	suite.handler.HandleSessionListRequest(recorder, request)

	suite.Equal(http.StatusOK, recorder.Code)
	templates := suite.decodeBody(recorder)["_templates"].(map[string]any)
	suite.Contains(templates, "listSessions")
	suite.NotContains(templates, "deleteAllSessions")
}

func (suite *SessionHandlerTestSuite) TestListSessionsForwardsPagingCursor() {
	cursor := hal.EncodeCursor(30, 10)
	result := &service.SessionListResult{Sessions: nil, TotalCount: 50, Offset: 30, Limit: 10}
	suite.sessionService.On("ListSessions", mock.Anything, "user-1",
		mock.MatchedBy(func(page *hal.PageInstruction) bool {
			return page != nil && page.Cursor == cursor.Cursor
		})).Return(result, nil)

	body, err := json.Marshal(map[string]any{"page": cursor})
	suite.Require().NoError(err)
	request := suite.newRequest(http.MethodPost, "/users/user-1/sessions", string(body),
		suite.authContext(authnmodel.AuthTypeSession), map[string]string{"userId": "user-1"})
	recorder := httptest.NewRecorder()
	suite.handler.HandleSessionListRequest(recorder, request)

	suite.Equal(http.StatusOK, recorder.Code)
}

func (suite *SessionHandlerTestSuite) TestListSessionsForbidden() {
	suite.sessionService.On("ListSessions", mock.Anything, "user-1", (*hal.PageInstruction)(nil)).
		Return(nil, &authz.ErrorForbidden)

	request := suite.newRequest(http.MethodPost, "/users/user-1/sessions", "",
		suite.authContext(authnmodel.AuthTypeSession), map[string]string{"userId": "user-1"})
	recorder := httptest.NewRecorder()
	suite.handler.HandleSessionListRequest(recorder, request)

	suite.Equal(http.StatusForbidden, recorder.Code)
	suite.Equal(authz.ErrorForbidden.Code, suite.decodeBody(recorder)["code"])
}

func (suite *SessionHandlerTestSuite) TestListSessionsMissingUserID() {
	request := suite.newRequest(http.MethodPost, "/users//sessions", "",
		suite.authContext(authnmodel.AuthTypeSession), nil)
	recorder := httptest.NewRecorder()
	suite.handler.HandleSessionListRequest(recorder, request)

	suite.Equal(http.StatusBadRequest, recorder.Code)
	suite.sessionService.AssertNotCalled(suite.T(), "ListSessions",
		mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SessionHandlerTestSuite) TestDeleteSession() {
	suite.sessionService.On("RevokeSession", mock.Anything, "user-1", "session-1").Return(nil)

	request := suite.newRequest(http.MethodDelete, "/users/user-1/sessions/session-1", "",
		suite.authContext(authnmodel.AuthTypeSession),
		map[string]string{"userId": "user-1", "sessionId": "session-1"})
	recorder := httptest.NewRecorder()
	suite.handler.HandleSessionDeleteRequest(recorder, request)

	suite.Equal(http.StatusNoContent, recorder.Code)
}

func (suite *SessionHandlerTestSuite) TestDeleteSessionMissingSessionID() {
	request := suite.newRequest(http.MethodDelete, "/users/user-1/sessions/", "",
		suite.authContext(authnmodel.AuthTypeSession), map[string]string{"userId": "user-1"})
	recorder := httptest.NewRecorder()
	suite.handler.HandleSessionDeleteRequest(recorder, request)

	suite.Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *SessionHandlerTestSuite) TestDeleteAllSessions() {
	suite.sessionService.On("RevokeAllSessions", mock.Anything, "user-1").Return(int64(4), nil)

	request := suite.newRequest(http.MethodDelete, "/users/user-1/sessions/delete-all", "",
		suite.authContext(authnmodel.AuthTypeSession), map[string]string{"userId": "user-1"})
	recorder := httptest.NewRecorder()
	suite.handler.HandleSessionDeleteAllRequest(recorder, request)

	suite.Equal(http.StatusOK, recorder.Code)
	suite.Equal(float64(4), suite.decodeBody(recorder)["deleted"])
}

func (suite *SessionHandlerTestSuite) TestDeleteAllSessionsRejectedForAPIKey() {
	suite.sessionService.On("RevokeAllSessions", mock.Anything, "user-1").
		Return(int64(0), &authz.ErrorSessionAccessRequired)

	request := suite.newRequest(http.MethodDelete, "/users/user-1/sessions/delete-all", "",
		suite.authContext(authnmodel.AuthTypeAPIKey), map[string]string{"userId": "user-1"})
	recorder := httptest.NewRecorder()
	suite.handler.HandleSessionDeleteAllRequest(recorder, request)

	suite.Equal(http.StatusForbidden, recorder.Code)
	suite.Equal(authz.ErrorSessionAccessRequired.Code, suite.decodeBody(recorder)["code"])
}
