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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/halport/portal/internal/authn"
	authnmodel "github.com/halport/portal/internal/authn/model"
	usermodel "github.com/halport/portal/internal/user/model"
)

type SitemapHandlerTestSuite struct {
	suite.Suite
	handler *SitemapHandler
}

func TestSitemapHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SitemapHandlerTestSuite))
}

func (suite *SitemapHandlerTestSuite) SetupTest() {
	suite.handler = NewSitemapHandler()
}

func (suite *SitemapHandlerTestSuite) TestRejectsUnauthenticatedCallers() {
	request := httptest.NewRequest(http.MethodGet, "/sitemap", nil)
	recorder := httptest.NewRecorder()
	suite.handler.HandleSitemapRequest(recorder, request)

	suite.Equal(http.StatusUnauthorized, recorder.Code)
}

func (suite *SitemapHandlerTestSuite) TestRendersNavigationTree() {
	authContext := &authnmodel.AuthContext{
		Type: authnmodel.AuthTypeSession,
		User: &usermodel.User{ID: "user-1", Email: "user@example.com", Role: usermodel.RoleBase},
	}
	request := httptest.NewRequest(http.MethodGet, "/sitemap", nil)
	request = request.WithContext(authn.NewContextWithAuthContext(request.Context(), authContext))
	recorder := httptest.NewRecorder()
	suite.handler.HandleSitemapRequest(recorder, request)

	suite.Require().Equal(http.StatusOK, recorder.Code)
	suite.Contains(recorder.Header().Get("Content-Type"), "application/hal+json")

	var body struct {
		Links map[string]struct {
			Href  string `json:"href"`
			Title string `json:"title"`
		} `json:"_links"`
		Items []node `json:"items"`
	}
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &body))

	suite.Equal("/sitemap", body.Links["self"].Href)
	suite.Require().Len(body.Items, 2)

	dashboard := body.Items[0]
	suite.Equal("Dashboard", dashboard.Title)
	suite.Equal("/", dashboard.Href)
	suite.Empty(dashboard.Items)

	security := body.Items[1]
	suite.Equal("Security", security.Title)
	suite.Empty(security.Href)
	suite.Require().Len(security.Items, 2)
	suite.Equal("Sessions", security.Items[0].Title)
	suite.Equal("/users/user-1/sessions", security.Items[0].Href)
	suite.Equal("API Keys", security.Items[1].Title)
	suite.Equal("/users/user-1/api-keys/list", security.Items[1].Href)
}

func (suite *SitemapHandlerTestSuite) TestHrefsUseTheCallersUserID() {
	authContext := &authnmodel.AuthContext{
		Type: authnmodel.AuthTypeSession,
		User: &usermodel.User{ID: "support-7", Role: usermodel.RoleSupport},
	}
	request := httptest.NewRequest(http.MethodGet, "/sitemap", nil)
	request = request.WithContext(authn.NewContextWithAuthContext(request.Context(), authContext))
	recorder := httptest.NewRecorder()
	suite.handler.HandleSitemapRequest(recorder, request)

	suite.Require().Equal(http.StatusOK, recorder.Code)
	suite.Contains(recorder.Body.String(), "/users/support-7/sessions")
	suite.NotContains(recorder.Body.String(), "{userId}")
}
