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

package hal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ResourceTestSuite struct {
	suite.Suite
}

func TestResourceTestSuite(t *testing.T) {
	suite.Run(t, new(ResourceTestSuite))
}

func (suite *ResourceTestSuite) TestUnmarshalSplitsReservedMembers() {
	document := `{
		"_links": {
			"self": {"href": "/users/user-1/sessions", "title": "Sessions"},
			"sitemap": {"href": "/sitemap"}
		},
		"_templates": {
			"listSessions": {"title": "List sessions", "method": "POST", "target": "/users/{userId}/sessions"}
		},
		"_embedded": {
			"sessions": [{"_links": {"self": {"href": "/users/user-1/sessions/session-1"}}}]
		},
		"count": 1
	}`

	resource := NewResource()
	suite.Require().NoError(json.Unmarshal([]byte(document), resource))

	suite.Equal("/users/user-1/sessions", resource.SelfHref())
	suite.Equal("Sessions", resource.SelfTitle())

	template, ok := resource.Template("listSessions")
	suite.Require().True(ok)
	suite.Equal("/users/{userId}/sessions", template.Target)

	suite.Require().Len(resource.Embedded["sessions"], 1)
	suite.Equal("/users/user-1/sessions/session-1", resource.Embedded["sessions"][0].SelfHref())

	var count int
	suite.Require().NoError(json.Unmarshal(resource.Fields["count"], &count))
	suite.Equal(1, count)
	suite.NotContains(resource.Fields, "_links")
}

func (suite *ResourceTestSuite) TestMarshalRoundTrip() {
	resource := NewResource()
	resource.AddLink(SelfRel, Link{Href: "/", Title: "Portal"})
	resource.AddTemplate("authenticate", Template{
		Title:  "Sign in",
		Method: "POST",
		Target: "/auth/authenticate",
	})
	suite.Require().NoError(resource.SetField("status", "ok"))

	data, err := json.Marshal(resource)
	suite.Require().NoError(err)

	decoded := NewResource()
	suite.Require().NoError(json.Unmarshal(data, decoded))
	suite.Equal("/", decoded.SelfHref())
	suite.Equal("ok", decoded.GetStringField("status"))

	_, ok := decoded.Template("authenticate")
	suite.True(ok)
}

func (suite *ResourceTestSuite) TestLinkFallbackPriority() {
	resource := NewResource()
	resource.AddLink("sessions", Link{Href: "/sessions"})
	resource.AddLink("apiKeys", Link{Href: "/api-keys"})

	link := resource.Link("missing", "apiKeys", "sessions")
	suite.Require().NotNil(link)
	suite.Equal("/api-keys", link.Href)

	suite.Nil(resource.Link("absent"))
}

func (suite *ResourceTestSuite) TestSelfHrefFallsBackToSelfTemplate() {
	resource := NewResource()
	resource.AddTemplate(SelfRel, Template{Target: "/users/user-1"})
	suite.Equal("/users/user-1", resource.SelfHref())
}

func (suite *ResourceTestSuite) TestHasCapabilityCoversLinksAndTemplates() {
	resource := NewResource()
	resource.AddLink("sessions", Link{Href: "/sessions"})
	resource.AddTemplate("createApiKey", Template{Target: "/api-keys"})

	suite.True(resource.HasCapability("sessions"))
	suite.True(resource.HasCapability("createApiKey"))
	suite.True(resource.HasCapability("missing", "sessions"))
	suite.False(resource.HasCapability("missing"))
}

func (suite *ResourceTestSuite) TestLinkExpand() {
	link := Link{Href: "/users/{userId}/sessions/{sessionId}", Templated: true}
	expanded := link.Expand(map[string]string{"userId": "user-1", "sessionId": "session-9"})
	suite.Equal("/users/user-1/sessions/session-9", expanded)
}
