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

package halclient

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/halport/portal/internal/hal"
)

const dashboardHref = "/"

type HistoryTestSuite struct {
	suite.Suite
	history *History
	sitemap *SitemapNode
}

func TestHistoryTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryTestSuite))
}

func (suite *HistoryTestSuite) SetupTest() {
	suite.history = NewHistory(dashboardHref)
	suite.sitemap = &SitemapNode{
		Items: []SitemapNode{
			{Title: "Dashboard", Href: dashboardHref},
			{
				Title: "Security",
				Items: []SitemapNode{
					{Title: "Sessions", Href: "/users/user-1/sessions"},
					{Title: "API Keys", Href: "/users/user-1/api-keys/list"},
				},
			},
		},
	}
}

func resourceWithSelf(href, title string) *hal.Resource {
	resource := hal.NewResource()
	resource.AddLink(hal.SelfRel, hal.Link{Href: href, Title: title})
	return resource
}

func (suite *HistoryTestSuite) TestTrackSameHrefTwiceIsIdempotent() {
	resource := resourceWithSelf("/users/user-1/sessions", "Sessions")

	suite.history.Track(resource, "/users/user-1/sessions", suite.sitemap)
	suite.history.Track(resource, "/users/user-1/sessions", suite.sitemap)

	suite.Len(suite.history.Entries(), 1)
}

func (suite *HistoryTestSuite) TestMenuNavigationResetsTrail() {
	suite.history.Track(resourceWithSelf(dashboardHref, "Portal"), dashboardHref, suite.sitemap)
	suite.history.Track(resourceWithSelf("/users/user-1/api-keys/list", "API Keys"),
		"/users/user-1/api-keys/list", suite.sitemap)

	suite.history.MarkMenuNavigation()
	suite.history.Track(resourceWithSelf("/users/user-1/sessions", "Sessions"),
		"/users/user-1/sessions", suite.sitemap)

	entries := suite.history.Entries()
	suite.Require().Len(entries, 1)
	suite.Equal(SourceMenu, entries[0].Source)
	suite.Equal([]string{"Security"}, entries[0].ParentGroups)
}

func (suite *HistoryTestSuite) TestMenuFlagConsumedByOneTrack() {
	suite.history.MarkMenuNavigation()
	suite.history.Track(resourceWithSelf("/users/user-1/sessions", "Sessions"),
		"/users/user-1/sessions", suite.sitemap)
	suite.history.Track(resourceWithSelf("/users/user-1/sessions/session-1", "Session"),
		"/users/user-1/sessions/session-1", suite.sitemap)

	entries := suite.history.Entries()
	suite.Require().Len(entries, 2)
	suite.Equal(SourceMenu, entries[0].Source)
	suite.Equal(SourceLink, entries[1].Source)
}

func (suite *HistoryTestSuite) TestDashboardLoadResetsTrail() {
	suite.history.Track(resourceWithSelf("/users/user-1/sessions", "Sessions"),
		"/users/user-1/sessions", suite.sitemap)
	suite.history.Track(resourceWithSelf(dashboardHref, "Portal"), dashboardHref, suite.sitemap)

	entries := suite.history.Entries()
	suite.Require().Len(entries, 1)
	suite.Equal(dashboardHref, entries[0].Href)
}

func (suite *HistoryTestSuite) TestLinkFollowingAppends() {
	suite.history.Track(resourceWithSelf(dashboardHref, "Portal"), dashboardHref, suite.sitemap)
	suite.history.Track(resourceWithSelf("/users/user-1/sessions", "Sessions"),
		"/users/user-1/sessions", suite.sitemap)
	suite.history.Track(resourceWithSelf("/users/user-1/sessions/session-1", "Session"),
		"/users/user-1/sessions/session-1", suite.sitemap)

	entries := suite.history.Entries()
	suite.Require().Len(entries, 3)
	suite.Equal(SourceBrowser, entries[0].Source)
	suite.Equal(SourceLink, entries[1].Source)
	suite.Equal(SourceLink, entries[2].Source)
}

func (suite *HistoryTestSuite) TestTrackSynthesizesSelfLink() {
	resource := hal.NewResource()

	suite.history.Track(resource, "/users/user-1/api-keys/list", suite.sitemap)

	link := resource.Link(hal.SelfRel)
	suite.Require().NotNil(link)
	suite.Equal("Api Keys", link.Title)
}

func (suite *HistoryTestSuite) TestBreadcrumbsOnDashboardOnly() {
	suite.history.Track(resourceWithSelf(dashboardHref, "Portal"), dashboardHref, suite.sitemap)

	crumbs := suite.history.Breadcrumbs()
	suite.Require().Len(crumbs, 1)
	suite.Equal("Dashboard", crumbs[0].Title)
	suite.False(crumbs[0].Clickable)
}

func (suite *HistoryTestSuite) TestBreadcrumbsWithGroupsAndCurrentResource() {
	suite.history.MarkMenuNavigation()
	suite.history.Track(resourceWithSelf("/users/user-1/sessions", "Sessions"),
		"/users/user-1/sessions", suite.sitemap)
	suite.history.Track(resourceWithSelf("/users/user-1/sessions/session-1", "Session"),
		"/users/user-1/sessions/session-1", suite.sitemap)

	crumbs := suite.history.Breadcrumbs()
	suite.Require().Len(crumbs, 4)

	suite.Equal("Dashboard", crumbs[0].Title)
	suite.True(crumbs[0].Clickable)

	suite.Equal("Security", crumbs[1].Title)
	suite.False(crumbs[1].Clickable)

	suite.Equal("Sessions", crumbs[2].Title)
	suite.True(crumbs[2].Clickable)

	suite.Equal("Session", crumbs[3].Title)
	suite.False(crumbs[3].Clickable)
}

func (suite *HistoryTestSuite) TestBreadcrumbsFallbackTitle() {
	resource := hal.NewResource()
	resource.AddLink(hal.SelfRel, hal.Link{Href: "/users/user-1/sessions"})

	suite.history.Track(resource, "/users/user-1/sessions", suite.sitemap)

	crumbs := suite.history.Breadcrumbs()
	suite.Require().Len(crumbs, 2)
	suite.Equal("Resource", crumbs[1].Title)
}

func (suite *HistoryTestSuite) TestResetClearsTrailAndMenuFlag() {
	suite.history.MarkMenuNavigation()
	suite.history.Track(resourceWithSelf("/users/user-1/sessions", "Sessions"),
		"/users/user-1/sessions", suite.sitemap)
	suite.history.Reset()

	suite.Empty(suite.history.Entries())

	suite.history.Track(resourceWithSelf("/users/user-1/sessions", "Sessions"),
		"/users/user-1/sessions", suite.sitemap)
	suite.Equal(SourceBrowser, suite.history.Entries()[0].Source)
}

func (suite *HistoryTestSuite) TestFindParentGroupsTopLevelItem() {
	groups := findParentGroups(suite.sitemap, dashboardHref)
	suite.NotNil(groups)
	suite.Empty(groups)
}

func (suite *HistoryTestSuite) TestFindParentGroupsUnknownHref() {
	suite.Nil(findParentGroups(suite.sitemap, "/unknown"))
}
