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

// Package handler provides the HTTP handler for the navigation sitemap.
package handler

import (
	"net/http"

	"github.com/halport/portal/internal/authn"
	"github.com/halport/portal/internal/hal"
	"github.com/halport/portal/internal/system/log"
	"github.com/halport/portal/internal/system/routes"
)

const loggerComponentName = "SitemapHandler"

// node is one entry in the sitemap tree. Leaf nodes carry an href, group
// nodes carry child items.
type node struct {
	Title string `json:"title"`
	Href  string `json:"href,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Items []node `json:"items,omitempty"`
}

// SitemapHandler is the handler for the navigation sitemap.
type SitemapHandler struct{}

// NewSitemapHandler creates a new instance of SitemapHandler.
func NewSitemapHandler() *SitemapHandler {
	return &SitemapHandler{}
}

// HandleSitemapRequest renders the navigation tree for the authenticated
// user. Hrefs are resolved from the route table with the caller's own user
// ID, so the client can navigate without knowing any URL structure.
func (sh *SitemapHandler) HandleSitemapRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	authContext := authn.AuthContextFromRequest(r)
	if !authContext.IsAuthenticated() {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	resource, err := buildSitemap(authContext.User.ID)
	if err != nil {
		logger.Error("Failed to build sitemap", log.Error(err))
		http.Error(w, "Failed to build sitemap", http.StatusInternalServerError)
		return
	}

	hal.WriteResource(w, http.StatusOK, resource)
}

// buildSitemap assembles the navigation tree for the given user.
func buildSitemap(userID string) (*hal.Resource, error) {
	params := map[string]string{"userId": userID}

	dashboardHref, err := routes.BuildHref(routes.ResourceEntryPoint, routes.OperationRoot, nil)
	if err != nil {
		return nil, err
	}
	sessionsHref, err := routes.BuildHref(routes.ResourceSessions, routes.OperationList, params)
	if err != nil {
		return nil, err
	}
	apiKeysHref, err := routes.BuildHref(routes.ResourceAPIKeys, routes.OperationList, params)
	if err != nil {
		return nil, err
	}

	items := []node{
		{Title: "Dashboard", Href: dashboardHref, Icon: "home"},
		{
			Title: "Security",
			Icon:  "shield",
			Items: []node{
				{Title: "Sessions", Href: sessionsHref, Icon: "devices"},
				{Title: "API Keys", Href: apiKeysHref, Icon: "key"},
			},
		},
	}

	resource := hal.NewResource()
	selfHref, err := routes.BuildHref(routes.ResourceSitemap, routes.OperationRoot, nil)
	if err != nil {
		return nil, err
	}
	resource.AddLink(hal.SelfRel, hal.Link{Href: selfHref, Title: "Sitemap"})
	if err := resource.SetField("items", items); err != nil {
		return nil, err
	}
	return resource, nil
}
