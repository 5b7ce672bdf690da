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

// Package handler provides the HTTP handler for the API entry point. The
// entry point is the only URL a client needs to know; every other
// capability is discovered through its links and templates.
package handler

import (
	"net/http"

	"github.com/halport/portal/internal/apikey/constants"
	"github.com/halport/portal/internal/authn"
	authnmodel "github.com/halport/portal/internal/authn/model"
	"github.com/halport/portal/internal/hal"
	"github.com/halport/portal/internal/system/log"
	"github.com/halport/portal/internal/system/routes"
)

const loggerComponentName = "EntryPointHandler"

// EntryPointHandler is the handler for the API entry point.
type EntryPointHandler struct{}

// NewEntryPointHandler creates a new instance of EntryPointHandler.
func NewEntryPointHandler() *EntryPointHandler {
	return &EntryPointHandler{}
}

// HandleEntryPointRequest renders the root HAL document. The declared
// capabilities depend on how the caller is authenticated: anonymous callers
// see only the authenticate template, and API key callers never see
// session-destructive operations.
func (eh *EntryPointHandler) HandleEntryPointRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	authContext := authn.AuthContextFromRequest(r)

	resource, err := buildEntryPoint(authContext)
	if err != nil {
		logger.Error("Failed to build entry point", log.Error(err))
		http.Error(w, "Failed to build entry point", http.StatusInternalServerError)
		return
	}

	hal.WriteResource(w, http.StatusOK, resource)
}

// buildEntryPoint assembles the root document from the route table.
func buildEntryPoint(authContext *authnmodel.AuthContext) (*hal.Resource, error) {
	resource := hal.NewResource()

	rootHref, err := routes.BuildHref(routes.ResourceEntryPoint, routes.OperationRoot, nil)
	if err != nil {
		return nil, err
	}
	resource.AddLink(hal.SelfRel, hal.Link{Href: rootHref, Title: "Portal"})

	authenticateHref, err := routes.BuildHref(routes.ResourceAuth, routes.OperationAuthenticate, nil)
	if err != nil {
		return nil, err
	}

	if !authContext.IsAuthenticated() {
		resource.AddTemplate("authenticate", hal.Template{
			Title:  "Sign in",
			Method: http.MethodPost,
			Target: authenticateHref,
			Properties: []hal.TemplateProperty{
				{Name: "accessToken", Prompt: "Access token", Type: "text", Required: true},
			},
		})
		return resource, nil
	}

	sitemapHref, err := routes.BuildHref(routes.ResourceSitemap, routes.OperationRoot, nil)
	if err != nil {
		return nil, err
	}
	resource.AddLink("sitemap", hal.Link{Href: sitemapHref, Title: "Sitemap"})

	sessionsTemplate, _ := routes.PathTemplate(routes.ResourceSessions, routes.OperationList)
	resource.AddLink("sessions", hal.Link{Href: sessionsTemplate, Title: "Sessions", Templated: true})

	apiKeysTemplate, _ := routes.PathTemplate(routes.ResourceAPIKeys, routes.OperationList)
	resource.AddLink("apiKeys", hal.Link{Href: apiKeysTemplate, Title: "API Keys", Templated: true})

	addSessionTemplates(resource, authContext)
	addAPIKeyTemplates(resource)

	verifyHref, err := routes.BuildHref(routes.ResourceAuth, routes.OperationVerifyAPIKey, nil)
	if err != nil {
		return nil, err
	}
	resource.AddTemplate("verifyApiKey", hal.Template{
		Title:  "Verify API key",
		Method: http.MethodPost,
		Target: verifyHref,
		Properties: []hal.TemplateProperty{
			{Name: "apiKey", Prompt: "API key", Type: "text", Required: true},
		},
	})

	return resource, nil
}

// addSessionTemplates declares the session operations. Destructive session
// operations are withheld from API key callers.
func addSessionTemplates(resource *hal.Resource, authContext *authnmodel.AuthContext) {
	listTemplate, _ := routes.PathTemplate(routes.ResourceSessions, routes.OperationList)
	resource.AddTemplate("listSessions", hal.Template{
		Title:  "List sessions",
		Method: http.MethodPost,
		Target: listTemplate,
		Properties: []hal.TemplateProperty{
			{Name: "page", Prompt: "Page", Type: "object"},
		},
	})

	if authContext.Type != authnmodel.AuthTypeSession {
		return
	}

	deleteTemplate, _ := routes.PathTemplate(routes.ResourceSessions, routes.OperationDelete)
	resource.AddTemplate("deleteSession", hal.Template{
		Title:  "Revoke session",
		Method: http.MethodDelete,
		Target: deleteTemplate,
	})

	deleteAllTemplate, _ := routes.PathTemplate(routes.ResourceSessions, routes.OperationDeleteAll)
	resource.AddTemplate("deleteAllSessions", hal.Template{
		Title:  "Sign out everywhere",
		Method: http.MethodDelete,
		Target: deleteAllTemplate,
	})

	signOutHref, _ := routes.BuildHref(routes.ResourceAuth, routes.OperationSignOut, nil)
	resource.AddTemplate("signOut", hal.Template{
		Title:  "Sign out",
		Method: http.MethodPost,
		Target: signOutHref,
	})
}

// addAPIKeyTemplates declares the API key operations.
func addAPIKeyTemplates(resource *hal.Resource) {
	maxLength := constants.MaxDescriptionLength

	createTemplate, _ := routes.PathTemplate(routes.ResourceAPIKeys, routes.OperationCreate)
	resource.AddTemplate("createApiKey", hal.Template{
		Title:  "Create API key",
		Method: http.MethodPost,
		Target: createTemplate,
		Properties: []hal.TemplateProperty{
			{Name: "description", Prompt: "Description", Type: "text", Required: true, MaxLength: &maxLength},
		},
	})

	listTemplate, _ := routes.PathTemplate(routes.ResourceAPIKeys, routes.OperationList)
	resource.AddTemplate("listApiKeys", hal.Template{
		Title:  "List API keys",
		Method: http.MethodPost,
		Target: listTemplate,
		Properties: []hal.TemplateProperty{
			{Name: "page", Prompt: "Page", Type: "object"},
		},
	})

	deleteTemplate, _ := routes.PathTemplate(routes.ResourceAPIKeys, routes.OperationDelete)
	resource.AddTemplate("deleteApiKey", hal.Template{
		Title:  "Delete API key",
		Method: http.MethodDelete,
		Target: deleteTemplate,
	})

	deleteManyTemplate, _ := routes.PathTemplate(routes.ResourceAPIKeys, routes.OperationDeleteMany)
	resource.AddTemplate("deleteApiKeys", hal.Template{
		Title:  "Delete API keys",
		Method: http.MethodDelete,
		Target: deleteManyTemplate,
		Properties: []hal.TemplateProperty{
			{Name: "apiKeyIds", Prompt: "API key IDs", Type: "array", Required: true},
		},
	})
}
