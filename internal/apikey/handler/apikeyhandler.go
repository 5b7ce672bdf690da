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

// Package handler provides the HTTP handlers for API key management operations.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/halport/portal/internal/apikey/constants"
	"github.com/halport/portal/internal/apikey/model"
	"github.com/halport/portal/internal/apikey/service"
	"github.com/halport/portal/internal/authn"
	"github.com/halport/portal/internal/authz"
	"github.com/halport/portal/internal/hal"
	"github.com/halport/portal/internal/system/error/apierror"
	"github.com/halport/portal/internal/system/error/serviceerror"
	"github.com/halport/portal/internal/system/log"
	"github.com/halport/portal/internal/system/routes"
	"github.com/halport/portal/internal/system/utils"
)

const loggerComponentName = "APIKeyHandler"

// createAPIKeyRequest is the POST body of the API key create operation.
type createAPIKeyRequest struct {
	Description string     `json:"description"`
	DateExpires *time.Time `json:"dateExpires,omitempty"`
}

// listAPIKeysRequest is the POST body of the API key list operation.
type listAPIKeysRequest struct {
	Page *hal.PageInstruction `json:"page,omitempty"`
}

// bulkDeleteRequest is the POST body of the bulk API key delete operation.
// The apiKeyIds field accepts either a JSON array or a comma-separated
// string, matching the array-field transform applied by hypermedia clients.
type bulkDeleteRequest struct {
	APIKeyIDs apiKeyIDList `json:"apiKeyIds"`
}

type apiKeyIDList []string

// UnmarshalJSON accepts either a JSON array of strings or a single
// comma-separated string.
func (l *apiKeyIDList) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err == nil {
		*l = ids
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = utils.ParseStringArray(raw)
	return nil
}

// APIKeyHandler is the handler for API key management operations.
type APIKeyHandler struct {
	apiKeyService service.APIKeyServiceInterface
}

// NewAPIKeyHandler creates a new instance of APIKeyHandler.
func NewAPIKeyHandler() *APIKeyHandler {
	return &APIKeyHandler{apiKeyService: service.GetAPIKeyService()}
}

// NewAPIKeyHandlerWithService creates an API key handler using the given service.
func NewAPIKeyHandlerWithService(apiKeyService service.APIKeyServiceInterface) *APIKeyHandler {
	return &APIKeyHandler{apiKeyService: apiKeyService}
}

// HandleAPIKeyCreateRequest handles the create API key request.
func (kh *APIKeyHandler) HandleAPIKeyCreateRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	userID := r.PathValue("userId")
	if userID == "" {
		writeServiceError(w, logger, &constants.ErrorMissingUserID)
		return
	}

	var createRequest createAPIKeyRequest
	if err := utils.DecodeJSONBody(r, &createRequest); err != nil {
		writeServiceError(w, logger, &constants.ErrorInvalidRequestFormat)
		return
	}

	authContext := authn.AuthContextFromRequest(r)
	created, svcErr := kh.apiKeyService.CreateAPIKey(authContext, userID,
		createRequest.Description, createRequest.DateExpires)
	if svcErr != nil {
		writeServiceError(w, logger, svcErr)
		return
	}

	resource, err := buildAPIKeyResource(userID, created.APIKey)
	if err != nil {
		logger.Error("Failed to build API key resource", log.Error(err))
		writeServiceError(w, logger, &constants.ErrorInternalServerError)
		return
	}
	// The cleartext key appears only in this response.
	if err := resource.SetField("key", created.Key); err != nil {
		logger.Error("Failed to build API key resource", log.Error(err))
		writeServiceError(w, logger, &constants.ErrorInternalServerError)
		return
	}

	hal.WriteResource(w, http.StatusCreated, resource)
	logger.Debug("Successfully created API key", log.String(log.LoggerKeyUserID, userID))
}

// HandleAPIKeyListRequest handles the list API keys request.
func (kh *APIKeyHandler) HandleAPIKeyListRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	userID := r.PathValue("userId")
	if userID == "" {
		writeServiceError(w, logger, &constants.ErrorMissingUserID)
		return
	}

	var listRequest listAPIKeysRequest
	if err := utils.DecodeJSONBody(r, &listRequest); err != nil && !errors.Is(err, io.EOF) {
		writeServiceError(w, logger, &constants.ErrorInvalidRequestFormat)
		return
	}

	authContext := authn.AuthContextFromRequest(r)
	result, svcErr := kh.apiKeyService.ListAPIKeys(authContext, userID, listRequest.Page)
	if svcErr != nil {
		writeServiceError(w, logger, svcErr)
		return
	}

	collection, err := buildAPIKeyCollection(userID, result)
	if err != nil {
		logger.Error("Failed to build API key collection", log.Error(err))
		writeServiceError(w, logger, &constants.ErrorInternalServerError)
		return
	}

	hal.WriteResource(w, http.StatusOK, collection)
	logger.Debug("Successfully listed API keys", log.String(log.LoggerKeyUserID, userID))
}

// HandleAPIKeyDeleteRequest handles the delete API key request. The
// operation arrives as a POST with a `_method` override.
func (kh *APIKeyHandler) HandleAPIKeyDeleteRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	userID := r.PathValue("userId")
	if userID == "" {
		writeServiceError(w, logger, &constants.ErrorMissingUserID)
		return
	}
	apiKeyID := r.PathValue("apiKeyId")
	if apiKeyID == "" {
		writeServiceError(w, logger, &constants.ErrorMissingAPIKeyID)
		return
	}

	authContext := authn.AuthContextFromRequest(r)
	if svcErr := kh.apiKeyService.RevokeAPIKey(authContext, userID, apiKeyID); svcErr != nil {
		writeServiceError(w, logger, svcErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAPIKeyDeleteManyRequest handles the bulk API key delete request.
func (kh *APIKeyHandler) HandleAPIKeyDeleteManyRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	userID := r.PathValue("userId")
	if userID == "" {
		writeServiceError(w, logger, &constants.ErrorMissingUserID)
		return
	}

	var deleteRequest bulkDeleteRequest
	if err := utils.DecodeJSONBody(r, &deleteRequest); err != nil {
		writeServiceError(w, logger, &constants.ErrorInvalidRequestFormat)
		return
	}

	authContext := authn.AuthContextFromRequest(r)
	deleted, svcErr := kh.apiKeyService.RevokeAPIKeys(authContext, userID, deleteRequest.APIKeyIDs)
	if svcErr != nil {
		writeServiceError(w, logger, svcErr)
		return
	}

	response := hal.NewResource()
	if err := response.SetField("deleted", deleted); err != nil {
		logger.Error("Failed to build response", log.Error(err))
		writeServiceError(w, logger, &constants.ErrorInternalServerError)
		return
	}

	hal.WriteResource(w, http.StatusOK, response)
}

// buildAPIKeyCollection renders one page of API keys as a HAL collection.
func buildAPIKeyCollection(userID string, result *service.APIKeyListResult) (*hal.Resource, error) {
	selfHref, err := routes.BuildHref(routes.ResourceAPIKeys, routes.OperationList,
		map[string]string{"userId": userID})
	if err != nil {
		return nil, err
	}

	items := make([]hal.Resource, 0, len(result.APIKeys))
	for _, apiKey := range result.APIKeys {
		item, err := buildAPIKeyResource(userID, apiKey)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	collection, err := hal.NewCollection(selfHref, "API Keys", "apiKeys", items,
		result.TotalCount, result.Offset, result.Limit)
	if err != nil {
		return nil, err
	}

	createHref, err := routes.BuildHref(routes.ResourceAPIKeys, routes.OperationCreate,
		map[string]string{"userId": userID})
	if err != nil {
		return nil, err
	}
	deleteManyHref, err := routes.BuildHref(routes.ResourceAPIKeys, routes.OperationDeleteMany,
		map[string]string{"userId": userID})
	if err != nil {
		return nil, err
	}

	maxLength := constants.MaxDescriptionLength
	collection.AddTemplate("createApiKey", hal.Template{
		Title:  "Create API key",
		Method: http.MethodPost,
		Target: createHref,
		Properties: []hal.TemplateProperty{
			{Name: "description", Prompt: "Description", Type: "text", Required: true, MaxLength: &maxLength},
		},
	})
	collection.AddTemplate("deleteApiKeys", hal.Template{
		Title:  "Delete API keys",
		Method: http.MethodDelete,
		Target: deleteManyHref,
		Properties: []hal.TemplateProperty{
			{Name: "apiKeyIds", Prompt: "API key IDs", Type: "array", Required: true},
		},
	})

	return collection, nil
}

// buildAPIKeyResource renders a single API key as a HAL resource. The
// secret hash never leaves the server.
func buildAPIKeyResource(userID string, apiKey model.APIKey) (*hal.Resource, error) {
	href, err := routes.BuildHref(routes.ResourceAPIKeys, routes.OperationDelete,
		map[string]string{"userId": userID, "apiKeyId": apiKey.APIKeyID})
	if err != nil {
		return nil, err
	}

	resource := hal.NewResource()
	resource.AddLink(hal.SelfRel, hal.Link{Href: href, Title: "API Key"})
	resource.AddTemplate("deleteApiKey", hal.Template{
		Title:  "Delete API key",
		Method: http.MethodDelete,
		Target: href,
	})

	if err := resource.SetField("apiKeyId", apiKey.APIKeyID); err != nil {
		return nil, err
	}
	if err := resource.SetField("description", apiKey.Description); err != nil {
		return nil, err
	}
	if err := resource.SetField("dateCreated", apiKey.DateCreated); err != nil {
		return nil, err
	}
	if apiKey.DateExpires != nil {
		if err := resource.SetField("dateExpires", *apiKey.DateExpires); err != nil {
			return nil, err
		}
	}
	if apiKey.LastUsed != nil {
		if err := resource.SetField("lastUsed", *apiKey.LastUsed); err != nil {
			return nil, err
		}
	}

	return resource, nil
}

// writeServiceError maps a service error onto the HTTP response.
func writeServiceError(w http.ResponseWriter, logger *log.Logger, svcErr *serviceerror.ServiceError) {
	statusCode := http.StatusInternalServerError
	if svcErr.Type == serviceerror.ClientErrorType {
		switch svcErr.Code {
		case authz.ErrorForbidden.Code, authz.ErrorSessionAccessRequired.Code:
			statusCode = http.StatusForbidden
		default:
			statusCode = http.StatusBadRequest
		}
	}

	if svcErr.Type == serviceerror.ServerErrorType {
		logger.Error("Request failed", log.String("error_code", svcErr.Code))
	}

	utils.WriteJSONError(w, statusCode, apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
	})
}
