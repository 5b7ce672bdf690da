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

// Package store provides the implementation for API key persistence operations.
package store

import (
	"fmt"
	"strings"

	"github.com/halport/portal/internal/system/database/model"
)

var (
	// QueryCreateAPIKey is the query to create a new API key.
	QueryCreateAPIKey = model.DBQuery{
		ID: "PSQ-APIKEY_MGT-01",
		Query: "INSERT INTO API_KEY (API_KEY_ID, USER_ID, DESCRIPTION, SECRET_HASH, DATE_CREATED, DATE_EXPIRES) " +
			"VALUES ($1, $2, $3, $4, $5, $6)",
	}
	// QueryGetAPIKeyByID is the query to get an API key by its ID.
	QueryGetAPIKeyByID = model.DBQuery{
		ID: "PSQ-APIKEY_MGT-02",
		Query: "SELECT API_KEY_ID, USER_ID, DESCRIPTION, SECRET_HASH, DATE_CREATED, DATE_EXPIRES, LAST_USED " +
			"FROM API_KEY WHERE API_KEY_ID = $1",
	}
	// QueryGetAPIKeyCount is the query to get the total API key count for a user.
	QueryGetAPIKeyCount = model.DBQuery{
		ID:    "PSQ-APIKEY_MGT-03",
		Query: "SELECT COUNT(*) as total FROM API_KEY WHERE USER_ID = $1",
	}
	// QueryGetAPIKeyList is the query to get a page of API keys for a user.
	QueryGetAPIKeyList = model.DBQuery{
		ID: "PSQ-APIKEY_MGT-04",
		Query: "SELECT API_KEY_ID, USER_ID, DESCRIPTION, SECRET_HASH, DATE_CREATED, DATE_EXPIRES, LAST_USED " +
			"FROM API_KEY WHERE USER_ID = $1 ORDER BY DATE_CREATED DESC LIMIT $2 OFFSET $3",
	}
	// QueryTouchAPIKey is the query to record the last use of an API key.
	QueryTouchAPIKey = model.DBQuery{
		ID:    "PSQ-APIKEY_MGT-05",
		Query: "UPDATE API_KEY SET LAST_USED = $2 WHERE API_KEY_ID = $1",
	}
	// QueryDeleteAPIKey is the query to delete an API key of a user.
	QueryDeleteAPIKey = model.DBQuery{
		ID:    "PSQ-APIKEY_MGT-06",
		Query: "DELETE FROM API_KEY WHERE USER_ID = $1 AND API_KEY_ID = $2",
	}
)

// buildBulkDeleteQuery constructs a query deleting several API keys of a
// user in one statement.
func buildBulkDeleteQuery(userID string, apiKeyIDs []string) (model.DBQuery, []interface{}, error) {
	if len(apiKeyIDs) == 0 {
		return model.DBQuery{}, nil, fmt.Errorf("apiKeyIDs list cannot be empty")
	}

	placeholders := make([]string, 0, len(apiKeyIDs))
	args := make([]interface{}, 0, len(apiKeyIDs)+1)
	args = append(args, userID)
	for i, id := range apiKeyIDs {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, id)
	}

	query := model.DBQuery{
		ID: "PSQ-APIKEY_MGT-07",
		Query: fmt.Sprintf("DELETE FROM API_KEY WHERE USER_ID = $1 AND API_KEY_ID IN (%s)",
			strings.Join(placeholders, ", ")),
	}
	return query, args, nil
}
