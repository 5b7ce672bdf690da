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

// Package store provides the implementation for user persistence operations.
package store

import (
	"github.com/halport/portal/internal/system/database/model"
	"github.com/halport/portal/internal/system/database/utils"
)

var (
	// QueryCreateUser is the query to create a new user.
	QueryCreateUser = model.DBQuery{
		ID:    "PSQ-USER_MGT-01",
		Query: "INSERT INTO \"USER\" (USER_ID, EMAIL, ROLE, ATTRIBUTES, DATE_CREATED) VALUES ($1, $2, $3, $4, $5)",
	}
	// QueryGetUserByUserID is the query to get a user by user ID.
	QueryGetUserByUserID = model.DBQuery{
		ID:    "PSQ-USER_MGT-02",
		Query: "SELECT USER_ID, EMAIL, ROLE, ATTRIBUTES, DATE_CREATED FROM \"USER\" WHERE USER_ID = $1",
	}
	// QueryGetUserByEmail is the query to get a user by email.
	QueryGetUserByEmail = model.DBQuery{
		ID:    "PSQ-USER_MGT-03",
		Query: "SELECT USER_ID, EMAIL, ROLE, ATTRIBUTES, DATE_CREATED FROM \"USER\" WHERE EMAIL = $1",
	}
	// QueryUpdateUserAttributes is the query to update the attributes of a user.
	QueryUpdateUserAttributes = model.DBQuery{
		ID:    "PSQ-USER_MGT-04",
		Query: "UPDATE \"USER\" SET ATTRIBUTES = $2 WHERE USER_ID = $1",
	}
)

// buildIdentifyQuery constructs a query to identify a user based on the
// provided attribute filters.
func buildIdentifyQuery(filters map[string]interface{}) (model.DBQuery, []interface{}, error) {
	baseQuery := "SELECT USER_ID FROM \"USER\" WHERE 1=1"
	queryID := "PSQ-USER_MGT-05"
	columnName := "ATTRIBUTES"
	return utils.BuildFilterQuery(queryID, baseQuery, columnName, filters)
}
