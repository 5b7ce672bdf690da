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

package seeder

import "github.com/halport/portal/internal/system/database/model"

// schemaQueries holds the DDL statements applied at startup, in order.
var schemaQueries = []model.DBQuery{
	{
		ID: "PSQ-SCHEMA-01",
		Query: `CREATE TABLE IF NOT EXISTS "USER" (
			USER_ID      VARCHAR(36) PRIMARY KEY,
			EMAIL        VARCHAR(255) NOT NULL UNIQUE,
			ROLE         VARCHAR(32) NOT NULL DEFAULT 'Base',
			ATTRIBUTES   TEXT,
			DATE_CREATED TIMESTAMP NOT NULL
		)`,
	},
	{
		ID: "PSQ-SCHEMA-02",
		Query: `CREATE TABLE IF NOT EXISTS SESSION (
			SESSION_ID          VARCHAR(36) PRIMARY KEY,
			USER_ID             VARCHAR(36) NOT NULL REFERENCES "USER" (USER_ID) ON DELETE CASCADE,
			SESSION_SIGNATURE   VARCHAR(64) NOT NULL,
			IP_ADDRESS          VARCHAR(45) NOT NULL,
			USER_AGENT          TEXT NOT NULL,
			DATE_CREATED        TIMESTAMP NOT NULL,
			DATE_EXPIRES        TIMESTAMP NOT NULL,
			DATE_LAST_ACCESSED  TIMESTAMP
		)`,
	},
	{
		ID:    "PSQ-SCHEMA-03",
		Query: `CREATE INDEX IF NOT EXISTS IDX_SESSION_USER ON SESSION (USER_ID)`,
	},
	{
		ID: "PSQ-SCHEMA-04",
		Query: `CREATE TABLE IF NOT EXISTS API_KEY (
			API_KEY_ID   VARCHAR(36) PRIMARY KEY,
			USER_ID      VARCHAR(36) NOT NULL REFERENCES "USER" (USER_ID) ON DELETE CASCADE,
			DESCRIPTION  VARCHAR(255) NOT NULL,
			SECRET_HASH  VARCHAR(128) NOT NULL,
			DATE_CREATED TIMESTAMP NOT NULL,
			DATE_EXPIRES TIMESTAMP,
			LAST_USED    TIMESTAMP
		)`,
	},
	{
		ID:    "PSQ-SCHEMA-05",
		Query: `CREATE INDEX IF NOT EXISTS IDX_API_KEY_USER ON API_KEY (USER_ID)`,
	},
}
