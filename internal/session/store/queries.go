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

// Package store provides the implementation for session persistence operations.
package store

import (
	"github.com/halport/portal/internal/system/database/model"
)

var (
	// QueryCreateSession is the query to create a new session.
	QueryCreateSession = model.DBQuery{
		ID: "PSQ-SESSION_MGT-01",
		Query: "INSERT INTO SESSION (SESSION_ID, USER_ID, SESSION_SIGNATURE, IP_ADDRESS, USER_AGENT, " +
			"DATE_CREATED, DATE_EXPIRES) VALUES ($1, $2, $3, $4, $5, $6, $7)",
	}
	// QueryGetSession is the query to get a session by user ID and session ID.
	QueryGetSession = model.DBQuery{
		ID: "PSQ-SESSION_MGT-02",
		Query: "SELECT SESSION_ID, USER_ID, SESSION_SIGNATURE, IP_ADDRESS, USER_AGENT, DATE_CREATED, " +
			"DATE_EXPIRES, DATE_LAST_ACCESSED FROM SESSION WHERE USER_ID = $1 AND SESSION_ID = $2",
	}
	// QueryGetSessionCount is the query to get the total session count for a user.
	QueryGetSessionCount = model.DBQuery{
		ID:    "PSQ-SESSION_MGT-03",
		Query: "SELECT COUNT(*) as total FROM SESSION WHERE USER_ID = $1",
	}
	// QueryGetSessionList is the query to get a page of sessions for a user.
	QueryGetSessionList = model.DBQuery{
		ID: "PSQ-SESSION_MGT-04",
		Query: "SELECT SESSION_ID, USER_ID, SESSION_SIGNATURE, IP_ADDRESS, USER_AGENT, DATE_CREATED, " +
			"DATE_EXPIRES, DATE_LAST_ACCESSED FROM SESSION WHERE USER_ID = $1 " +
			"ORDER BY DATE_CREATED DESC LIMIT $2 OFFSET $3",
	}
	// QueryExtendSession is the query to update the last accessed and expiry times.
	QueryExtendSession = model.DBQuery{
		ID:    "PSQ-SESSION_MGT-05",
		Query: "UPDATE SESSION SET DATE_LAST_ACCESSED = $3, DATE_EXPIRES = $4 WHERE USER_ID = $1 AND SESSION_ID = $2",
	}
	// QueryDeleteSession is the query to delete a session by user ID and session ID.
	QueryDeleteSession = model.DBQuery{
		ID:    "PSQ-SESSION_MGT-06",
		Query: "DELETE FROM SESSION WHERE USER_ID = $1 AND SESSION_ID = $2",
	}
	// QueryDeleteAllSessions is the query to delete all sessions of a user.
	QueryDeleteAllSessions = model.DBQuery{
		ID:    "PSQ-SESSION_MGT-07",
		Query: "DELETE FROM SESSION WHERE USER_ID = $1",
	}
	// QueryDeleteExpiredSessions is the query to purge sessions past their expiry.
	QueryDeleteExpiredSessions = model.DBQuery{
		ID:    "PSQ-SESSION_MGT-08",
		Query: "DELETE FROM SESSION WHERE DATE_EXPIRES < $1",
	}
)
