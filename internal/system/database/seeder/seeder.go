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

// Package seeder provides functionality for bootstrapping the database schema.
package seeder

import (
	"github.com/halport/portal/internal/system/database/client"
	"github.com/halport/portal/internal/system/log"
)

// SeederInterface defines the interface for database schema bootstrapping.
type SeederInterface interface {
	EnsureSchema() error
}

// DBSeeder implements SeederInterface for database schema bootstrapping.
type DBSeeder struct {
	dbClient client.DBClientInterface
}

// NewDBSeeder creates a new instance of DBSeeder.
func NewDBSeeder(dbClient client.DBClientInterface) SeederInterface {
	return &DBSeeder{
		dbClient: dbClient,
	}
}

// EnsureSchema creates the portal tables when they do not exist yet.
func (s *DBSeeder) EnsureSchema() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBSeeder"))
	logger.Debug("Ensuring database schema")

	for _, ddl := range schemaQueries {
		if _, err := s.dbClient.Execute(ddl); err != nil {
			logger.Error("Failed to apply schema statement", log.String("queryID", ddl.GetID()), log.Error(err))
			return err
		}
	}

	return nil
}
