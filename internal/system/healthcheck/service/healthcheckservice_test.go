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

package service

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"github.com/halport/portal/internal/system/database/client"
	dbmodel "github.com/halport/portal/internal/system/database/model"
	"github.com/halport/portal/internal/system/healthcheck/model"
)

type mockDBProvider struct {
	clients map[string]client.DBClientInterface
	errs    map[string]error
}

func (m *mockDBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	if err, ok := m.errs[dbName]; ok {
		return nil, err
	}
	return m.clients[dbName], nil
}

type HealthCheckServiceTestSuite struct {
	suite.Suite
	identityDB   *sql.DB
	identityMock sqlmock.Sqlmock
	runtimeDB    *sql.DB
	runtimeMock  sqlmock.Sqlmock
	provider     *mockDBProvider
	service      HealthCheckServiceInterface
}

func TestHealthCheckServiceSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckServiceTestSuite))
}

func (suite *HealthCheckServiceTestSuite) SetupTest() {
	var err error
	suite.identityDB, suite.identityMock, err = sqlmock.New()
	suite.Require().NoError(err)
	suite.runtimeDB, suite.runtimeMock, err = sqlmock.New()
	suite.Require().NoError(err)

	suite.provider = &mockDBProvider{
		clients: map[string]client.DBClientInterface{
			"identity": client.NewDBClient(dbmodel.NewDB(suite.identityDB), "postgres"),
			"runtime":  client.NewDBClient(dbmodel.NewDB(suite.runtimeDB), "postgres"),
		},
		errs: map[string]error{},
	}
	suite.service = NewHealthCheckService(suite.provider)
}

func (suite *HealthCheckServiceTestSuite) TearDownTest() {
	_ = suite.identityDB.Close()
	_ = suite.runtimeDB.Close()
}

func (suite *HealthCheckServiceTestSuite) expectIdentityQuery() *sqlmock.ExpectedQuery {
	return suite.identityMock.ExpectQuery(`SELECT USER_ID FROM "USER" LIMIT 1`)
}

func (suite *HealthCheckServiceTestSuite) expectRuntimeQuery() *sqlmock.ExpectedQuery {
	return suite.runtimeMock.ExpectQuery("SELECT SESSION_ID FROM SESSION LIMIT 1")
}

func (suite *HealthCheckServiceTestSuite) TestCheckReadinessAllUp() {
	suite.expectIdentityQuery().WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("user-1"))
	suite.expectRuntimeQuery().WillReturnRows(sqlmock.NewRows([]string{"session_id"}))

	status := suite.service.CheckReadiness()
	suite.Equal(model.StatusUp, status.Status)
	suite.Require().Len(status.ServiceStatus, 2)
	suite.Equal("IdentityDB", status.ServiceStatus[0].ServiceName)
	suite.Equal(model.StatusUp, status.ServiceStatus[0].Status)
	suite.Equal("RuntimeDB", status.ServiceStatus[1].ServiceName)
	suite.Equal(model.StatusUp, status.ServiceStatus[1].Status)
}

func (suite *HealthCheckServiceTestSuite) TestCheckReadinessIdentityDown() {
	suite.expectIdentityQuery().WillReturnError(errors.New("connection refused"))
	suite.expectRuntimeQuery().WillReturnRows(sqlmock.NewRows([]string{"session_id"}))

	status := suite.service.CheckReadiness()
	suite.Equal(model.StatusDown, status.Status)
	suite.Equal(model.StatusDown, status.ServiceStatus[0].Status)
	suite.Equal(model.StatusUp, status.ServiceStatus[1].Status)
}

func (suite *HealthCheckServiceTestSuite) TestCheckReadinessRuntimeDown() {
	suite.expectIdentityQuery().WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	suite.expectRuntimeQuery().WillReturnError(errors.New("connection refused"))

	status := suite.service.CheckReadiness()
	suite.Equal(model.StatusDown, status.Status)
	suite.Equal(model.StatusUp, status.ServiceStatus[0].Status)
	suite.Equal(model.StatusDown, status.ServiceStatus[1].Status)
}

func (suite *HealthCheckServiceTestSuite) TestCheckReadinessProviderFailure() {
	suite.provider.errs["identity"] = errors.New("pool exhausted")
	suite.expectRuntimeQuery().WillReturnRows(sqlmock.NewRows([]string{"session_id"}))

	status := suite.service.CheckReadiness()
	suite.Equal(model.StatusDown, status.Status)
	suite.Equal(model.StatusDown, status.ServiceStatus[0].Status)
}
