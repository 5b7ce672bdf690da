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

package hal

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidateTestSuite struct {
	suite.Suite
}

func TestValidateTestSuite(t *testing.T) {
	suite.Run(t, new(ValidateTestSuite))
}

func (suite *ValidateTestSuite) TestRequiredFieldMissingReportsPromptLabel() {
	template := Template{
		Properties: []TemplateProperty{
			{Name: "description", Prompt: "Description", Required: true},
		},
	}

	fieldErrors := ValidateTemplateData(template, map[string]any{})
	suite.Require().Len(fieldErrors, 1)
	suite.Equal("description", fieldErrors[0].Field)
	suite.Equal("Description is required", fieldErrors[0].Message)
}

func (suite *ValidateTestSuite) TestRequiredFieldEmptyStringFails() {
	template := Template{
		Properties: []TemplateProperty{
			{Name: "description", Required: true},
		},
	}

	fieldErrors := ValidateTemplateData(template, map[string]any{"description": ""})
	suite.Require().Len(fieldErrors, 1)
	suite.Equal("description is required", fieldErrors[0].Message)
}

func (suite *ValidateTestSuite) TestOptionalEmptyValueSkipsConstraints() {
	minLength := 5
	template := Template{
		Properties: []TemplateProperty{
			{Name: "note", MinLength: &minLength},
		},
	}

	suite.Empty(ValidateTemplateData(template, map[string]any{}))
	suite.Empty(ValidateTemplateData(template, map[string]any{"note": ""}))
}

func (suite *ValidateTestSuite) TestMinMaxConstraints() {
	min := 1.0
	max := 10.0
	template := Template{
		Properties: []TemplateProperty{
			{Name: "count", Prompt: "Count", Type: "number", Min: &min, Max: &max},
		},
	}

	fieldErrors := ValidateTemplateData(template, map[string]any{"count": 0})
	suite.Require().Len(fieldErrors, 1)
	suite.Equal("Count must be at least 1", fieldErrors[0].Message)

	fieldErrors = ValidateTemplateData(template, map[string]any{"count": 11})
	suite.Require().Len(fieldErrors, 1)
	suite.Equal("Count must be at most 10", fieldErrors[0].Message)

	suite.Empty(ValidateTemplateData(template, map[string]any{"count": 5}))
}

func (suite *ValidateTestSuite) TestLengthConstraints() {
	maxLength := 5
	template := Template{
		Properties: []TemplateProperty{
			{Name: "description", Prompt: "Description", MaxLength: &maxLength},
		},
	}

	fieldErrors := ValidateTemplateData(template, map[string]any{"description": "too long value"})
	suite.Require().Len(fieldErrors, 1)
	suite.Equal("Description must be at most 5 characters", fieldErrors[0].Message)

	suite.Empty(ValidateTemplateData(template, map[string]any{"description": "short"}))
}

func (suite *ValidateTestSuite) TestEmailConstraint() {
	template := Template{
		Properties: []TemplateProperty{
			{Name: "email", Prompt: "Email", Type: "email"},
		},
	}

	fieldErrors := ValidateTemplateData(template, map[string]any{"email": "not-an-email"})
	suite.Require().Len(fieldErrors, 1)
	suite.Equal("Email must be a valid email address", fieldErrors[0].Message)

	suite.Empty(ValidateTemplateData(template, map[string]any{"email": "user@example.com"}))
}

func (suite *ValidateTestSuite) TestURLConstraint() {
	template := Template{
		Properties: []TemplateProperty{
			{Name: "callback", Prompt: "Callback", Type: "url"},
		},
	}

	fieldErrors := ValidateTemplateData(template, map[string]any{"callback": "not a url"})
	suite.Require().Len(fieldErrors, 1)

	suite.Empty(ValidateTemplateData(template, map[string]any{"callback": "https://example.com/cb"}))
}

func (suite *ValidateTestSuite) TestRegexConstraint() {
	template := Template{
		Properties: []TemplateProperty{
			{Name: "code", Prompt: "Code", Regex: "^[A-Z]{3}$"},
		},
	}

	fieldErrors := ValidateTemplateData(template, map[string]any{"code": "abc"})
	suite.Require().Len(fieldErrors, 1)
	suite.Equal("Code has an invalid format", fieldErrors[0].Message)

	suite.Empty(ValidateTemplateData(template, map[string]any{"code": "ABC"}))
}

func (suite *ValidateTestSuite) TestErrorsReportedInDeclarationOrder() {
	template := Template{
		Properties: []TemplateProperty{
			{Name: "first", Required: true},
			{Name: "second", Required: true},
		},
	}

	fieldErrors := ValidateTemplateData(template, map[string]any{})
	suite.Require().Len(fieldErrors, 2)
	suite.Equal("first", fieldErrors[0].Field)
	suite.Equal("second", fieldErrors[1].Field)
}
