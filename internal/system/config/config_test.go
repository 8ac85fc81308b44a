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

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const testResourceDir = "../../../tests/resources"

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) getFilePath(filename string) string {
	return filepath.Join(testResourceDir, filename)
}

func (suite *ConfigTestSuite) TestLoadConfigValid() {
	configPath := suite.getFilePath("invitekit.yaml")
	config, err := LoadConfig(configPath)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), config)

	// Verify endpoint config
	assert.Equal(suite.T(), "https://api.example.com", config.Endpoints.Configuration.BaseURL)
	assert.Equal(suite.T(), 15, config.Endpoints.Configuration.Timeout)
	assert.Equal(suite.T(), "https://api.example.com", config.Endpoints.Invitations.BaseURL)
	assert.Equal(suite.T(), "https://share.example.com", config.Endpoints.Share.BaseURL)

	// Verify persistence config
	assert.False(suite.T(), config.Persistence.Disabled)
	assert.Equal(suite.T(), "sqlite", config.Persistence.DataSource.Type)
	assert.Equal(suite.T(), "data/snapshots.db", config.Persistence.DataSource.Path)
	assert.Equal(suite.T(), 5, config.Persistence.DataSource.MaxOpenConns)

	// Verify analytics config
	assert.False(suite.T(), config.Analytics.Disabled)
	assert.Equal(suite.T(), "https://analytics.example.com/events", config.Analytics.Endpoint)
	assert.Equal(suite.T(), 5, config.Analytics.Timeout)

	// Verify contacts config
	assert.True(suite.T(), config.Contacts.GoogleEnabled)
	assert.Equal(suite.T(), "https://people.example.com", config.Contacts.GoogleBaseURL)
}

func (suite *ConfigTestSuite) TestLoadConfigFileNotFound() {
	configPath := suite.getFilePath("non_existent_config.yaml")
	config, err := LoadConfig(configPath)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
	assert.Contains(suite.T(), err.Error(), "no such file or directory")
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidYAML() {
	configPath := suite.getFilePath("invalid_invitekit.yaml")

	config, err := LoadConfig(configPath)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
}
