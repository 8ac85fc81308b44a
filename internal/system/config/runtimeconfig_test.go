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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RuntimeConfigTestSuite struct {
	suite.Suite
}

func TestRuntimeConfigSuite(t *testing.T) {
	suite.Run(t, new(RuntimeConfigTestSuite))
}

func (suite *RuntimeConfigTestSuite) BeforeTest(suiteName, testName string) {
	ResetInviteKitRuntime()
}

func (suite *RuntimeConfigTestSuite) TestInitializeInviteKitRuntime() {
	config := &Config{
		Endpoints: EndpointsConfig{
			Configuration: EndpointConfig{
				BaseURL: "https://api.testhost",
				Timeout: 20,
			},
		},
		Analytics: AnalyticsConfig{
			Endpoint: "https://analytics.testhost/events",
		},
	}

	err := InitializeInviteKitRuntime("/test/invitekit/home", config)

	assert.NoError(suite.T(), err)

	runtime := runtimeConfig
	assert.NotNil(suite.T(), runtime)
	assert.Equal(suite.T(), "/test/invitekit/home", runtime.InviteKitHome)
	assert.Equal(suite.T(), config.Endpoints.Configuration.BaseURL, runtime.Config.Endpoints.Configuration.BaseURL)
	assert.Equal(suite.T(), config.Endpoints.Configuration.Timeout, runtime.Config.Endpoints.Configuration.Timeout)
	assert.Equal(suite.T(), config.Analytics.Endpoint, runtime.Config.Analytics.Endpoint)
}

func (suite *RuntimeConfigTestSuite) TestInitializeInviteKitRuntimeOnlyOnce() {
	// First initialization
	firstConfig := &Config{
		Endpoints: EndpointsConfig{
			Configuration: EndpointConfig{
				BaseURL: "https://first.host",
			},
		},
	}

	err := InitializeInviteKitRuntime("/first/path", firstConfig)
	assert.NoError(suite.T(), err)

	// Try second initialization
	secondConfig := &Config{
		Endpoints: EndpointsConfig{
			Configuration: EndpointConfig{
				BaseURL: "https://second.host",
			},
		},
	}

	err = InitializeInviteKitRuntime("/second/path", secondConfig)
	assert.NoError(suite.T(), err) // Should not return error

	// Verify that the first initialization remains
	runtime := GetInviteKitRuntime()
	assert.Equal(suite.T(), "/first/path", runtime.InviteKitHome)
	assert.Equal(suite.T(), "https://first.host", runtime.Config.Endpoints.Configuration.BaseURL)
}

func (suite *RuntimeConfigTestSuite) TestGetInviteKitRuntime() {
	config := &Config{
		Contacts: ContactsConfig{
			GoogleEnabled: true,
			GoogleBaseURL: "https://people.testhost",
		},
	}

	err := InitializeInviteKitRuntime("/get/test/path", config)
	assert.NoError(suite.T(), err)

	runtime := GetInviteKitRuntime()

	assert.NotNil(suite.T(), runtime)
	assert.Equal(suite.T(), "/get/test/path", runtime.InviteKitHome)
	assert.True(suite.T(), runtime.Config.Contacts.GoogleEnabled)
}

func (suite *RuntimeConfigTestSuite) TestGetInviteKitRuntimePanic() {
	ResetInviteKitRuntime()

	assert.Panics(suite.T(), func() {
		GetInviteKitRuntime()
	})
}
