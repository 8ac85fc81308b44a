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

package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/vrtxlabs/invitekit/internal/cache"
	"github.com/vrtxlabs/invitekit/internal/system/config"
	syshttp "github.com/vrtxlabs/invitekit/internal/system/http"
	widgetconstants "github.com/vrtxlabs/invitekit/internal/widget/constants"
)

const testWidgetPayload = `{
	"id": "widget-001",
	"name": "Invite Friends",
	"props": {
		"formWidget": {
			"value": {"id": "root", "kind": "container", "children": [
				{"id": "label-1", "kind": "text", "subtype": "vrtx-form-label", "textContent": "Test Label"}
			]}
		}
	}
}`

// staticCredentials is a fixed-token CredentialsProviderInterface for tests.
type staticCredentials struct {
	token string
	err   error
}

func (c *staticCredentials) AccessToken(_ context.Context) (string, error) {
	return c.token, c.err
}

type ConfigFetcherTestSuite struct {
	suite.Suite
	key cache.CacheKey
}

func TestConfigFetcherSuite(t *testing.T) {
	suite.Run(t, new(ConfigFetcherTestSuite))
}

func (suite *ConfigFetcherTestSuite) SetupTest() {
	suite.key = cache.CacheKey{ComponentID: "widget-001", AuthScope: "user-42"}
}

func (suite *ConfigFetcherTestSuite) newFetcher(server *httptest.Server,
	credentials CredentialsProviderInterface) cache.FetcherInterface {
	return NewConfigFetcher(config.EndpointConfig{BaseURL: server.URL}, syshttp.NewHTTPClient(), credentials)
}

func (suite *ConfigFetcherTestSuite) TestFetchDecodesConfiguration() {
	var gotPath, gotAccept, gotAuth, gotAttestation string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		gotAttestation = r.Header.Get(SessionAttestationHeaderName)
		w.Header().Set(SessionAttestationHeaderName, "att-next")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testWidgetPayload))
	}))
	defer server.Close()

	fetcher := suite.newFetcher(server, &staticCredentials{token: "token-123"})
	result, err := fetcher.Fetch(context.Background(), cache.FetchRequest{
		Key:                suite.key,
		SessionAttestation: "att-prev",
	})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), result)
	assert.Equal(suite.T(), "/widgets/widget-001/configuration", gotPath)
	assert.Equal(suite.T(), "application/json", gotAccept)
	assert.Equal(suite.T(), "Bearer token-123", gotAuth)
	assert.Equal(suite.T(), "att-prev", gotAttestation)
	assert.Equal(suite.T(), "att-next", result.SessionAttestation)

	label := result.Config.PageData("formWidget").FindBySubtype("vrtx-form-label")
	assert.NotNil(suite.T(), label)
	assert.Equal(suite.T(), "Test Label", label.TextContent)
}

func (suite *ConfigFetcherTestSuite) TestFetchOmitsEmptyAttestation() {
	attestationSeen := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, attestationSeen = r.Header[SessionAttestationHeaderName]
		_, _ = w.Write([]byte(testWidgetPayload))
	}))
	defer server.Close()

	fetcher := suite.newFetcher(server, nil)
	_, err := fetcher.Fetch(context.Background(), cache.FetchRequest{Key: suite.key})

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), attestationSeen)
}

func (suite *ConfigFetcherTestSuite) TestFetchServerError() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	fetcher := suite.newFetcher(server, nil)
	result, err := fetcher.Fetch(context.Background(), cache.FetchRequest{Key: suite.key})

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), result)
	assert.Contains(suite.T(), err.Error(), "502")
}

func (suite *ConfigFetcherTestSuite) TestFetchUndecodablePayload() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"props": {"formWidget": {"value": {"id": "n1", "attributes": {"bad": 42}}}}}`))
	}))
	defer server.Close()

	fetcher := suite.newFetcher(server, nil)
	result, err := fetcher.Fetch(context.Background(), cache.FetchRequest{Key: suite.key})

	// A fetched but undecodable payload counts as a fetch failure, so the cache
	// keeps serving its previous snapshot. The attribute failure carries its
	// error code.
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), widgetconstants.ErrorUnsupportedAttributeShape.Code)
	assert.Nil(suite.T(), result)
}

func (suite *ConfigFetcherTestSuite) TestFetchMalformedPayload() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"props": `))
	}))
	defer server.Close()

	fetcher := suite.newFetcher(server, nil)
	result, err := fetcher.Fetch(context.Background(), cache.FetchRequest{Key: suite.key})

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), widgetconstants.ErrorMalformedConfiguration.Code)
	assert.Nil(suite.T(), result)
}

func (suite *ConfigFetcherTestSuite) TestFetchCredentialsFailure() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.T().Error("request must not be sent when token acquisition fails")
	}))
	defer server.Close()

	fetcher := suite.newFetcher(server, &staticCredentials{err: errors.New("token expired")})
	result, err := fetcher.Fetch(context.Background(), cache.FetchRequest{Key: suite.key})

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), result)
}
