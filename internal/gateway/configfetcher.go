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
	"fmt"
	"io"
	"net/http"

	"github.com/vrtxlabs/invitekit/internal/cache"
	"github.com/vrtxlabs/invitekit/internal/system/config"
	"github.com/vrtxlabs/invitekit/internal/system/constants"
	"github.com/vrtxlabs/invitekit/internal/system/error/serviceerror"
	syshttp "github.com/vrtxlabs/invitekit/internal/system/http"
	"github.com/vrtxlabs/invitekit/internal/system/log"
	widgetconstants "github.com/vrtxlabs/invitekit/internal/widget/constants"
	widgetmodel "github.com/vrtxlabs/invitekit/internal/widget/model"
)

const (
	configFetcherLoggerComponentName = "ConfigFetcher"
	// SessionAttestationHeaderName is the header carrying the session attestation
	// echoed between the client and the configuration server.
	SessionAttestationHeaderName = "X-Session-Attestation"
)

// ConfigFetcher retrieves widget configurations over HTTP and decodes them into
// their canonical form. A payload that fetches but fails to decode is reported as
// a fetch failure, so the cache keeps serving its stale snapshot.
type ConfigFetcher struct {
	endpoint    config.EndpointConfig
	httpClient  syshttp.HTTPClientInterface
	credentials CredentialsProviderInterface
}

// NewConfigFetcher creates a new HTTP-backed configuration fetcher.
func NewConfigFetcher(endpoint config.EndpointConfig, httpClient syshttp.HTTPClientInterface,
	credentials CredentialsProviderInterface) cache.FetcherInterface {
	return &ConfigFetcher{
		endpoint:    endpoint,
		httpClient:  httpClient,
		credentials: credentials,
	}
}

// Fetch retrieves and decodes the widget configuration for the requested key.
func (f *ConfigFetcher) Fetch(ctx context.Context, request cache.FetchRequest) (*cache.FetchResult, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, configFetcherLoggerComponentName),
		log.String("componentId", request.Key.ComponentID))

	requestURL := fmt.Sprintf("%s/widgets/%s/configuration", f.endpoint.BaseURL, request.Key.ComponentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create configuration request: %w", err)
	}
	req.Header.Set(constants.AcceptHeaderName, constants.ContentTypeJSON)
	if request.SessionAttestation != "" {
		req.Header.Set(SessionAttestationHeaderName, request.SessionAttestation)
	}
	if err := attachCredentials(ctx, req, f.credentials); err != nil {
		return nil, err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("configuration fetch failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Error closing response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("configuration fetch failed with status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration response: %w", err)
	}

	decoded, err := widgetmodel.Decode(body)
	if err != nil {
		svcErr := classifyDecodeFailure(err)
		logger.Warn("Fetched configuration failed to decode", log.String("code", svcErr.Code), log.Error(err))
		return nil, fmt.Errorf("%s (%s): %w", svcErr.ErrorDescription, svcErr.Code, err)
	}

	return &cache.FetchResult{
		Config:             decoded,
		SessionAttestation: resp.Header.Get(SessionAttestationHeaderName),
	}, nil
}

// classifyDecodeFailure maps a decode failure onto its error constant. Attribute
// failures carry the attribute key, prop shape failures only the prop key.
func classifyDecodeFailure(err error) serviceerror.ServiceError {
	var decodeErr *widgetmodel.DecodeError
	if errors.As(err, &decodeErr) {
		if decodeErr.AttributeKey != "" {
			return widgetconstants.ErrorUnsupportedAttributeShape
		}
		if decodeErr.PropKey != "" {
			return widgetconstants.ErrorUnsupportedPropShape
		}
	}
	return widgetconstants.ErrorMalformedConfiguration
}

// attachCredentials sets the bearer token on the request when a credentials
// provider is configured.
func attachCredentials(ctx context.Context, req *http.Request, credentials CredentialsProviderInterface) error {
	if credentials == nil {
		return nil
	}
	token, err := credentials.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire access token: %w", err)
	}
	if token != "" {
		req.Header.Set(constants.AuthorizationHeaderName, constants.TokenTypeBearer+" "+token)
	}
	return nil
}
