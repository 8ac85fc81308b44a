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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vrtxlabs/invitekit/internal/flow/model"
	"github.com/vrtxlabs/invitekit/internal/system/config"
	"github.com/vrtxlabs/invitekit/internal/system/constants"
	syshttp "github.com/vrtxlabs/invitekit/internal/system/http"
	"github.com/vrtxlabs/invitekit/internal/system/log"
)

const shareLoggerComponentName = "ShareGateway"

// shareRequest is the wire shape of a shareable link request.
type shareRequest struct {
	ComponentID string `json:"componentId"`
	AuthScope   string `json:"authScope"`
	Channel     string `json:"channel,omitempty"`
}

// shareResponse is the wire shape of a shareable link response.
type shareResponse struct {
	Link      string `json:"link"`
	ExpiresAt int64  `json:"expiresAt,omitempty"`
}

// ShareGateway obtains shareable invite links from the share endpoint over HTTP.
type ShareGateway struct {
	endpoint    config.EndpointConfig
	httpClient  syshttp.HTTPClientInterface
	credentials CredentialsProviderInterface
}

// NewShareGateway creates a new HTTP-backed share gateway.
func NewShareGateway(endpoint config.EndpointConfig, httpClient syshttp.HTTPClientInterface,
	credentials CredentialsProviderInterface) ShareGatewayInterface {
	return &ShareGateway{
		endpoint:    endpoint,
		httpClient:  httpClient,
		credentials: credentials,
	}
}

// GetShareableLink requests a shareable invite link for the given context.
func (g *ShareGateway) GetShareableLink(ctx context.Context,
	shareCtx model.ShareContext) (*model.ShareLink, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, shareLoggerComponentName))

	body, err := json.Marshal(shareRequest{
		ComponentID: shareCtx.ComponentID,
		AuthScope:   shareCtx.AuthScope,
		Channel:     shareCtx.Channel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal share request: %w", err)
	}

	requestURL := g.endpoint.BaseURL + "/share-links"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create share request: %w", err)
	}
	req.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	req.Header.Set(constants.AcceptHeaderName, constants.ContentTypeJSON)
	if err := attachCredentials(ctx, req, g.credentials); err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("share request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Error closing response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("share request failed with status code: %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read share response: %w", err)
	}

	var link shareResponse
	if err := json.Unmarshal(respBody, &link); err != nil {
		return nil, fmt.Errorf("failed to decode share response: %w", err)
	}
	if link.Link == "" {
		return nil, fmt.Errorf("share response did not contain a link")
	}

	return &model.ShareLink{URL: link.Link, ExpiresAt: link.ExpiresAt}, nil
}
