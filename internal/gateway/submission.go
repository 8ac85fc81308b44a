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

const submissionLoggerComponentName = "SubmissionGateway"

// submissionRequest is the wire shape of an invitation submission.
type submissionRequest struct {
	TargetKind string            `json:"targetKind"`
	Target     string            `json:"target"`
	Payload    map[string]string `json:"payload,omitempty"`
}

// submissionResponse is the wire shape of the server's submission verdict.
type submissionResponse struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// SubmissionGateway submits invitations to the invitations endpoint over HTTP.
type SubmissionGateway struct {
	endpoint    config.EndpointConfig
	httpClient  syshttp.HTTPClientInterface
	credentials CredentialsProviderInterface
}

// NewSubmissionGateway creates a new HTTP-backed submission gateway.
func NewSubmissionGateway(endpoint config.EndpointConfig, httpClient syshttp.HTTPClientInterface,
	credentials CredentialsProviderInterface) SubmissionGatewayInterface {
	return &SubmissionGateway{
		endpoint:    endpoint,
		httpClient:  httpClient,
		credentials: credentials,
	}
}

// Submit sends the invitation for the target and returns the server's verdict.
func (g *SubmissionGateway) Submit(ctx context.Context, target model.Target,
	payload map[string]string) (*model.SubmissionResult, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, submissionLoggerComponentName),
		log.String("target", log.MaskString(target.ID)))

	body, err := json.Marshal(submissionRequest{
		TargetKind: string(target.Kind),
		Target:     target.ID,
		Payload:    payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission request: %w", err)
	}

	requestURL := g.endpoint.BaseURL + "/invitations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create submission request: %w", err)
	}
	req.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	req.Header.Set(constants.AcceptHeaderName, constants.ContentTypeJSON)
	if err := attachCredentials(ctx, req, g.credentials); err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submission request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Error closing response body", log.Error(closeErr))
		}
	}()

	logger.Debug("Received submission response", log.Int("statusCode", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read submission response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var verdict submissionResponse
		if jsonErr := json.Unmarshal(respBody, &verdict); jsonErr == nil && verdict.Reason != "" {
			return &model.SubmissionResult{Success: false, Reason: verdict.Reason}, nil
		}
		return nil, fmt.Errorf("submission failed with status code: %d", resp.StatusCode)
	}

	var verdict submissionResponse
	if err := json.Unmarshal(respBody, &verdict); err != nil {
		return nil, fmt.Errorf("failed to decode submission response: %w", err)
	}

	return &model.SubmissionResult{Success: verdict.Success, Reason: verdict.Reason}, nil
}
