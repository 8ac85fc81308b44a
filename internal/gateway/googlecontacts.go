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

const googleContactsLoggerComponentName = "GoogleContactSource"

// googleContact is the wire shape of a single contact returned by the Google
// contacts proxy.
type googleContact struct {
	ResourceID  string   `json:"resourceId"`
	DisplayName string   `json:"displayName"`
	Emails      []string `json:"emails,omitempty"`
	Phones      []string `json:"phones,omitempty"`
}

// GoogleContactSource lists contacts through the Google contacts proxy. On
// platforms without the Google capability the source reports unavailable and the
// flow hides the import option.
type GoogleContactSource struct {
	cfg         config.ContactsConfig
	httpClient  syshttp.HTTPClientInterface
	credentials CredentialsProviderInterface
}

// NewGoogleContactSource creates a contact source backed by the Google contacts proxy.
func NewGoogleContactSource(cfg config.ContactsConfig, httpClient syshttp.HTTPClientInterface,
	credentials CredentialsProviderInterface) ContactSourceInterface {
	return &GoogleContactSource{
		cfg:         cfg,
		httpClient:  httpClient,
		credentials: credentials,
	}
}

// Kind returns the origin of this contact source.
func (s *GoogleContactSource) Kind() model.ContactSourceKind {
	return model.ContactSourceGoogle
}

// Available reports whether the Google capability is configured on this platform.
func (s *GoogleContactSource) Available() bool {
	return s.cfg.GoogleEnabled && s.cfg.GoogleBaseURL != ""
}

// ListContacts retrieves the contact list from the Google contacts proxy.
func (s *GoogleContactSource) ListContacts(ctx context.Context) ([]model.Contact, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, googleContactsLoggerComponentName))

	requestURL := s.cfg.GoogleBaseURL + "/contacts"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create contacts request: %w", err)
	}
	req.Header.Set(constants.AcceptHeaderName, constants.ContentTypeJSON)
	if err := attachCredentials(ctx, req, s.credentials); err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contacts request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Error closing response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("contacts request failed with status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts response: %w", err)
	}

	var wire []googleContact
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode contacts response: %w", err)
	}

	contacts := make([]model.Contact, 0, len(wire))
	for _, entry := range wire {
		contacts = append(contacts, model.Contact{
			ID:          entry.ResourceID,
			DisplayName: entry.DisplayName,
			Emails:      entry.Emails,
			Phones:      entry.Phones,
			Source:      model.ContactSourceGoogle,
		})
	}

	logger.Debug("Listed contacts from Google source", log.Int("count", len(contacts)))
	return contacts, nil
}
