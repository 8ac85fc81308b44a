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

// Package gatewaymock provides mock implementations of the gateway interfaces for testing.
package gatewaymock

import (
	"context"
	"sync"

	"github.com/vrtxlabs/invitekit/internal/flow/model"
)

// MockSubmissionGateway is a mock implementation of the SubmissionGatewayInterface.
type MockSubmissionGateway struct {
	// MockSubmit defines the behavior for the Submit method.
	MockSubmit func(ctx context.Context, target model.Target, payload map[string]string) (*model.SubmissionResult, error)

	mu sync.Mutex

	// SubmitCalls tracks the arguments passed to Submit.
	SubmitCalls []struct {
		Target  model.Target
		Payload map[string]string
	}
}

// Submit mocks the Submit method of the SubmissionGatewayInterface.
func (m *MockSubmissionGateway) Submit(ctx context.Context, target model.Target,
	payload map[string]string) (*model.SubmissionResult, error) {
	m.mu.Lock()
	m.SubmitCalls = append(m.SubmitCalls, struct {
		Target  model.Target
		Payload map[string]string
	}{target, payload})
	m.mu.Unlock()

	if m.MockSubmit != nil {
		return m.MockSubmit(ctx, target, payload)
	}
	return &model.SubmissionResult{Success: true}, nil
}

// SubmitCallCount returns the number of Submit invocations.
func (m *MockSubmissionGateway) SubmitCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SubmitCalls)
}

// MockComposerGateway is a mock implementation of the ComposerGatewayInterface.
type MockComposerGateway struct {
	// MockComposeInvitation defines the behavior for the ComposeInvitation method.
	MockComposeInvitation func(ctx context.Context, contact model.Contact, message string) (*model.SubmissionResult, error)

	mu sync.Mutex

	// ComposeCalls tracks the arguments passed to ComposeInvitation.
	ComposeCalls []struct {
		Contact model.Contact
		Message string
	}
}

// ComposeInvitation mocks the ComposeInvitation method of the ComposerGatewayInterface.
func (m *MockComposerGateway) ComposeInvitation(ctx context.Context, contact model.Contact,
	message string) (*model.SubmissionResult, error) {
	m.mu.Lock()
	m.ComposeCalls = append(m.ComposeCalls, struct {
		Contact model.Contact
		Message string
	}{contact, message})
	m.mu.Unlock()

	if m.MockComposeInvitation != nil {
		return m.MockComposeInvitation(ctx, contact, message)
	}
	return &model.SubmissionResult{Success: true}, nil
}

// ComposeCallCount returns the number of ComposeInvitation invocations.
func (m *MockComposerGateway) ComposeCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ComposeCalls)
}

// MockShareGateway is a mock implementation of the ShareGatewayInterface.
type MockShareGateway struct {
	// MockGetShareableLink defines the behavior for the GetShareableLink method.
	MockGetShareableLink func(ctx context.Context, shareCtx model.ShareContext) (*model.ShareLink, error)

	mu sync.Mutex

	// ShareCalls tracks the arguments passed to GetShareableLink.
	ShareCalls []model.ShareContext
}

// GetShareableLink mocks the GetShareableLink method of the ShareGatewayInterface.
func (m *MockShareGateway) GetShareableLink(ctx context.Context,
	shareCtx model.ShareContext) (*model.ShareLink, error) {
	m.mu.Lock()
	m.ShareCalls = append(m.ShareCalls, shareCtx)
	m.mu.Unlock()

	if m.MockGetShareableLink != nil {
		return m.MockGetShareableLink(ctx, shareCtx)
	}
	return &model.ShareLink{URL: "https://share.example.com/abc"}, nil
}

// ShareCallCount returns the number of GetShareableLink invocations.
func (m *MockShareGateway) ShareCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ShareCalls)
}

// MockContactSource is a mock implementation of the ContactSourceInterface.
type MockContactSource struct {
	// SourceKind is the kind reported by the source.
	SourceKind model.ContactSourceKind

	// IsAvailable is the capability probe outcome.
	IsAvailable bool

	// MockListContacts defines the behavior for the ListContacts method.
	MockListContacts func(ctx context.Context) ([]model.Contact, error)

	// ListCalls tracks the number of ListContacts invocations.
	ListCalls int
}

// Kind mocks the Kind method of the ContactSourceInterface.
func (m *MockContactSource) Kind() model.ContactSourceKind {
	return m.SourceKind
}

// Available mocks the Available method of the ContactSourceInterface.
func (m *MockContactSource) Available() bool {
	return m.IsAvailable
}

// ListContacts mocks the ListContacts method of the ContactSourceInterface.
func (m *MockContactSource) ListContacts(ctx context.Context) ([]model.Contact, error) {
	m.ListCalls++

	if m.MockListContacts != nil {
		return m.MockListContacts(ctx)
	}
	return []model.Contact{}, nil
}
