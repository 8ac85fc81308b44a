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

// Package gateway defines the typed interfaces to the external capabilities the
// flow depends on, together with their HTTP-backed reference implementations.
// Timeouts are the responsibility of the implementations here; the flow observes
// them as ordinary failures.
package gateway

import (
	"context"

	"github.com/vrtxlabs/invitekit/internal/flow/model"
)

// SubmissionGatewayInterface submits an invitation for a target. Errors are
// transport failures; a reachable server reports rejection via SubmissionResult.
type SubmissionGatewayInterface interface {
	Submit(ctx context.Context, target model.Target, payload map[string]string) (*model.SubmissionResult, error)
}

// ComposerGatewayInterface hands an invitation to an external message composer
// (for example the platform SMS sheet). The call resolves only once the composer
// reports its own confirmation signal, which may arrive long after the handoff.
type ComposerGatewayInterface interface {
	ComposeInvitation(ctx context.Context, contact model.Contact, message string) (*model.SubmissionResult, error)
}

// ShareGatewayInterface obtains a shareable invite link.
type ShareGatewayInterface interface {
	GetShareableLink(ctx context.Context, shareCtx model.ShareContext) (*model.ShareLink, error)
}

// ContactSourceInterface lists contacts from one origin (device, Google or the
// embedding app). Available is a cheap capability probe evaluated at flow entry.
type ContactSourceInterface interface {
	Kind() model.ContactSourceKind
	Available() bool
	ListContacts(ctx context.Context) ([]model.Contact, error)
}

// CredentialsProviderInterface supplies the bearer token attached to outbound
// requests. Token acquisition itself lives outside the SDK.
type CredentialsProviderInterface interface {
	AccessToken(ctx context.Context) (string, error)
}
