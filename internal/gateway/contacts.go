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

	"github.com/vrtxlabs/invitekit/internal/flow/model"
)

// AppContactSource serves contacts supplied by the embedding application. It is
// available whenever the app handed over at least one contact.
type AppContactSource struct {
	contacts []model.Contact
}

// NewAppContactSource creates a contact source over an app-provided contact list.
func NewAppContactSource(contacts []model.Contact) ContactSourceInterface {
	return &AppContactSource{contacts: contacts}
}

// Kind returns the origin of this contact source.
func (s *AppContactSource) Kind() model.ContactSourceKind {
	return model.ContactSourceApp
}

// Available reports whether the app handed over any contacts.
func (s *AppContactSource) Available() bool {
	return len(s.contacts) > 0
}

// ListContacts returns the app-provided contacts.
func (s *AppContactSource) ListContacts(_ context.Context) ([]model.Contact, error) {
	contacts := make([]model.Contact, len(s.contacts))
	copy(contacts, s.contacts)
	return contacts, nil
}

// ContactListFunc adapts a platform contact picker callback into a
// ContactSourceInterface. The availability probe is evaluated eagerly at flow
// entry, so an unavailable picker hides the import option instead of failing at
// pick time.
type ContactListFunc struct {
	SourceKind  model.ContactSourceKind
	IsAvailable func() bool
	List        func(ctx context.Context) ([]model.Contact, error)
}

// Kind returns the origin of this contact source.
func (f *ContactListFunc) Kind() model.ContactSourceKind {
	return f.SourceKind
}

// Available reports whether the underlying platform capability is present.
func (f *ContactListFunc) Available() bool {
	if f.IsAvailable == nil {
		return false
	}
	return f.IsAvailable()
}

// ListContacts invokes the platform callback.
func (f *ContactListFunc) ListContacts(ctx context.Context) ([]model.Contact, error) {
	return f.List(ctx)
}

// ComposerFunc adapts a platform message composer callback into a
// ComposerGatewayInterface, the same way http.HandlerFunc adapts handlers.
type ComposerFunc func(ctx context.Context, contact model.Contact, message string) (*model.SubmissionResult, error)

// ComposeInvitation invokes the wrapped composer callback.
func (f ComposerFunc) ComposeInvitation(ctx context.Context, contact model.Contact,
	message string) (*model.SubmissionResult, error) {
	return f(ctx, contact, message)
}
