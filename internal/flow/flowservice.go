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

// Package flow provides the invitation flow state machine. All state mutations of
// a flow instance are serialized on its mutex: one intent or completion applies at
// a time, so no two transitions ever race on the same instance.
package flow

import (
	"context"
	"sync"

	"github.com/vrtxlabs/invitekit/internal/analytics"
	"github.com/vrtxlabs/invitekit/internal/cache"
	"github.com/vrtxlabs/invitekit/internal/flow/constants"
	"github.com/vrtxlabs/invitekit/internal/flow/model"
	"github.com/vrtxlabs/invitekit/internal/gateway"
	"github.com/vrtxlabs/invitekit/internal/system/error/serviceerror"
	"github.com/vrtxlabs/invitekit/internal/system/log"
	"github.com/vrtxlabs/invitekit/internal/system/utils"
	widgetmodel "github.com/vrtxlabs/invitekit/internal/widget/model"
)

const loggerComponentName = "InviteFlowService"

// InviteFlowServiceInterface defines the interface for an invitation flow instance.
type InviteFlowServiceInterface interface {
	// FlowID returns the unique identifier of this flow instance.
	FlowID() string
	// CurrentState returns the current flow state.
	CurrentState() model.FlowState
	// LoadConfiguration requests the widget configuration through the cache using
	// stale-while-revalidate semantics and returns the immediate snapshot, if any,
	// plus the refresh future.
	LoadConfiguration() (*widgetmodel.WidgetConfiguration, <-chan cache.RefreshResult)
	// Dispatch applies a user intent and returns the resulting state.
	Dispatch(intent model.Intent) (model.FlowState, *serviceerror.ServiceError)
	// AvailableContactSources returns the contact source kinds usable on this
	// platform, probed eagerly at flow entry.
	AvailableContactSources() []model.ContactSourceKind
	// Contacts returns the imported contacts of the current picker session.
	Contacts() []model.Contact
	// Suggestions returns the current invitation suggestions list.
	Suggestions() []model.Suggestion
	// SetSuggestions replaces the invitation suggestions list.
	SetSuggestions(suggestions []model.Suggestion)
	// ShareLink returns the shareable invite link once obtained, or nil.
	ShareLink() *model.ShareLink
	// Close tears the flow instance down. Further subscriber notifications stop
	// and submissions that have not yet reached their gateway are discarded; a
	// submission already handed to a gateway is not retracted.
	Close()
}

// Dependencies bundles the collaborators of a flow instance. Every flow gets its
// dependencies injected; nothing is ambient shared state.
type Dependencies struct {
	CacheService      cache.ConfigCacheServiceInterface
	Fetcher           cache.FetcherInterface
	SubmissionGateway gateway.SubmissionGatewayInterface
	ComposerGateway   gateway.ComposerGatewayInterface
	ShareGateway      gateway.ShareGatewayInterface
	ContactSources    []gateway.ContactSourceInterface
	Analytics         analytics.EventEmitterInterface
}

// InviteFlowService is the default implementation of the InviteFlowServiceInterface.
type InviteFlowService struct {
	flowID string
	key    cache.CacheKey
	deps   Dependencies

	mu          sync.Mutex
	state       model.FlowState
	snapshot    *widgetmodel.WidgetConfiguration
	contacts    []model.Contact
	suggestions []model.Suggestion
	shareLink   *model.ShareLink
	pending     map[string]struct{}
	available   map[model.ContactSourceKind]gateway.ContactSourceInterface
	closed      bool
	unsubscribe func()
}

// NewInviteFlowService creates a new flow instance for the given cache key. The
// contact capability probe runs here, at flow entry: sources that report
// unavailable are dropped so the corresponding import option is hidden rather
// than failing at submit time.
func NewInviteFlowService(key cache.CacheKey, deps Dependencies) InviteFlowServiceInterface {
	service := &InviteFlowService{
		flowID:    utils.GenerateUUID(),
		key:       key,
		deps:      deps,
		state:     model.FlowState{Screen: model.ScreenMain},
		pending:   make(map[string]struct{}),
		available: make(map[model.ContactSourceKind]gateway.ContactSourceInterface),
	}

	for _, source := range deps.ContactSources {
		if source.Available() {
			service.available[source.Kind()] = source
		}
	}

	if deps.CacheService != nil {
		service.unsubscribe = deps.CacheService.Subscribe(key, service)
	}

	return service
}

// FlowID returns the unique identifier of this flow instance.
func (s *InviteFlowService) FlowID() string {
	return s.flowID
}

// CurrentState returns the current flow state.
func (s *InviteFlowService) CurrentState() model.FlowState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnConfigurationUpdated receives fresh snapshots from the cache. Delivery stops
// once the flow is closed.
func (s *InviteFlowService) OnConfigurationUpdated(_ cache.CacheKey, snapshot *widgetmodel.WidgetConfiguration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.snapshot = snapshot
}

// LoadConfiguration requests the widget configuration through the cache.
func (s *InviteFlowService) LoadConfiguration() (*widgetmodel.WidgetConfiguration, <-chan cache.RefreshResult) {
	entry, refresh := s.deps.CacheService.Request(s.key, s.deps.Fetcher)

	var snapshot *widgetmodel.WidgetConfiguration
	if entry != nil {
		snapshot = entry.Snapshot
	}

	s.mu.Lock()
	if !s.closed && snapshot != nil {
		s.snapshot = snapshot
	}
	s.mu.Unlock()

	return snapshot, refresh
}

// AvailableContactSources returns the contact source kinds usable on this platform.
func (s *InviteFlowService) AvailableContactSources() []model.ContactSourceKind {
	s.mu.Lock()
	defer s.mu.Unlock()

	kinds := make([]model.ContactSourceKind, 0, len(s.available))
	for kind := range s.available {
		kinds = append(kinds, kind)
	}
	return kinds
}

// Contacts returns the imported contacts of the current picker session.
func (s *InviteFlowService) Contacts() []model.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts := make([]model.Contact, len(s.contacts))
	copy(contacts, s.contacts)
	return contacts
}

// Suggestions returns the current invitation suggestions list.
func (s *InviteFlowService) Suggestions() []model.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	suggestions := make([]model.Suggestion, len(s.suggestions))
	copy(suggestions, s.suggestions)
	return suggestions
}

// SetSuggestions replaces the invitation suggestions list.
func (s *InviteFlowService) SetSuggestions(suggestions []model.Suggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = suggestions
}

// ShareLink returns the shareable invite link once obtained, or nil.
func (s *InviteFlowService) ShareLink() *model.ShareLink {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shareLink
}

// Dispatch applies a user intent and returns the resulting state.
func (s *InviteFlowService) Dispatch(intent model.Intent) (model.FlowState, *serviceerror.ServiceError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.state, &constants.ErrorFlowClosed
	}

	switch intent.Type {
	case model.IntentSelectEmailMethod:
		return s.handleSelectEmailMethod()
	case model.IntentSelectContactsImport:
		return s.handleSelectContactsImport(intent.ContactSource)
	case model.IntentSelectShareOptions:
		return s.handleSelectShareOptions()
	case model.IntentShowFindFriends:
		return s.handleScreenChange(model.ScreenMain, model.ScreenFindFriendsList)
	case model.IntentShowIncomingInvitations:
		return s.handleScreenChange(model.ScreenMain, model.ScreenIncomingInvitations)
	case model.IntentSubmitEmail:
		return s.handleSubmitEmail(intent.Email)
	case model.IntentInviteContact:
		return s.handleInviteContact(intent.ContactID)
	case model.IntentDismissResult:
		return s.handleDismissResult()
	case model.IntentDismissSuggestion:
		return s.handleDismissSuggestion(intent.SuggestionID)
	default:
		return s.state, &constants.ErrorUnsupportedIntent
	}
}

// Close tears the flow instance down.
func (s *InviteFlowService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// handleSelectEmailMethod moves from main to the email entry screen. The email
// method needs the widget configuration for its form description.
func (s *InviteFlowService) handleSelectEmailMethod() (model.FlowState, *serviceerror.ServiceError) {
	if s.state.Screen != model.ScreenMain {
		return s.state, &constants.ErrorInvalidTransition
	}
	if s.snapshot == nil {
		return s.state, &constants.ErrorConfigurationNotLoaded
	}

	s.state = model.FlowState{Screen: model.ScreenEmailEntry}
	return s.state, nil
}

// handleSelectContactsImport moves from main to the picker screen of the chosen
// source and starts the import.
func (s *InviteFlowService) handleSelectContactsImport(
	kind model.ContactSourceKind) (model.FlowState, *serviceerror.ServiceError) {
	if s.state.Screen != model.ScreenMain {
		return s.state, &constants.ErrorInvalidTransition
	}

	source, ok := s.available[kind]
	if !ok {
		return s.state, &constants.ErrorCapabilityUnavailable
	}

	picker := model.ScreenContactsPicker
	if kind == model.ContactSourceGoogle {
		picker = model.ScreenContactsPickerExternal
	}
	s.state = model.FlowState{Screen: picker}

	go s.importContacts(source, picker)

	return s.state, nil
}

// handleSelectShareOptions moves from main to the share options screen and
// requests the shareable link if one has not been obtained yet this session.
func (s *InviteFlowService) handleSelectShareOptions() (model.FlowState, *serviceerror.ServiceError) {
	if s.state.Screen != model.ScreenMain {
		return s.state, &constants.ErrorInvalidTransition
	}
	if s.deps.ShareGateway == nil {
		return s.state, &constants.ErrorShareLinkUnavailable
	}

	s.state = model.FlowState{Screen: model.ScreenShareOptions}

	if s.shareLink == nil {
		go s.obtainShareLink()
	}

	return s.state, nil
}

// handleScreenChange performs a plain screen transition.
func (s *InviteFlowService) handleScreenChange(from, to model.Screen) (model.FlowState, *serviceerror.ServiceError) {
	if s.state.Screen != from {
		return s.state, &constants.ErrorInvalidTransition
	}
	s.state = model.FlowState{Screen: to}
	return s.state, nil
}

// handleSubmitEmail validates the email locally and, when valid, starts exactly
// one submission for the target. Validation never reaches the network.
func (s *InviteFlowService) handleSubmitEmail(email string) (model.FlowState, *serviceerror.ServiceError) {
	if !IsValidEmail(email) {
		if s.state.Screen != model.ScreenEmailEntry && s.state.Screen != model.ScreenFailure {
			return s.state, &constants.ErrorInvalidTransition
		}
		return s.state, &constants.ErrorInvalidEmail
	}

	target := model.Target{Kind: model.TargetKindEmail, ID: email}
	if _, inFlight := s.pending[target.Key()]; inFlight {
		// A second tap for the same target while one is in flight is a no-op.
		return s.state, nil
	}
	if s.state.Screen != model.ScreenEmailEntry && s.state.Screen != model.ScreenFailure {
		return s.state, &constants.ErrorInvalidTransition
	}
	s.pending[target.Key()] = struct{}{}
	s.state = model.FlowState{Screen: model.ScreenSubmitting, Target: &target}

	go s.submitEmail(target)

	return s.state, nil
}

// handleInviteContact starts a submission for an imported contact through the
// external composer.
func (s *InviteFlowService) handleInviteContact(contactID string) (model.FlowState, *serviceerror.ServiceError) {
	target := model.Target{Kind: model.TargetKindContact, ID: contactID}
	if _, inFlight := s.pending[target.Key()]; inFlight {
		return s.state, nil
	}
	// Submitting stays open for further contacts: submissions for distinct
	// targets may overlap and their confirmations can arrive out of order.
	if s.state.Screen != model.ScreenInviteContactsList && s.state.Screen != model.ScreenFailure &&
		s.state.Screen != model.ScreenSubmitting {
		return s.state, &constants.ErrorInvalidTransition
	}

	var contact *model.Contact
	for i := range s.contacts {
		if s.contacts[i].ID == contactID {
			contact = &s.contacts[i]
			break
		}
	}
	if contact == nil {
		return s.state, &constants.ErrorContactNotFound
	}

	s.pending[target.Key()] = struct{}{}
	s.state = model.FlowState{Screen: model.ScreenSubmitting, Target: &target}

	message := ""
	if s.shareLink != nil {
		message = s.shareLink.URL
	}

	go s.composeInvitation(target, *contact, message)

	return s.state, nil
}

// handleDismissResult dismisses a success or failure screen back to main. The
// flow is re-entrant: main accepts a fresh attempt afterwards.
func (s *InviteFlowService) handleDismissResult() (model.FlowState, *serviceerror.ServiceError) {
	if s.state.Screen != model.ScreenSuccess && s.state.Screen != model.ScreenFailure {
		return s.state, &constants.ErrorInvalidTransition
	}
	s.state = model.FlowState{Screen: model.ScreenMain}
	return s.state, nil
}

// handleDismissSuggestion removes the suggestion from the in-memory list
// immediately. Dismissal is local-only and never waits for the network.
func (s *InviteFlowService) handleDismissSuggestion(
	suggestionID string) (model.FlowState, *serviceerror.ServiceError) {
	for i := range s.suggestions {
		if s.suggestions[i].ID == suggestionID {
			s.suggestions = append(s.suggestions[:i], s.suggestions[i+1:]...)
			break
		}
	}
	return s.state, nil
}

// importContacts lists contacts from the source and moves to the invitation list.
func (s *InviteFlowService) importContacts(source gateway.ContactSourceInterface, picker model.Screen) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyFlowID, s.flowID))

	contacts, err := source.ListContacts(context.Background())

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state.Screen != picker {
		return
	}

	if err != nil {
		logger.Warn("Contacts import failed", log.Error(err))
		svcErr := constants.ErrorContactsImportFailed
		s.state = model.FlowState{Screen: model.ScreenFailure, Failure: &svcErr}
		return
	}

	s.contacts = contacts
	s.state = model.FlowState{Screen: model.ScreenInviteContactsList}
}

// obtainShareLink requests the shareable link for this flow session.
func (s *InviteFlowService) obtainShareLink() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyFlowID, s.flowID))

	link, err := s.deps.ShareGateway.GetShareableLink(context.Background(), model.ShareContext{
		ComponentID: s.key.ComponentID,
		AuthScope:   s.key.AuthScope,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if err != nil {
		logger.Warn("Failed to obtain shareable link", log.Error(err))
		return
	}
	s.shareLink = link
}

// submitEmail performs the email submission through the submission gateway.
func (s *InviteFlowService) submitEmail(target model.Target) {
	// The flow may have been torn down between accepting the intent and this
	// point; a discarded submission must not reach the gateway.
	s.mu.Lock()
	if s.closed {
		delete(s.pending, target.Key())
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	result, err := s.deps.SubmissionGateway.Submit(context.Background(), target,
		map[string]string{"email": target.ID})
	s.completeSubmission(target, result, err)
}

// composeInvitation hands the contact invitation to the external composer and
// waits for its confirmation signal, which may arrive out of order relative to
// other contacts' submissions.
func (s *InviteFlowService) composeInvitation(target model.Target, contact model.Contact, message string) {
	s.mu.Lock()
	if s.closed {
		delete(s.pending, target.Key())
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	result, err := s.deps.ComposerGateway.ComposeInvitation(context.Background(), contact, message)
	s.completeSubmission(target, result, err)
}

// completeSubmission applies a submission outcome. Failures are scoped to their
// target and presented as a retryable failure state; completions arriving after
// Close are dropped.
func (s *InviteFlowService) completeSubmission(target model.Target, result *model.SubmissionResult, err error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyFlowID, s.flowID), log.String("target", log.MaskString(target.ID)))

	s.mu.Lock()
	delete(s.pending, target.Key())

	if s.closed {
		s.mu.Unlock()
		return
	}

	if err != nil || result == nil || !result.Success {
		svcErr := constants.ErrorSubmissionFailed
		if err != nil {
			svcErr.ErrorDescription = err.Error()
			logger.Warn("Invitation submission failed", log.Error(err))
		} else if result != nil && result.Reason != "" {
			svcErr.ErrorDescription = result.Reason
			logger.Warn("Invitation submission rejected", log.String("reason", result.Reason))
		}
		s.state = model.FlowState{Screen: model.ScreenFailure, Target: &target, Failure: &svcErr}
		s.mu.Unlock()
		return
	}

	s.state = model.FlowState{Screen: model.ScreenSuccess, Target: &target}
	s.mu.Unlock()

	// Analytics annotates the transition; it never blocks or fails it.
	if s.deps.Analytics != nil {
		s.deps.Analytics.Publish(analytics.Event{
			Name:   "invitation_sent",
			FlowID: s.flowID,
			Properties: map[string]string{
				"targetKind": string(target.Kind),
			},
		})
	}
}
