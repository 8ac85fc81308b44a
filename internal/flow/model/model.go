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

// Package model defines the data structures for the invitation flow.
package model

import (
	"github.com/vrtxlabs/invitekit/internal/system/error/serviceerror"
)

// Screen identifies a screen of the invitation journey.
type Screen string

const (
	// ScreenMain is the landing screen of the flow.
	ScreenMain Screen = "main"
	// ScreenEmailEntry is the email invitation entry screen.
	ScreenEmailEntry Screen = "emailEntry"
	// ScreenContactsPicker is the device contacts picker screen.
	ScreenContactsPicker Screen = "contactsPicker"
	// ScreenContactsPickerExternal is the external (Google) contacts picker screen.
	ScreenContactsPickerExternal Screen = "contactsPickerExternal"
	// ScreenShareOptions is the share link options screen.
	ScreenShareOptions Screen = "shareOptions"
	// ScreenInviteContactsList is the imported contacts invitation list screen.
	ScreenInviteContactsList Screen = "inviteContactsList"
	// ScreenFindFriendsList is the friend suggestions list screen.
	ScreenFindFriendsList Screen = "findFriendsList"
	// ScreenIncomingInvitations is the received invitations screen.
	ScreenIncomingInvitations Screen = "incomingInvitations"
	// ScreenSubmitting indicates a submission in flight for the state's target.
	ScreenSubmitting Screen = "submitting"
	// ScreenSuccess indicates a completed submission for the state's target.
	ScreenSuccess Screen = "success"
	// ScreenFailure indicates a failed submission for the state's target.
	ScreenFailure Screen = "failure"
)

// TargetKind identifies what a submission target addresses.
type TargetKind string

const (
	// TargetKindEmail targets a manually entered email address.
	TargetKindEmail TargetKind = "email"
	// TargetKindContact targets an imported contact.
	TargetKindContact TargetKind = "contact"
)

// Target addresses a single submission attempt. Retry of a failed submission
// re-dispatches the same target, never an automatic replay.
type Target struct {
	Kind TargetKind
	// ID is the email address for email targets and the contact ID for contact targets.
	ID string
}

// Key returns the deduplication key of the target.
func (t Target) Key() string {
	return string(t.Kind) + ":" + t.ID
}

// FlowState is the tagged variant over the screens of the journey. Target is set
// only for submitting, success and failure states; Failure only for failure.
type FlowState struct {
	Screen  Screen
	Target  *Target
	Failure *serviceerror.ServiceError
}

// Contact is a person imported from a contact source.
type Contact struct {
	ID          string
	DisplayName string
	Emails      []string
	Phones      []string
	Source      ContactSourceKind
}

// Suggestion is a single entry of the invitation suggestions list.
type Suggestion struct {
	ID      string
	Contact Contact
	Reason  string
}

// IntentType identifies a user intent dispatched to the flow.
type IntentType string

const (
	// IntentSelectEmailMethod moves from main to the email entry screen.
	IntentSelectEmailMethod IntentType = "selectEmailMethod"
	// IntentSelectContactsImport moves from main to a contacts picker screen.
	IntentSelectContactsImport IntentType = "selectContactsImport"
	// IntentSelectShareOptions moves from main to the share options screen.
	IntentSelectShareOptions IntentType = "selectShareOptions"
	// IntentShowFindFriends moves from main to the friend suggestions list.
	IntentShowFindFriends IntentType = "showFindFriends"
	// IntentShowIncomingInvitations moves from main to the received invitations screen.
	IntentShowIncomingInvitations IntentType = "showIncomingInvitations"
	// IntentSubmitEmail submits the entered email address for invitation.
	IntentSubmitEmail IntentType = "submitEmail"
	// IntentInviteContact submits an invitation for an imported contact.
	IntentInviteContact IntentType = "inviteContact"
	// IntentDismissResult dismisses a success or failure screen back to main.
	IntentDismissResult IntentType = "dismissResult"
	// IntentDismissSuggestion removes a suggestion from the in-memory list.
	IntentDismissSuggestion IntentType = "dismissSuggestion"
)

// ContactSourceKind identifies the origin of a contacts import.
type ContactSourceKind string

const (
	// ContactSourceDevice denotes the on-device contact source.
	ContactSourceDevice ContactSourceKind = "device"
	// ContactSourceGoogle denotes the Google contact source.
	ContactSourceGoogle ContactSourceKind = "google"
	// ContactSourceApp denotes an app-provided contact source.
	ContactSourceApp ContactSourceKind = "app"
)

// Intent is a user intent dispatched to the flow state machine. Only the fields
// relevant to the intent type are set.
type Intent struct {
	Type          IntentType
	Email         string
	ContactID     string
	SuggestionID  string
	ContactSource ContactSourceKind
}

// SubmissionResult is the gateway-reported outcome of a submission.
type SubmissionResult struct {
	Success bool
	Reason  string
}

// ShareContext carries the parameters for requesting a shareable invite link.
type ShareContext struct {
	ComponentID string
	AuthScope   string
	Channel     string
}

// ShareLink is a shareable invite link with its optional expiry.
type ShareLink struct {
	URL       string
	ExpiresAt int64
}
