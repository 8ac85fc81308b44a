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

// Package constants defines constants for the invitation flow module.
package constants

import (
	"github.com/vrtxlabs/invitekit/internal/system/error/serviceerror"
)

// Client error structs

var ErrorInvalidTransition = serviceerror.ServiceError{
	Code:             "IFS-60001",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid transition",
	ErrorDescription: "The intent is not valid for the current screen",
}

var ErrorUnsupportedIntent = serviceerror.ServiceError{
	Code:             "IFS-60002",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "Unsupported intent type",
}

var ErrorInvalidEmail = serviceerror.ServiceError{
	Code:             "IFS-60003",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid input",
	ErrorDescription: "The entered email address is not valid",
}

var ErrorContactNotFound = serviceerror.ServiceError{
	Code:             "IFS-60004",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "No imported contact matches the given contact ID",
}

var ErrorConfigurationNotLoaded = serviceerror.ServiceError{
	Code:             "IFS-60005",
	Type:             serviceerror.ClientErrorType,
	Error:            "Configuration not loaded",
	ErrorDescription: "The widget configuration has not been loaded yet",
}

var ErrorCapabilityUnavailable = serviceerror.ServiceError{
	Code:             "IFS-60006",
	Type:             serviceerror.ClientErrorType,
	Error:            "Capability unavailable",
	ErrorDescription: "The requested contact source is not available on this platform",
}

var ErrorFlowClosed = serviceerror.ServiceError{
	Code:             "IFS-60007",
	Type:             serviceerror.ClientErrorType,
	Error:            "Flow closed",
	ErrorDescription: "The flow instance has been torn down",
}

// Server error structs

var ErrorSubmissionFailed = serviceerror.ServiceError{
	Code:             "IFS-65001",
	Type:             serviceerror.ServerErrorType,
	Error:            "Submission failed",
	ErrorDescription: "The invitation submission was rejected by the server",
}

var ErrorShareLinkUnavailable = serviceerror.ServiceError{
	Code:             "IFS-65002",
	Type:             serviceerror.ServerErrorType,
	Error:            "Share link unavailable",
	ErrorDescription: "Failed to obtain a shareable invite link",
}

var ErrorContactsImportFailed = serviceerror.ServiceError{
	Code:             "IFS-65003",
	Type:             serviceerror.ServerErrorType,
	Error:            "Contacts import failed",
	ErrorDescription: "Failed to list contacts from the selected source",
}
