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

// Package constants defines constants for the widget configuration module.
package constants

import (
	"github.com/vrtxlabs/invitekit/internal/system/error/serviceerror"
)

// FormWidgetPropKey is the stable prop key under which the invite form page data is delivered.
const FormWidgetPropKey = "formWidget"

// Client error structs

var ErrorMalformedConfiguration = serviceerror.ServiceError{
	Code:             "WCM-60001",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid widget configuration",
	ErrorDescription: "Failed to decode the widget configuration payload",
}

var ErrorUnsupportedAttributeShape = serviceerror.ServiceError{
	Code:             "WCM-60002",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid widget configuration",
	ErrorDescription: "An attribute value uses an unsupported JSON shape",
}

var ErrorUnsupportedPropShape = serviceerror.ServiceError{
	Code:             "WCM-60003",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid widget configuration",
	ErrorDescription: "No known prop value shape matched the payload",
}
