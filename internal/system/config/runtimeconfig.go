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

package config

import "sync"

// InviteKitRuntime holds the runtime configuration for the SDK.
type InviteKitRuntime struct {
	InviteKitHome string `yaml:"invitekit_home"`
	Config        Config `yaml:"config"`
}

var (
	runtimeConfig *InviteKitRuntime
	once          sync.Once
)

// InitializeInviteKitRuntime initializes the InviteKitRuntime configuration.
func InitializeInviteKitRuntime(inviteKitHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &InviteKitRuntime{
			InviteKitHome: inviteKitHome,
			Config:        *config,
		}
	})

	return nil
}

// GetInviteKitRuntime returns the InviteKitRuntime configuration.
func GetInviteKitRuntime() *InviteKitRuntime {
	if runtimeConfig == nil {
		panic("InviteKitRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetInviteKitRuntime resets the InviteKitRuntime.
// This should only be used in tests to reset the singleton state.
func ResetInviteKitRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
