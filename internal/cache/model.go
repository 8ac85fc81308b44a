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

package cache

import (
	"context"
	"time"

	widgetmodel "github.com/vrtxlabs/invitekit/internal/widget/model"
)

// CacheKey identifies a cached widget configuration. Distinct users or components
// must never share cache state, so the key carries both dimensions.
type CacheKey struct {
	ComponentID string
	AuthScope   string
}

// ToString returns the string representation of the cache key.
func (key CacheKey) ToString() string {
	return key.ComponentID + ":" + key.AuthScope
}

// CacheEntry is a stored configuration snapshot together with its fetch metadata.
type CacheEntry struct {
	Key                CacheKey
	Snapshot           *widgetmodel.WidgetConfiguration
	FetchedAt          time.Time
	SessionAttestation string
}

// RefreshResult is delivered to callers awaiting a configuration refresh.
// Exactly one of Entry and Err is set.
type RefreshResult struct {
	Entry *CacheEntry
	Err   error
}

// FetchRequest carries the parameters of a configuration fetch. The session
// attestation from the previous successful fetch, if any, is echoed back to
// the server.
type FetchRequest struct {
	Key                CacheKey
	SessionAttestation string
}

// FetchResult is the outcome of a successful configuration fetch.
type FetchResult struct {
	Config             *widgetmodel.WidgetConfiguration
	SessionAttestation string
}

// FetcherInterface abstracts the transport used to retrieve a widget configuration.
type FetcherInterface interface {
	Fetch(ctx context.Context, request FetchRequest) (*FetchResult, error)
}

// SubscriberInterface receives push notifications when a fresh snapshot lands for
// a subscribed key.
type SubscriberInterface interface {
	OnConfigurationUpdated(key CacheKey, snapshot *widgetmodel.WidgetConfiguration)
}

// CacheStat represents cache statistics.
type CacheStat struct {
	Size             int
	HitCount         int64
	MissCount        int64
	RefreshCount     int64
	RefreshFailCount int64
}
