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

// Package cache provides the widget configuration cache with stale-while-revalidate
// semantics, in-flight refresh deduplication and subscriber notification.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/vrtxlabs/invitekit/internal/cache/store"
	"github.com/vrtxlabs/invitekit/internal/system/log"
)

const loggerComponentName = "ConfigCacheService"

// ConfigCacheServiceInterface defines the interface for the configuration cache service.
type ConfigCacheServiceInterface interface {
	// Get returns whatever is currently stored for the key, however old. It never blocks.
	Get(key CacheKey) (*CacheEntry, bool)
	// Request is the stale-while-revalidate entry point. The returned entry is the
	// current snapshot if one exists (possibly nil otherwise), and the channel
	// resolves once with the outcome of the in-flight or newly started refresh.
	Request(key CacheKey, fetcher FetcherInterface) (*CacheEntry, <-chan RefreshResult)
	// Prefetch triggers a refresh without a consuming caller. It never panics past
	// its own boundary and never duplicates an in-flight fetch for the key.
	Prefetch(key CacheKey, fetcher FetcherInterface)
	// Subscribe registers a subscriber for fresh snapshots of the key. The returned
	// function removes the subscription.
	Subscribe(key CacheKey, subscriber SubscriberInterface) func()
	// GetStats returns cache statistics.
	GetStats() CacheStat
}

// refreshOperation tracks a single in-flight refresh for a key. The done channel is
// closed after result is populated; every waiter observes the same outcome.
type refreshOperation struct {
	done   chan struct{}
	result RefreshResult
}

// ConfigCacheService is the default implementation of the ConfigCacheServiceInterface.
type ConfigCacheService struct {
	mu            sync.Mutex
	entries       map[CacheKey]*CacheEntry
	pending       map[CacheKey]*refreshOperation
	subscribers   map[CacheKey]map[int]SubscriberInterface
	nextSubID     int
	snapshotStore store.SnapshotStoreInterface
	hitCount      int64
	missCount     int64
	refreshCount  int64
	refreshFails  int64
}

// NewConfigCacheService creates a new configuration cache service. The snapshot
// store is optional; pass nil for a purely in-memory cache. When a store is given,
// previously persisted snapshots are loaded so Get can serve across restarts.
func NewConfigCacheService(snapshotStore store.SnapshotStoreInterface) ConfigCacheServiceInterface {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	service := &ConfigCacheService{
		entries:       make(map[CacheKey]*CacheEntry),
		pending:       make(map[CacheKey]*refreshOperation),
		subscribers:   make(map[CacheKey]map[int]SubscriberInterface),
		snapshotStore: snapshotStore,
	}

	if snapshotStore != nil {
		records, err := snapshotStore.ListSnapshots()
		if err != nil {
			logger.Warn("Failed to load persisted configuration snapshots", log.Error(err))
		} else {
			for _, record := range records {
				key := CacheKey{ComponentID: record.ComponentID, AuthScope: record.AuthScope}
				service.entries[key] = &CacheEntry{
					Key:                key,
					Snapshot:           record.Snapshot,
					FetchedAt:          record.FetchedAt,
					SessionAttestation: record.SessionAttestation,
				}
			}
			if len(records) > 0 {
				logger.Debug("Loaded persisted configuration snapshots", log.Int("count", len(records)))
			}
		}
	}

	return service
}

// Get retrieves the current cache entry for the key without blocking.
func (s *ConfigCacheService) Get(key CacheKey) (*CacheEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.entries[key]
	if found {
		s.hitCount++
	} else {
		s.missCount++
	}
	return entry, found
}

// Request returns the current snapshot immediately and attaches the caller to the
// in-flight refresh for the key, starting one only when none is pending.
func (s *ConfigCacheService) Request(key CacheKey, fetcher FetcherInterface) (*CacheEntry, <-chan RefreshResult) {
	s.mu.Lock()
	entry := s.entries[key]
	op := s.ensureRefreshLocked(key, fetcher)
	s.mu.Unlock()

	result := make(chan RefreshResult, 1)
	go func() {
		<-op.done
		result <- op.result
	}()

	return entry, result
}

// Prefetch triggers a background refresh for the key if none is already in flight.
func (s *ConfigCacheService) Prefetch(key CacheKey, fetcher FetcherInterface) {
	defer func() {
		if r := recover(); r != nil {
			log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
				Error("Recovered from panic during prefetch", log.String(log.LoggerKeyCacheKey, key.ToString()), log.Any("panic", r))
		}
	}()

	s.mu.Lock()
	s.ensureRefreshLocked(key, fetcher)
	s.mu.Unlock()
}

// Subscribe registers a subscriber for the key and returns its removal function.
func (s *ConfigCacheService) Subscribe(key CacheKey, subscriber SubscriberInterface) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subscribers[key] == nil {
		s.subscribers[key] = make(map[int]SubscriberInterface)
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[key][id] = subscriber

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers[key], id)
	}
}

// GetStats returns cache statistics.
func (s *ConfigCacheService) GetStats() CacheStat {
	s.mu.Lock()
	defer s.mu.Unlock()

	return CacheStat{
		Size:             len(s.entries),
		HitCount:         s.hitCount,
		MissCount:        s.missCount,
		RefreshCount:     s.refreshCount,
		RefreshFailCount: s.refreshFails,
	}
}

// ensureRefreshLocked returns the pending refresh operation for the key, starting a
// new one when none exists. Concurrent callers for the same key always attach to
// the same operation, so the fetcher is invoked at most once per refresh cycle.
// Must be called with the service mutex held.
func (s *ConfigCacheService) ensureRefreshLocked(key CacheKey, fetcher FetcherInterface) *refreshOperation {
	if op, inFlight := s.pending[key]; inFlight {
		return op
	}

	op := &refreshOperation{done: make(chan struct{})}
	s.pending[key] = op
	s.refreshCount++

	attestation := ""
	if entry, found := s.entries[key]; found {
		attestation = entry.SessionAttestation
	}

	go s.runRefresh(key, fetcher, attestation, op)
	return op
}

// runRefresh performs the fetch and commits the outcome. The refresh deliberately
// runs on a background context: a caller or view disappearing must not cancel it,
// so the next Get still benefits from the result.
func (s *ConfigCacheService) runRefresh(key CacheKey, fetcher FetcherInterface, attestation string,
	op *refreshOperation) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyCacheKey, key.ToString()))

	fetched, err := fetcher.Fetch(context.Background(), FetchRequest{
		Key:                key,
		SessionAttestation: attestation,
	})

	if err != nil {
		logger.Warn("Configuration refresh failed, retaining stale snapshot", log.Error(err))

		s.mu.Lock()
		delete(s.pending, key)
		s.refreshFails++
		s.mu.Unlock()

		op.result = RefreshResult{Err: err}
		close(op.done)
		return
	}

	entry := &CacheEntry{
		Key:                key,
		Snapshot:           fetched.Config,
		FetchedAt:          time.Now(),
		SessionAttestation: fetched.SessionAttestation,
	}

	s.mu.Lock()
	// A refresh that reports no new attestation keeps the previously stored one.
	if entry.SessionAttestation == "" {
		if previous, found := s.entries[key]; found {
			entry.SessionAttestation = previous.SessionAttestation
		}
	}
	s.entries[key] = entry
	delete(s.pending, key)
	notify := make([]SubscriberInterface, 0, len(s.subscribers[key]))
	for _, subscriber := range s.subscribers[key] {
		notify = append(notify, subscriber)
	}
	s.mu.Unlock()

	s.persistSnapshot(entry, logger)

	for _, subscriber := range notify {
		subscriber.OnConfigurationUpdated(key, entry.Snapshot)
	}

	op.result = RefreshResult{Entry: entry}
	close(op.done)
}

// persistSnapshot upserts the refreshed snapshot into the snapshot store when one
// is configured. Persistence failures are logged and never fail the refresh.
func (s *ConfigCacheService) persistSnapshot(entry *CacheEntry, logger *log.Logger) {
	if s.snapshotStore == nil {
		return
	}

	err := s.snapshotStore.UpsertSnapshot(store.SnapshotRecord{
		ComponentID:        entry.Key.ComponentID,
		AuthScope:          entry.Key.AuthScope,
		Snapshot:           entry.Snapshot,
		SessionAttestation: entry.SessionAttestation,
		FetchedAt:          entry.FetchedAt,
	})
	if err != nil {
		logger.Warn("Failed to persist configuration snapshot", log.Error(err))
	}
}
