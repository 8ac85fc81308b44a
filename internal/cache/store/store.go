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

// Package store provides the persistence layer for widget configuration snapshots.
// The stored format is internal to the SDK and is not a compatibility surface.
package store

import (
	"fmt"
	"time"

	"github.com/vrtxlabs/invitekit/internal/system/database/provider"
	"github.com/vrtxlabs/invitekit/internal/system/log"
	widgetmodel "github.com/vrtxlabs/invitekit/internal/widget/model"
)

const loggerComponentName = "SnapshotStore"

// SnapshotRecord is a persisted configuration snapshot row.
type SnapshotRecord struct {
	ComponentID        string
	AuthScope          string
	Snapshot           *widgetmodel.WidgetConfiguration
	SessionAttestation string
	FetchedAt          time.Time
}

// SnapshotStoreInterface defines the interface for snapshot persistence operations.
type SnapshotStoreInterface interface {
	Init() error
	ListSnapshots() ([]SnapshotRecord, error)
	GetSnapshot(componentID, authScope string) (*SnapshotRecord, error)
	UpsertSnapshot(record SnapshotRecord) error
	DeleteSnapshot(componentID, authScope string) error
}

// SnapshotStore is the default implementation of the SnapshotStoreInterface.
type SnapshotStore struct {
	dbProvider provider.DBProviderInterface
}

// NewSnapshotStore creates a new snapshot store backed by the given database provider.
func NewSnapshotStore(dbProvider provider.DBProviderInterface) SnapshotStoreInterface {
	return &SnapshotStore{
		dbProvider: dbProvider,
	}
}

// Init creates the snapshot table if it does not exist.
func (s *SnapshotStore) Init() error {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameSnapshots)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	if _, err := dbClient.Execute(QueryCreateSnapshotTable); err != nil {
		return fmt.Errorf("failed to create snapshot table: %w", err)
	}
	return nil
}

// ListSnapshots returns all persisted snapshots. Rows whose snapshot payload no
// longer decodes are skipped and logged, not fatal: a stale on-disk row must never
// keep the SDK from starting.
func (s *SnapshotStore) ListSnapshots() ([]SnapshotRecord, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameSnapshots)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryListSnapshots)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	records := make([]SnapshotRecord, 0, len(results))
	for _, row := range results {
		record, err := buildSnapshotRecord(row)
		if err != nil {
			logger.Warn("Skipping undecodable persisted snapshot", log.Error(err))
			continue
		}
		records = append(records, *record)
	}

	return records, nil
}

// GetSnapshot returns the persisted snapshot for the key, or nil when none exists.
func (s *SnapshotStore) GetSnapshot(componentID, authScope string) (*SnapshotRecord, error) {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameSnapshots)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetSnapshot, componentID, authScope)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	return buildSnapshotRecord(results[0])
}

// UpsertSnapshot inserts or replaces the snapshot row for the record's key.
func (s *SnapshotStore) UpsertSnapshot(record SnapshotRecord) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameSnapshots)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	encoded, err := widgetmodel.Encode(record.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = dbClient.Execute(QueryUpsertSnapshot, record.ComponentID, record.AuthScope,
		string(encoded), record.SessionAttestation, record.FetchedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

// DeleteSnapshot removes the snapshot row for the key.
func (s *SnapshotStore) DeleteSnapshot(componentID, authScope string) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameSnapshots)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	if _, err := dbClient.Execute(QueryDeleteSnapshot, componentID, authScope); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// buildSnapshotRecord converts a database row into a snapshot record.
func buildSnapshotRecord(row map[string]interface{}) (*SnapshotRecord, error) {
	componentID, ok := row["component_id"].(string)
	if !ok {
		componentID, _ = row["COMPONENT_ID"].(string)
	}
	authScope, ok := row["auth_scope"].(string)
	if !ok {
		authScope, _ = row["AUTH_SCOPE"].(string)
	}
	snapshotRaw := stringColumn(row, "snapshot", "SNAPSHOT")
	attestation := stringColumn(row, "session_attestation", "SESSION_ATTESTATION")
	fetchedAt := int64Column(row, "fetched_at", "FETCHED_AT")

	config, err := widgetmodel.Decode([]byte(snapshotRaw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode persisted snapshot for %s/%s: %w",
			componentID, authScope, err)
	}

	return &SnapshotRecord{
		ComponentID:        componentID,
		AuthScope:          authScope,
		Snapshot:           config,
		SessionAttestation: attestation,
		FetchedAt:          time.Unix(fetchedAt, 0),
	}, nil
}

// stringColumn reads a string column tolerating both lower and upper case column names.
func stringColumn(row map[string]interface{}, names ...string) string {
	for _, name := range names {
		switch value := row[name].(type) {
		case string:
			return value
		case []byte:
			return string(value)
		}
	}
	return ""
}

// int64Column reads an integer column tolerating driver-specific numeric types.
func int64Column(row map[string]interface{}, names ...string) int64 {
	for _, name := range names {
		switch value := row[name].(type) {
		case int64:
			return value
		case int:
			return int64(value)
		case float64:
			return int64(value)
		}
	}
	return 0
}
