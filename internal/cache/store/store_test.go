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

package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/vrtxlabs/invitekit/internal/system/database/client"
	dbmodel "github.com/vrtxlabs/invitekit/internal/system/database/model"
	widgetmodel "github.com/vrtxlabs/invitekit/internal/widget/model"
	"github.com/vrtxlabs/invitekit/tests/mocks/databasemock"
)

type SnapshotStoreTestSuite struct {
	suite.Suite
	mockClient   *databasemock.MockDBClient
	mockProvider *databasemock.MockDBProvider
	store        SnapshotStoreInterface
}

func TestSnapshotStoreSuite(t *testing.T) {
	suite.Run(t, new(SnapshotStoreTestSuite))
}

func (suite *SnapshotStoreTestSuite) SetupTest() {
	suite.mockClient = &databasemock.MockDBClient{}
	suite.mockProvider = &databasemock.MockDBProvider{
		MockGetDBClient: func(dbName string) (client.DBClientInterface, error) {
			return suite.mockClient, nil
		},
	}
	suite.store = NewSnapshotStore(suite.mockProvider)
}

func (suite *SnapshotStoreTestSuite) testSnapshot() *widgetmodel.WidgetConfiguration {
	return &widgetmodel.WidgetConfiguration{
		ID:   "widget-001",
		Name: "Invite Friends",
		Props: map[string]widgetmodel.PropValue{
			"formWidget": {Value: widgetmodel.PropValueVariant{PageData: &widgetmodel.ConfigNode{
				ID:          "root",
				Kind:        "text",
				TextContent: "hello",
			}}},
		},
	}
}

func (suite *SnapshotStoreTestSuite) encodedSnapshot() string {
	encoded, err := widgetmodel.Encode(suite.testSnapshot())
	assert.NoError(suite.T(), err)
	return string(encoded)
}

func (suite *SnapshotStoreTestSuite) TestInitCreatesTable() {
	var executed dbmodel.DBQuery
	suite.mockClient.MockExecute = func(query dbmodel.DBQuery, args ...interface{}) (int64, error) {
		executed = query
		return 0, nil
	}

	err := suite.store.Init()

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), QueryCreateSnapshotTable.ID, executed.ID)
}

func (suite *SnapshotStoreTestSuite) TestListSnapshots() {
	suite.mockClient.MockQuery = func(query dbmodel.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
		return []map[string]interface{}{
			{
				"component_id":        "widget-001",
				"auth_scope":          "user-42",
				"snapshot":            suite.encodedSnapshot(),
				"session_attestation": "att-1",
				"fetched_at":          int64(1767225600),
			},
		}, nil
	}

	records, err := suite.store.ListSnapshots()

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), records, 1)
	assert.Equal(suite.T(), "widget-001", records[0].ComponentID)
	assert.Equal(suite.T(), "user-42", records[0].AuthScope)
	assert.Equal(suite.T(), "att-1", records[0].SessionAttestation)
	assert.Equal(suite.T(), time.Unix(1767225600, 0), records[0].FetchedAt)
	assert.Equal(suite.T(), "hello", records[0].Snapshot.PageData("formWidget").TextContent)
}

func (suite *SnapshotStoreTestSuite) TestListSnapshotsSkipsUndecodableRows() {
	suite.mockClient.MockQuery = func(query dbmodel.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
		return []map[string]interface{}{
			{
				"component_id": "widget-broken",
				"auth_scope":   "user-42",
				"snapshot":     `{"props": {"formWidget": {"value": {"attributes": {"bad": 42}}}}}`,
				"fetched_at":   int64(1767225600),
			},
			{
				"component_id": "widget-001",
				"auth_scope":   "user-42",
				"snapshot":     suite.encodedSnapshot(),
				"fetched_at":   int64(1767225600),
			},
		}, nil
	}

	records, err := suite.store.ListSnapshots()

	// The undecodable row is skipped, not fatal.
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), records, 1)
	assert.Equal(suite.T(), "widget-001", records[0].ComponentID)
}

func (suite *SnapshotStoreTestSuite) TestListSnapshotsUppercaseColumns() {
	suite.mockClient.MockQuery = func(query dbmodel.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
		return []map[string]interface{}{
			{
				"COMPONENT_ID":        "widget-001",
				"AUTH_SCOPE":          "user-42",
				"SNAPSHOT":            []byte(suite.encodedSnapshot()),
				"SESSION_ATTESTATION": "att-1",
				"FETCHED_AT":          1767225600,
			},
		}, nil
	}

	records, err := suite.store.ListSnapshots()

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), records, 1)
	assert.Equal(suite.T(), "widget-001", records[0].ComponentID)
	assert.Equal(suite.T(), "att-1", records[0].SessionAttestation)
}

func (suite *SnapshotStoreTestSuite) TestGetSnapshot() {
	suite.mockClient.MockQuery = func(query dbmodel.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
		assert.Equal(suite.T(), QueryGetSnapshot.ID, query.ID)
		assert.Equal(suite.T(), []interface{}{"widget-001", "user-42"}, args)
		return []map[string]interface{}{
			{
				"component_id": "widget-001",
				"auth_scope":   "user-42",
				"snapshot":     suite.encodedSnapshot(),
				"fetched_at":   int64(1767225600),
			},
		}, nil
	}

	record, err := suite.store.GetSnapshot("widget-001", "user-42")

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), record)
	assert.Equal(suite.T(), "widget-001", record.ComponentID)
}

func (suite *SnapshotStoreTestSuite) TestGetSnapshotNotFound() {
	suite.mockClient.MockQuery = func(query dbmodel.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
		return []map[string]interface{}{}, nil
	}

	record, err := suite.store.GetSnapshot("widget-missing", "user-42")

	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), record)
}

func (suite *SnapshotStoreTestSuite) TestUpsertSnapshot() {
	suite.mockClient.MockExecute = func(query dbmodel.DBQuery, args ...interface{}) (int64, error) {
		assert.Equal(suite.T(), QueryUpsertSnapshot.ID, query.ID)
		assert.Len(suite.T(), args, 5)
		assert.Equal(suite.T(), "widget-001", args[0])
		assert.Equal(suite.T(), "user-42", args[1])
		assert.Equal(suite.T(), "att-1", args[3])
		assert.Equal(suite.T(), int64(1767225600), args[4])
		return 1, nil
	}

	err := suite.store.UpsertSnapshot(SnapshotRecord{
		ComponentID:        "widget-001",
		AuthScope:          "user-42",
		Snapshot:           suite.testSnapshot(),
		SessionAttestation: "att-1",
		FetchedAt:          time.Unix(1767225600, 0),
	})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), suite.mockClient.ExecuteCalls, 1)
}

func (suite *SnapshotStoreTestSuite) TestUpsertSnapshotRoundTrips() {
	var storedSnapshot string
	suite.mockClient.MockExecute = func(query dbmodel.DBQuery, args ...interface{}) (int64, error) {
		storedSnapshot, _ = args[2].(string)
		return 1, nil
	}

	original := suite.testSnapshot()
	err := suite.store.UpsertSnapshot(SnapshotRecord{
		ComponentID: "widget-001",
		AuthScope:   "user-42",
		Snapshot:    original,
		FetchedAt:   time.Now(),
	})
	assert.NoError(suite.T(), err)

	decoded, err := widgetmodel.Decode([]byte(storedSnapshot))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), original, decoded)
}

func (suite *SnapshotStoreTestSuite) TestDeleteSnapshot() {
	suite.mockClient.MockExecute = func(query dbmodel.DBQuery, args ...interface{}) (int64, error) {
		assert.Equal(suite.T(), QueryDeleteSnapshot.ID, query.ID)
		assert.Equal(suite.T(), []interface{}{"widget-001", "user-42"}, args)
		return 1, nil
	}

	err := suite.store.DeleteSnapshot("widget-001", "user-42")

	assert.NoError(suite.T(), err)
}

func (suite *SnapshotStoreTestSuite) TestProviderFailure() {
	suite.mockProvider.MockGetDBClient = func(dbName string) (client.DBClientInterface, error) {
		return nil, errors.New("datasource unavailable")
	}

	err := suite.store.Init()
	assert.Error(suite.T(), err)

	_, err = suite.store.ListSnapshots()
	assert.Error(suite.T(), err)

	err = suite.store.UpsertSnapshot(SnapshotRecord{Snapshot: suite.testSnapshot(), FetchedAt: time.Now()})
	assert.Error(suite.T(), err)
}
