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
	"github.com/vrtxlabs/invitekit/internal/system/database/model"
)

var (
	// QueryCreateSnapshotTable is the query to create the snapshot table if it does not exist.
	QueryCreateSnapshotTable = model.DBQuery{
		ID: "IKQ-CFG_SNAPSHOT-01",
		Query: "CREATE TABLE IF NOT EXISTS CONFIG_SNAPSHOT (" +
			"COMPONENT_ID VARCHAR(255) NOT NULL, " +
			"AUTH_SCOPE VARCHAR(255) NOT NULL, " +
			"SNAPSHOT TEXT NOT NULL, " +
			"SESSION_ATTESTATION TEXT, " +
			"FETCHED_AT BIGINT NOT NULL, " +
			"PRIMARY KEY (COMPONENT_ID, AUTH_SCOPE))",
	}
	// QueryListSnapshots is the query to list all persisted snapshots.
	QueryListSnapshots = model.DBQuery{
		ID: "IKQ-CFG_SNAPSHOT-02",
		Query: "SELECT COMPONENT_ID, AUTH_SCOPE, SNAPSHOT, SESSION_ATTESTATION, FETCHED_AT " +
			"FROM CONFIG_SNAPSHOT",
	}
	// QueryGetSnapshot is the query to get a snapshot by its key.
	QueryGetSnapshot = model.DBQuery{
		ID: "IKQ-CFG_SNAPSHOT-03",
		Query: "SELECT COMPONENT_ID, AUTH_SCOPE, SNAPSHOT, SESSION_ATTESTATION, FETCHED_AT " +
			"FROM CONFIG_SNAPSHOT WHERE COMPONENT_ID = $1 AND AUTH_SCOPE = $2",
		SQLiteQuery: "SELECT COMPONENT_ID, AUTH_SCOPE, SNAPSHOT, SESSION_ATTESTATION, FETCHED_AT " +
			"FROM CONFIG_SNAPSHOT WHERE COMPONENT_ID = ? AND AUTH_SCOPE = ?",
	}
	// QueryUpsertSnapshot is the query to insert or replace a snapshot.
	QueryUpsertSnapshot = model.DBQuery{
		ID: "IKQ-CFG_SNAPSHOT-04",
		Query: "INSERT INTO CONFIG_SNAPSHOT (COMPONENT_ID, AUTH_SCOPE, SNAPSHOT, SESSION_ATTESTATION, FETCHED_AT) " +
			"VALUES ($1, $2, $3, $4, $5) " +
			"ON CONFLICT (COMPONENT_ID, AUTH_SCOPE) DO UPDATE SET " +
			"SNAPSHOT = EXCLUDED.SNAPSHOT, SESSION_ATTESTATION = EXCLUDED.SESSION_ATTESTATION, " +
			"FETCHED_AT = EXCLUDED.FETCHED_AT",
		SQLiteQuery: "INSERT INTO CONFIG_SNAPSHOT (COMPONENT_ID, AUTH_SCOPE, SNAPSHOT, SESSION_ATTESTATION, FETCHED_AT) " +
			"VALUES (?, ?, ?, ?, ?) " +
			"ON CONFLICT (COMPONENT_ID, AUTH_SCOPE) DO UPDATE SET " +
			"SNAPSHOT = EXCLUDED.SNAPSHOT, SESSION_ATTESTATION = EXCLUDED.SESSION_ATTESTATION, " +
			"FETCHED_AT = EXCLUDED.FETCHED_AT",
	}
	// QueryDeleteSnapshot is the query to delete a snapshot by its key.
	QueryDeleteSnapshot = model.DBQuery{
		ID:          "IKQ-CFG_SNAPSHOT-05",
		Query:       "DELETE FROM CONFIG_SNAPSHOT WHERE COMPONENT_ID = $1 AND AUTH_SCOPE = $2",
		SQLiteQuery: "DELETE FROM CONFIG_SNAPSHOT WHERE COMPONENT_ID = ? AND AUTH_SCOPE = ?",
	}
)
