/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import "time"

// SyncState is the persisted state of the sync state machine.
type SyncState string

const (
	SyncStateIdle    SyncState = "idle"
	SyncStateSyncing SyncState = "syncing"
	SyncStateSuccess SyncState = "success"
	SyncStateError   SyncState = "error"
)

// SystemStatusID is the key of the singleton status record.
const SystemStatusID = "pnode-sync"

// SystemStatus is the singleton record describing the sync loop.
type SystemStatus struct {
	ID                  string    `json:"id"`
	SyncStatus          SyncState `json:"sync_status"`
	LastSyncTimestamp   time.Time `json:"last_sync_timestamp"`
	LastErrorMessage    string    `json:"last_error_message"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	LastProcessed       int       `json:"last_processed"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewSystemStatus returns the initial idle status record.
func NewSystemStatus(now time.Time) *SystemStatus {
	return &SystemStatus{
		ID:         SystemStatusID,
		SyncStatus: SyncStateIdle,
		UpdatedAt:  now,
	}
}
