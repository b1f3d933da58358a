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

// Provider is a logical group of nodes sharing a /24 address prefix.
type Provider struct {
	ProviderID  string          `json:"provider_id"`
	Name        string          `json:"name"`
	Subnet      string          `json:"subnet"`
	NodeIDs     []string        `json:"node_ids"`
	NodeCount   int             `json:"node_count"`
	ActiveCount int             `json:"active_count"`
	Metrics     ProviderMetrics `json:"metrics"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ProviderMetrics struct {
	StorageCommitted int64   `json:"storage_committed"`
	StorageUsed      int64   `json:"storage_used"`
	MeanUptimeHours  float64 `json:"mean_uptime_hours"`
	MeanCPUPercent   float64 `json:"mean_cpu_percent"`
}
