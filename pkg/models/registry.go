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

// RegistryAccount is the decoded on-chain record of a pNode.
type RegistryAccount struct {
	Address   string     `json:"address"`
	NodeID    string     `json:"node_id"`
	Status    NodeStatus `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
}

// RegistryConfig configures the on-chain registry fallback source.
type RegistryConfig struct {
	RPCURL    string   `json:"rpc_url" yaml:"rpc_url"`
	ProgramID string   `json:"program_id" yaml:"program_id"`
	Timeout   Duration `json:"timeout" yaml:"timeout"`
}

// GeoIPConfig points at a MaxMind city database.
type GeoIPConfig struct {
	DatabasePath string `json:"database_path" yaml:"database_path"`
	// SHA256 optionally pins the database contents (hex or base64).
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
}
