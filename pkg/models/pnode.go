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

// NodeStatus is the availability classification of a pNode for one cycle.
type NodeStatus string

const (
	NodeStatusOnline   NodeStatus = "online"
	NodeStatusOffline  NodeStatus = "offline"
	NodeStatusDegraded NodeStatus = "degraded"
)

// RawNode is a single roster entry as gossiped by a seed, optionally merged
// with the live stats returned by the node itself.
type RawNode struct {
	Pubkey              string  `json:"pubkey"`
	Address             string  `json:"address"`
	RPCPort             int     `json:"rpc_port"`
	IsPublic            bool    `json:"is_public"`
	Version             string  `json:"version"`
	LastSeenTimestamp   int64   `json:"last_seen_timestamp"`
	StorageCommitted    int64   `json:"storage_committed"`
	StorageUsed         int64   `json:"storage_used"`
	StorageUsagePercent float64 `json:"storage_usage_percent"`
	Uptime              int64   `json:"uptime"`

	// Populated by enrichment. StatsAttempted is set whenever a stats call
	// was issued; Enriched only when it succeeded.
	StatsAttempted   bool     `json:"-"`
	Enriched         bool     `json:"-"`
	CPUPercent       *float64 `json:"-"`
	RAMTotal         int64    `json:"-"`
	RAMUsed          int64    `json:"-"`
	RAMUsagePercent  *float64 `json:"-"`
	StorageAvailable int64    `json:"-"`
	PacketsReceived  int64    `json:"-"`
	PacketsSent      int64    `json:"-"`
	ActiveStreams    int      `json:"-"`
	TotalBytes       int64    `json:"-"`
	TotalPages       int64    `json:"-"`
	FileSize         int64    `json:"-"`
	LatencyMs        *float64 `json:"-"`

	// RegistryStatus is set only for entries recovered from the on-chain registry.
	RegistryStatus NodeStatus `json:"-"`
}

// StatsMetadata is the storage metadata block of a get-stats response.
type StatsMetadata struct {
	TotalBytes  int64 `json:"total_bytes"`
	TotalPages  int64 `json:"total_pages"`
	LastUpdated int64 `json:"last_updated"`
}

// NodeStats is the system block of a get-stats response.
type NodeStats struct {
	CPUPercent      *float64 `json:"cpu_percent,omitempty"`
	RAMUsed         int64    `json:"ram_used"`
	RAMTotal        int64    `json:"ram_total"`
	Uptime          int64    `json:"uptime"`
	PacketsReceived int64    `json:"packets_received"`
	PacketsSent     int64    `json:"packets_sent"`
	ActiveStreams   int      `json:"active_streams"`
}

// StatsPayload is the result of a pNode get-stats call.
type StatsPayload struct {
	Metadata StatsMetadata `json:"metadata"`
	Stats    NodeStats     `json:"stats"`
	FileSize int64         `json:"file_size"`
}

// NodeMetrics is the latest metric view stored on a NodeRecord.
type NodeMetrics struct {
	StorageCommitted    int64     `json:"storage_committed"`
	StorageUsed         int64     `json:"storage_used"`
	StorageAvailable    int64     `json:"storage_available"`
	StorageUsagePercent float64   `json:"storage_usage_percent"`
	UptimeSeconds       int64     `json:"uptime_seconds"`
	CPUPercent          *float64  `json:"cpu_percent,omitempty"`
	RAMTotal            int64     `json:"ram_total"`
	RAMUsed             int64     `json:"ram_used"`
	RAMAvailable        int64     `json:"ram_available"`
	RAMUsagePercent     *float64  `json:"ram_usage_percent,omitempty"`
	ActiveStreams       int       `json:"active_streams"`
	PacketsReceived     int64     `json:"packets_received"`
	PacketsSent         int64     `json:"packets_sent"`
	TotalBytes          int64     `json:"total_bytes"`
	TotalPages          int64     `json:"total_pages"`
	FileSize            int64     `json:"file_size"`
	LatencyMs           *float64  `json:"latency_ms,omitempty"`
	LastUpdated         time.Time `json:"last_updated"`
}

// NodeRecord is the persisted, per-node view owned by the sync service.
type NodeRecord struct {
	NodeID         string      `json:"node_id"`
	Address        string      `json:"address"`
	IP             string      `json:"ip"`
	Port           int         `json:"port"`
	IsPublic       bool        `json:"is_public"`
	RPCPort        int         `json:"rpc_port"`
	Status         NodeStatus  `json:"status"`
	Version        string      `json:"version"`
	Country        string      `json:"country,omitempty"`
	City           string      `json:"city,omitempty"`
	FirstSeen      time.Time   `json:"first_seen"`
	LastSeen       time.Time   `json:"last_seen"`
	CurrentMetrics NodeMetrics `json:"current_metrics"`
}

// UptimeHours returns the node uptime expressed in hours.
func (n *NodeRecord) UptimeHours() float64 {
	return float64(n.CurrentMetrics.UptimeSeconds) / 3600
}

// PreviousState holds the minimal prior-cycle fields needed to diff a node.
type PreviousState struct {
	StorageCommitted    int64      `json:"storage_committed"`
	StorageUsed         int64      `json:"storage_used"`
	StorageUsagePercent float64    `json:"storage_usage_percent"`
	Status              NodeStatus `json:"status"`
	Version             string     `json:"version"`
	PacketsReceived     int64      `json:"packets_received"`
	PacketsSent         int64      `json:"packets_sent"`
	CPUPercent          *float64   `json:"cpu_percent,omitempty"`
	RAMUsagePercent     *float64   `json:"ram_usage_percent,omitempty"`
}

// StateOf extracts the diffable fields of a node record.
func StateOf(n *NodeRecord) PreviousState {
	return PreviousState{
		StorageCommitted:    n.CurrentMetrics.StorageCommitted,
		StorageUsed:         n.CurrentMetrics.StorageUsed,
		StorageUsagePercent: n.CurrentMetrics.StorageUsagePercent,
		Status:              n.Status,
		Version:             n.Version,
		PacketsReceived:     n.CurrentMetrics.PacketsReceived,
		PacketsSent:         n.CurrentMetrics.PacketsSent,
		CPUPercent:          n.CurrentMetrics.CPUPercent,
		RAMUsagePercent:     n.CurrentMetrics.RAMUsagePercent,
	}
}

// Float64Ptr is a small helper for optional metric fields.
func Float64Ptr(v float64) *float64 {
	return &v
}
