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

// MetricSample is one append-only time-series point for a node.
type MetricSample struct {
	NodeID         string               `json:"node_id"`
	Timestamp      time.Time            `json:"timestamp"`
	Status         NodeStatus           `json:"status"`
	Storage        StorageSample        `json:"storage"`
	System         SystemSample         `json:"system"`
	Network        NetworkSample        `json:"network"`
	StorageDetails StorageDetailsSample `json:"storage_details"`
	Performance    PerformanceSample    `json:"performance"`
}

type StorageSample struct {
	Committed    int64   `json:"committed"`
	Used         int64   `json:"used"`
	Available    int64   `json:"available"`
	UsagePercent float64 `json:"usage_percent"`
}

type SystemSample struct {
	CPUPercent      *float64 `json:"cpu_percent,omitempty"`
	RAMTotal        int64    `json:"ram_total"`
	RAMUsed         int64    `json:"ram_used"`
	RAMAvailable    int64    `json:"ram_available"`
	RAMUsagePercent *float64 `json:"ram_usage_percent,omitempty"`
	UptimeSeconds   int64    `json:"uptime_seconds"`
}

type NetworkSample struct {
	ActiveStreams   int   `json:"active_streams"`
	PacketsReceived int64 `json:"packets_received"`
	PacketsSent     int64 `json:"packets_sent"`
}

type StorageDetailsSample struct {
	TotalBytes int64 `json:"total_bytes"`
	TotalPages int64 `json:"total_pages"`
	FileSize   int64 `json:"file_size"`
}

type PerformanceSample struct {
	LatencyMs *float64 `json:"latency_ms,omitempty"`
}

// SampleOf builds the metric sample for a node record at the given time.
func SampleOf(n *NodeRecord, ts time.Time) *MetricSample {
	m := n.CurrentMetrics

	return &MetricSample{
		NodeID:    n.NodeID,
		Timestamp: ts,
		Status:    n.Status,
		Storage: StorageSample{
			Committed:    m.StorageCommitted,
			Used:         m.StorageUsed,
			Available:    m.StorageAvailable,
			UsagePercent: m.StorageUsagePercent,
		},
		System: SystemSample{
			CPUPercent:      m.CPUPercent,
			RAMTotal:        m.RAMTotal,
			RAMUsed:         m.RAMUsed,
			RAMAvailable:    m.RAMAvailable,
			RAMUsagePercent: m.RAMUsagePercent,
			UptimeSeconds:   m.UptimeSeconds,
		},
		Network: NetworkSample{
			ActiveStreams:   m.ActiveStreams,
			PacketsReceived: m.PacketsReceived,
			PacketsSent:     m.PacketsSent,
		},
		StorageDetails: StorageDetailsSample{
			TotalBytes: m.TotalBytes,
			TotalPages: m.TotalPages,
			FileSize:   m.FileSize,
		},
		Performance: PerformanceSample{
			LatencyMs: m.LatencyMs,
		},
	}
}
