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

// Size bucket labels used in NetworkSnapshot.SizeDistribution.
const (
	SizeBucketSmall  = "<100GB"
	SizeBucketMedium = "100GB-1TB"
	SizeBucketLarge  = "1TB-10TB"
	SizeBucketXLarge = ">=10TB"
)

// NetworkSnapshot is the network-wide aggregate for one sync cycle.
type NetworkSnapshot struct {
	Timestamp        time.Time        `json:"timestamp"`
	Nodes            NodeCounts       `json:"nodes"`
	Storage          StorageAggregate `json:"storage"`
	System           SystemAggregate  `json:"system"`
	Network          NetworkAggregate `json:"network"`
	Versions         map[string]int   `json:"versions"`
	SizeDistribution map[string]int   `json:"size_distribution"`
	Health           HealthBlock      `json:"health"`
}

type NodeCounts struct {
	Total    int          `json:"total"`
	Online   int          `json:"online"`
	Offline  int          `json:"offline"`
	Degraded int          `json:"degraded"`
	ByUsage  UsageBuckets `json:"by_usage"`
	BySize   SizeBuckets  `json:"by_size"`
}

// UsageBuckets splits nodes by storage usage: <20%, 20-80%, >80%.
type UsageBuckets struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// SizeBuckets splits nodes by committed storage.
type SizeBuckets struct {
	Small  int `json:"small"`
	Medium int `json:"medium"`
	Large  int `json:"large"`
	XLarge int `json:"xlarge"`
}

type StorageAggregate struct {
	TotalCommitted     int64   `json:"total_committed"`
	TotalUsed          int64   `json:"total_used"`
	TotalAvailable     int64   `json:"total_available"`
	MeanUsagePercent   float64 `json:"mean_usage_percent"`
	MedianUsagePercent float64 `json:"median_usage_percent"`
	P95UsagePercent    float64 `json:"p95_usage_percent"`
}

type SystemAggregate struct {
	MeanCPUPercent    float64 `json:"mean_cpu_percent"`
	MedianCPUPercent  float64 `json:"median_cpu_percent"`
	P95CPUPercent     float64 `json:"p95_cpu_percent"`
	MeanRAMPercent    float64 `json:"mean_ram_percent"`
	MedianRAMPercent  float64 `json:"median_ram_percent"`
	MeanUptimeHours   float64 `json:"mean_uptime_hours"`
	MedianUptimeHours float64 `json:"median_uptime_hours"`
}

type NetworkAggregate struct {
	TotalActiveStreams   int64   `json:"total_active_streams"`
	TotalPacketsReceived int64   `json:"total_packets_received"`
	TotalPacketsSent     int64   `json:"total_packets_sent"`
	MeanLatencyMs        float64 `json:"mean_latency_ms"`
	MedianLatencyMs      float64 `json:"median_latency_ms"`
}

type HealthBlock struct {
	Score               float64 `json:"score"`
	AvailabilityPercent float64 `json:"availability_percent"`
	ReliabilityScore    float64 `json:"reliability_score"`
	PerformanceScore    float64 `json:"performance_score"`
}
