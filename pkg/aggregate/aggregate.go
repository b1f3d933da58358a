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

// Package aggregate folds one cycle's node records into a NetworkSnapshot.
package aggregate

import (
	"errors"
	"time"

	"github.com/carverauto/pnoderadar/pkg/models"
	"github.com/carverauto/pnoderadar/pkg/stats"
)

// ErrEmptyRoster is returned when there are no nodes to aggregate.
var ErrEmptyRoster = errors.New("cannot aggregate an empty roster")

const (
	gigabyte = 1e9
	terabyte = 1e12

	lowUsagePercent  = 20.0
	highUsagePercent = 80.0

	// reliabilityHorizonHours is the uptime that earns a full reliability score.
	reliabilityHorizonHours = 168.0

	availabilityWeight = 0.4
	reliabilityWeight  = 0.3
	performanceWeight  = 0.3

	unknownVersion = "unknown"
)

// Aggregate computes the network snapshot for nodes at ts. The result depends
// only on its inputs, so identical inputs produce identical snapshots.
func Aggregate(nodes []models.NodeRecord, ts time.Time) (*models.NetworkSnapshot, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyRoster
	}

	snap := &models.NetworkSnapshot{
		Timestamp: ts,
		Versions:  make(map[string]int),
		SizeDistribution: map[string]int{
			models.SizeBucketSmall:  0,
			models.SizeBucketMedium: 0,
			models.SizeBucketLarge:  0,
			models.SizeBucketXLarge: 0,
		},
	}

	snap.Nodes.Total = len(nodes)

	for i := range nodes {
		n := &nodes[i]
		m := &n.CurrentMetrics

		switch n.Status {
		case models.NodeStatusOnline:
			snap.Nodes.Online++
		case models.NodeStatusOffline:
			snap.Nodes.Offline++
		case models.NodeStatusDegraded:
			snap.Nodes.Degraded++
		}

		countUsage(&snap.Nodes.ByUsage, m.StorageUsagePercent)
		snap.SizeDistribution[countSize(&snap.Nodes.BySize, m.StorageCommitted)]++

		version := n.Version
		if version == "" {
			version = unknownVersion
		}

		snap.Versions[version]++

		snap.Storage.TotalCommitted += m.StorageCommitted
		snap.Storage.TotalUsed += m.StorageUsed
		snap.Storage.TotalAvailable += m.StorageAvailable

		snap.Network.TotalActiveStreams += int64(m.ActiveStreams)
		snap.Network.TotalPacketsReceived += m.PacketsReceived
		snap.Network.TotalPacketsSent += m.PacketsSent
	}

	usage := stats.Collect(nodes, func(n models.NodeRecord) (float64, bool) {
		return n.CurrentMetrics.StorageUsagePercent, true
	})
	cpu := stats.Collect(nodes, optional(func(m *models.NodeMetrics) *float64 { return m.CPUPercent }))
	ram := stats.Collect(nodes, optional(func(m *models.NodeMetrics) *float64 { return m.RAMUsagePercent }))
	latency := stats.Collect(nodes, optional(func(m *models.NodeMetrics) *float64 { return m.LatencyMs }))
	uptime := stats.Collect(nodes, func(n models.NodeRecord) (float64, bool) {
		return n.UptimeHours(), true
	})

	snap.Storage.MeanUsagePercent = stats.Mean(usage)
	snap.Storage.MedianUsagePercent = stats.Median(usage)
	snap.Storage.P95UsagePercent = stats.Percentile(usage, 0.95)

	snap.System = models.SystemAggregate{
		MeanCPUPercent:    stats.Mean(cpu),
		MedianCPUPercent:  stats.Median(cpu),
		P95CPUPercent:     stats.Percentile(cpu, 0.95),
		MeanRAMPercent:    stats.Mean(ram),
		MedianRAMPercent:  stats.Median(ram),
		MeanUptimeHours:   stats.Mean(uptime),
		MedianUptimeHours: stats.Median(uptime),
	}

	snap.Network.MeanLatencyMs = stats.Mean(latency)
	snap.Network.MedianLatencyMs = stats.Median(latency)

	snap.Health = HealthScore(snap.Nodes.Online, snap.Nodes.Total,
		snap.System.MeanUptimeHours, snap.System.MeanCPUPercent, snap.System.MeanRAMPercent)

	return snap, nil
}

// HealthScore combines availability, reliability and performance into a
// weighted score. Every component and the total stay within [0,100]; a zero
// total yields zero availability instead of dividing by zero.
func HealthScore(online, total int, meanUptimeHours, meanCPU, meanRAM float64) models.HealthBlock {
	var availability float64
	if total > 0 {
		availability = stats.Clamp(float64(online)/float64(total)*100, 0, 100)
	}

	reliability := stats.Clamp(meanUptimeHours/reliabilityHorizonHours*100, 0, 100)
	performance := stats.Clamp(100-meanCPU-meanRAM/2, 0, 100)

	score := availabilityWeight*availability + reliabilityWeight*reliability + performanceWeight*performance

	return models.HealthBlock{
		Score:               stats.Clamp(score, 0, 100),
		AvailabilityPercent: availability,
		ReliabilityScore:    reliability,
		PerformanceScore:    performance,
	}
}

func optional(field func(*models.NodeMetrics) *float64) func(models.NodeRecord) (float64, bool) {
	return func(n models.NodeRecord) (float64, bool) {
		v := field(&n.CurrentMetrics)
		if v == nil {
			return 0, false
		}

		return *v, true
	}
}

func countUsage(b *models.UsageBuckets, pct float64) {
	switch {
	case pct < lowUsagePercent:
		b.Low++
	case pct > highUsagePercent:
		b.High++
	default:
		b.Medium++
	}
}

// countSize increments the matching size bucket and returns its label.
func countSize(b *models.SizeBuckets, committed int64) string {
	c := float64(committed)

	switch {
	case c < 100*gigabyte:
		b.Small++
		return models.SizeBucketSmall
	case c < terabyte:
		b.Medium++
		return models.SizeBucketMedium
	case c < 10*terabyte:
		b.Large++
		return models.SizeBucketLarge
	default:
		b.XLarge++
		return models.SizeBucketXLarge
	}
}
