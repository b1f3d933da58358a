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

package sync

import (
	"time"

	"github.com/carverauto/pnoderadar/pkg/discovery"
	"github.com/carverauto/pnoderadar/pkg/models"
)

// buildRecord turns an enriched roster entry into the persisted record.
// FirstSeen is carried over from the stored record when there is one.
func (s *Service) buildRecord(raw *models.RawNode, existing *models.NodeRecord, now time.Time) models.NodeRecord {
	ip, port, _ := discovery.SplitAddress(raw.Address)

	rec := models.NodeRecord{
		NodeID:         raw.Pubkey,
		Address:        raw.Address,
		IP:             ip,
		Port:           port,
		IsPublic:       raw.IsPublic,
		RPCPort:        raw.RPCPort,
		Status:         s.classify(raw, now),
		Version:        raw.Version,
		FirstSeen:      now,
		CurrentMetrics: metricsOf(raw, now),
	}

	if existing != nil {
		if !existing.FirstSeen.IsZero() {
			rec.FirstSeen = existing.FirstSeen
		}

		rec.Country = existing.Country
		rec.City = existing.City
	}

	rec.LastSeen = lastSeen(raw, existing, rec.FirstSeen, now)

	if s.geo != nil && ip != "" {
		if loc := s.geo.Lookup(ip); loc.Country != "" {
			rec.Country = loc.Country
			rec.City = loc.City
		}
	}

	return rec
}

func lastSeen(raw *models.RawNode, existing *models.NodeRecord, firstSeen, now time.Time) time.Time {
	switch {
	case raw.LastSeenTimestamp > 0:
		return time.Unix(raw.LastSeenTimestamp, 0).UTC()
	case raw.Enriched:
		return now
	case existing != nil && !existing.LastSeen.IsZero():
		return existing.LastSeen
	default:
		return firstSeen
	}
}

// classify derives the node status for this cycle:
//   - a registry-sourced entry keeps the on-chain status
//   - a node that answered get-stats is online
//   - without a gossip timestamp, or one older than OfflineAfter, offline
//   - a public node that gossips but failed get-stats, or whose timestamp is
//     older than OnlineWindow, degraded
//   - otherwise online
func (s *Service) classify(raw *models.RawNode, now time.Time) models.NodeStatus {
	if raw.RegistryStatus != "" {
		return raw.RegistryStatus
	}

	if raw.Enriched {
		return models.NodeStatusOnline
	}

	if raw.LastSeenTimestamp <= 0 {
		return models.NodeStatusOffline
	}

	age := now.Sub(time.Unix(raw.LastSeenTimestamp, 0))

	switch {
	case age > time.Duration(s.config.OfflineAfter):
		return models.NodeStatusOffline
	case raw.IsPublic && raw.StatsAttempted:
		return models.NodeStatusDegraded
	case age > time.Duration(s.config.OnlineWindow):
		return models.NodeStatusDegraded
	default:
		return models.NodeStatusOnline
	}
}

func metricsOf(raw *models.RawNode, now time.Time) models.NodeMetrics {
	m := models.NodeMetrics{
		StorageCommitted:    raw.StorageCommitted,
		StorageUsed:         raw.StorageUsed,
		StorageAvailable:    raw.StorageCommitted - raw.StorageUsed,
		StorageUsagePercent: raw.StorageUsagePercent,
		UptimeSeconds:       raw.Uptime,
		CPUPercent:          raw.CPUPercent,
		RAMTotal:            raw.RAMTotal,
		RAMUsed:             raw.RAMUsed,
		RAMUsagePercent:     raw.RAMUsagePercent,
		ActiveStreams:       raw.ActiveStreams,
		PacketsReceived:     raw.PacketsReceived,
		PacketsSent:         raw.PacketsSent,
		TotalBytes:          raw.TotalBytes,
		TotalPages:          raw.TotalPages,
		FileSize:            raw.FileSize,
		LatencyMs:           raw.LatencyMs,
		LastUpdated:         now,
	}

	if raw.RAMTotal > 0 {
		m.RAMAvailable = raw.RAMTotal - raw.RAMUsed
	}

	return m
}
