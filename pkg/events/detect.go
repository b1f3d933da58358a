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

// Package events derives domain events by diffing a node's state against the
// previous cycle, and hands them to the store and the notification feed.
package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/pnoderadar/pkg/models"
)

const (
	CPUThresholdPercent     = 80.0
	RAMThresholdPercent     = 80.0
	StorageThresholdPercent = 90.0
)

// Detect compares current against previous and returns the resulting events in
// rule order: capacity, status, version, CPU, RAM, storage usage. A nil
// previous means the node is new and yields a single node_joined event.
func Detect(nodeID string, previous *models.PreviousState, current models.PreviousState, now time.Time) []models.Event {
	if previous == nil {
		return []models.Event{newEvent(nodeID, now, models.EventCategoryNode, models.EventNodeJoined, models.SeverityInfo,
			models.EventDetails{
				Message: "New pNode joined the network",
				New:     string(current.Status),
				Metadata: map[string]interface{}{
					"version":           current.Version,
					"storage_committed": current.StorageCommitted,
				},
			})}
	}

	var out []models.Event

	if current.StorageCommitted != previous.StorageCommitted {
		delta := float64(current.StorageCommitted - previous.StorageCommitted)

		eventType, verb := models.EventCapacityAdded, "increased"
		if delta < 0 {
			eventType, verb = models.EventCapacityRemoved, "decreased"
		}

		out = append(out, newEvent(nodeID, now, models.EventCategoryStorage, eventType, models.SeverityInfo,
			models.EventDetails{
				Message: fmt.Sprintf("Committed storage %s by %.2f GB", verb, abs(delta)/1e9),
				Old:     previous.StorageCommitted,
				New:     current.StorageCommitted,
				Delta:   &delta,
			}))
	}

	if current.Status != previous.Status {
		severity := models.SeverityInfo
		if current.Status == models.NodeStatusOffline {
			severity = models.SeverityWarning
		}

		out = append(out, newEvent(nodeID, now, models.EventCategoryNode,
			models.EventNodeStatusPrefix+string(current.Status), severity,
			models.EventDetails{
				Message: fmt.Sprintf("Node status changed from %s to %s", previous.Status, current.Status),
				Old:     string(previous.Status),
				New:     string(current.Status),
			}))
	}

	if current.Version != previous.Version {
		out = append(out, newEvent(nodeID, now, models.EventCategoryNode, models.EventVersionUpgraded, models.SeverityInfo,
			models.EventDetails{
				Message: fmt.Sprintf("Version changed from %s to %s", previous.Version, current.Version),
				Old:     previous.Version,
				New:     current.Version,
			}))
	}

	if crossed(previous.CPUPercent, current.CPUPercent, CPUThresholdPercent) {
		out = append(out, thresholdEvent(nodeID, now, models.EventCategoryPerformance, models.EventHighCPU,
			models.SeverityWarning, "CPU", *previous.CPUPercent, *current.CPUPercent, CPUThresholdPercent))
	}

	if crossed(previous.RAMUsagePercent, current.RAMUsagePercent, RAMThresholdPercent) {
		out = append(out, thresholdEvent(nodeID, now, models.EventCategoryPerformance, models.EventHighRAM,
			models.SeverityWarning, "RAM", *previous.RAMUsagePercent, *current.RAMUsagePercent, RAMThresholdPercent))
	}

	prevUsage, curUsage := previous.StorageUsagePercent, current.StorageUsagePercent
	if crossed(&prevUsage, &curUsage, StorageThresholdPercent) {
		out = append(out, thresholdEvent(nodeID, now, models.EventCategoryStorage, models.EventStorageFull,
			models.SeverityCritical, "Storage", prevUsage, curUsage, StorageThresholdPercent))
	}

	return out
}

// crossed reports an upward crossing: cur > threshold and prev <= threshold.
func crossed(prev, cur *float64, threshold float64) bool {
	if prev == nil || cur == nil {
		return false
	}

	return *cur > threshold && *prev <= threshold
}

func thresholdEvent(nodeID string, now time.Time, category models.EventCategory, eventType string,
	severity models.EventSeverity, label string, prev, cur, threshold float64) models.Event {
	delta := cur - prev

	return newEvent(nodeID, now, category, eventType, severity, models.EventDetails{
		Message:  fmt.Sprintf("%s usage %.1f%% exceeds %.0f%% threshold", label, cur, threshold),
		Old:      prev,
		New:      cur,
		Delta:    &delta,
		Metadata: map[string]interface{}{"threshold": threshold},
	})
}

func newEvent(nodeID string, now time.Time, category models.EventCategory, eventType string,
	severity models.EventSeverity, details models.EventDetails) models.Event {
	return models.Event{
		EventID:   uuid.NewString(),
		Timestamp: now,
		Category:  category,
		Type:      eventType,
		Severity:  severity,
		NodeID:    nodeID,
		Details:   details,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
