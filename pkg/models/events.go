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

import (
	"errors"
	"time"
)

var errNATSURLRequired = errors.New("nats url is required")

// EventCategory groups events by the subsystem they describe.
type EventCategory string

const (
	EventCategoryNode        EventCategory = "node"
	EventCategoryStorage     EventCategory = "storage"
	EventCategoryPerformance EventCategory = "performance"
	EventCategoryNetwork     EventCategory = "network"
)

type EventSeverity string

const (
	SeverityInfo     EventSeverity = "info"
	SeverityWarning  EventSeverity = "warning"
	SeverityError    EventSeverity = "error"
	SeverityCritical EventSeverity = "critical"
)

// Event types emitted by the state diff.
const (
	EventNodeJoined       = "node_joined"
	EventCapacityAdded    = "capacity_added"
	EventCapacityRemoved  = "capacity_removed"
	EventVersionUpgraded  = "version_upgraded"
	EventHighCPU          = "high_cpu"
	EventHighRAM          = "high_ram"
	EventStorageFull      = "storage_full"
	EventNodeStatusPrefix = "node_"
)

// Event is an immutable fact derived from a node state transition.
type Event struct {
	EventID   string        `json:"event_id"`
	Timestamp time.Time     `json:"timestamp"`
	Category  EventCategory `json:"category"`
	Type      string        `json:"type"`
	Severity  EventSeverity `json:"severity"`
	NodeID    string        `json:"node_id"`
	Details   EventDetails  `json:"details"`
}

type EventDetails struct {
	Message  string                 `json:"message"`
	Old      interface{}            `json:"old,omitempty"`
	New      interface{}            `json:"new,omitempty"`
	Delta    *float64               `json:"delta,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// NATSConfig configures NATS connectivity.
type NATSConfig struct {
	URL        string          `json:"url" yaml:"url"`
	Domain     string          `json:"domain,omitempty" yaml:"domain,omitempty"`
	StreamName string          `json:"stream_name,omitempty" yaml:"stream_name,omitempty"`
	Security   *SecurityConfig `json:"security,omitempty" yaml:"security,omitempty"`
}

// Validate ensures the NATS configuration is valid.
func (c *NATSConfig) Validate() error {
	if c.URL == "" {
		return errNATSURLRequired
	}

	if c.StreamName == "" {
		c.StreamName = "pnode-events"
	}

	return nil
}

// CloudEvent represents a CloudEvents v1.0 compliant event.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	ID              string      `json:"id"`
	Source          string      `json:"source"`
	Type            string      `json:"type"`
	DataContentType string      `json:"datacontenttype"`
	Subject         string      `json:"subject,omitempty"`
	Time            *time.Time  `json:"time,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}
