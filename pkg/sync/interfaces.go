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
	"context"
	"time"

	"github.com/carverauto/pnoderadar/pkg/geoip"
	"github.com/carverauto/pnoderadar/pkg/models"
)

//go:generate mockgen -destination=mock_sync.go -package=sync github.com/carverauto/pnoderadar/pkg/sync RosterDiscoverer,Enricher,EventPublisher

// RosterDiscoverer produces the raw roster for a cycle.
type RosterDiscoverer interface {
	Discover(ctx context.Context) []models.RawNode
	DiscoverFromRegistry(ctx context.Context, known []models.NodeRecord) ([]models.RawNode, error)
}

// Enricher merges live stats into the roster.
type Enricher interface {
	Enrich(ctx context.Context, nodes []models.RawNode) []models.RawNode
}

// EventPublisher persists and forwards detected events. It never fails.
type EventPublisher interface {
	Publish(ctx context.Context, events []models.Event) int
}

// GeoResolver maps an IP to a location.
type GeoResolver interface {
	Lookup(ip string) geoip.Location
}

// Clock defines an interface for time-related operations (to mock ticker).
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
	After(d time.Duration) <-chan time.Time
}

// Ticker defines an interface for the ticker driving sync cycles.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}
