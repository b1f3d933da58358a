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

// Package enrich merges live per-node stats into the discovered roster.
package enrich

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/pnoderadar/pkg/discovery"
	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
	"github.com/carverauto/pnoderadar/pkg/prpc"
)

const (
	defaultWorkers      = 32
	defaultStatsTimeout = 5 * time.Second
)

// Config bounds the enrichment fan-out.
type Config struct {
	Workers      int
	StatsTimeout time.Duration
}

// Enricher calls get-stats on every reachable node.
type Enricher struct {
	source prpc.StatsSource
	config Config
	logger logger.Logger
}

// NewEnricher creates an enricher backed by source.
func NewEnricher(source prpc.StatsSource, cfg Config, log logger.Logger) *Enricher {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}

	if cfg.StatsTimeout <= 0 {
		cfg.StatsTimeout = defaultStatsTimeout
	}

	return &Enricher{source: source, config: cfg, logger: log}
}

// Enrich returns one node per input in the same order. Nodes whose stats call
// fails are returned as discovered.
func (e *Enricher) Enrich(ctx context.Context, nodes []models.RawNode) []models.RawNode {
	out := make([]models.RawNode, len(nodes))
	copy(out, nodes)

	// Workers never return an error, so the group context is never canceled
	// early and every node gets its attempt.
	var g errgroup.Group

	g.SetLimit(e.config.Workers)

	for i := range out {
		address := discovery.StatsAddress(&out[i])
		if address == "" {
			continue
		}

		g.Go(func() error {
			e.enrichOne(ctx, &out[i], address)

			return nil
		})
	}

	_ = g.Wait()

	return out
}

func (e *Enricher) enrichOne(ctx context.Context, node *models.RawNode, address string) {
	ctx, cancel := context.WithTimeout(ctx, e.config.StatsTimeout)
	defer cancel()

	node.StatsAttempted = true

	start := time.Now()

	stats, err := e.source.FetchLiveStats(ctx, address)
	if err != nil {
		e.logger.Debug().
			Err(err).
			Str("node_id", node.Pubkey).
			Str("address", address).
			Msg("Stats unavailable, keeping gossip data")

		return
	}

	latency := float64(time.Since(start).Microseconds()) / 1000

	Merge(node, stats, latency)
}

// Merge applies a stats payload to a node. Derived fields are computed here:
// RAM usage % when RAM total is known, and storage available as committed
// minus used, which is negative when a node over-reports usage. A payload
// without CPU or with a zero uptime leaves the gossiped values in place.
func Merge(node *models.RawNode, stats *models.StatsPayload, latencyMs float64) {
	s := stats.Stats

	node.Enriched = true

	if s.CPUPercent != nil {
		node.CPUPercent = models.Float64Ptr(*s.CPUPercent)
	}

	if s.Uptime > 0 {
		node.Uptime = s.Uptime
	}

	node.RAMTotal = s.RAMTotal
	node.RAMUsed = s.RAMUsed
	node.PacketsReceived = s.PacketsReceived
	node.PacketsSent = s.PacketsSent
	node.ActiveStreams = s.ActiveStreams
	node.TotalBytes = stats.Metadata.TotalBytes
	node.TotalPages = stats.Metadata.TotalPages
	node.FileSize = stats.FileSize
	node.LatencyMs = models.Float64Ptr(latencyMs)

	if s.RAMTotal > 0 {
		node.RAMUsagePercent = models.Float64Ptr(float64(s.RAMUsed) / float64(s.RAMTotal) * 100)
	}

	node.StorageAvailable = node.StorageCommitted - node.StorageUsed
}
