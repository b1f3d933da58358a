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

// Package discovery builds the per-cycle pNode roster from gossip seeds, with
// an explicitly invoked fallback to the on-chain registry.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
	"github.com/carverauto/pnoderadar/pkg/prpc"
)

const (
	defaultSeedTimeout   = 10 * time.Second
	defaultRetryAttempts = 3
	defaultRetryDelay    = time.Second
)

// Config bounds how hard a single seed is tried.
type Config struct {
	SeedTimeout   time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

func (c *Config) applyDefaults() {
	if c.SeedTimeout <= 0 {
		c.SeedTimeout = defaultSeedTimeout
	}

	if c.RetryAttempts <= 0 {
		c.RetryAttempts = defaultRetryAttempts
	}

	if c.RetryDelay < 0 {
		c.RetryDelay = defaultRetryDelay
	}
}

// Discoverer queries seeds in order until one yields a usable roster.
type Discoverer struct {
	source   prpc.RosterSource
	registry RegistryLookup
	config   Config
	logger   logger.Logger
}

// NewDiscoverer creates a discoverer. registry may be nil when the fallback
// source is not configured.
func NewDiscoverer(source prpc.RosterSource, registry RegistryLookup, cfg Config, log logger.Logger) *Discoverer {
	cfg.applyDefaults()

	return &Discoverer{
		source:   source,
		registry: registry,
		config:   cfg,
		logger:   log,
	}
}

// Discover returns the normalized roster of the first seed that answers with a
// non-empty one. It never fails: exhausting every seed yields an empty slice.
func (d *Discoverer) Discover(ctx context.Context) []models.RawNode {
	seeds := d.source.ListSeedEndpoints()
	if len(seeds) == 0 {
		d.logger.Warn().Err(ErrNoSeeds).Msg("Discovery skipped")

		return []models.RawNode{}
	}

	for _, seed := range seeds {
		if ctx.Err() != nil {
			break
		}

		start := time.Now()

		nodes, err := d.trySeed(ctx, seed)
		if err != nil {
			d.logger.Warn().
				Err(err).
				Str("seed", seed).
				Dur("duration", time.Since(start)).
				Msg("Seed failed, trying next")

			continue
		}

		d.logger.Info().
			Str("seed", seed).
			Int("count", len(nodes)).
			Dur("duration", time.Since(start)).
			Msg("Discovered pNodes")

		return nodes
	}

	d.logger.Error().Int("seeds", len(seeds)).Msg("All seeds exhausted")

	return []models.RawNode{}
}

// trySeed runs the bounded retry loop against one seed.
func (d *Discoverer) trySeed(ctx context.Context, seed string) ([]models.RawNode, error) {
	var lastErr error

	for attempt := 1; attempt <= d.config.RetryAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, d.config.RetryDelay); err != nil {
				return nil, err
			}
		}

		nodes, err := d.fetch(ctx, seed)
		if err == nil {
			return nodes, nil
		}

		lastErr = err

		if errors.Is(err, prpc.ErrCircuitOpen) {
			break
		}

		d.logger.Debug().
			Err(err).
			Str("seed", seed).
			Int("attempt", attempt).
			Msg("Roster fetch attempt failed")
	}

	return nil, lastErr
}

func (d *Discoverer) fetch(ctx context.Context, seed string) ([]models.RawNode, error) {
	ctx, cancel := context.WithTimeout(ctx, d.config.SeedTimeout)
	defer cancel()

	raw, err := d.source.FetchRoster(ctx, seed)
	if err != nil {
		return nil, err
	}

	nodes := Normalize(raw)
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w (%d raw entries)", ErrEmptyRoster, len(raw))
	}

	return nodes, nil
}

// DiscoverFromRegistry rebuilds a roster from the on-chain registry for nodes
// that are already known. It is a separate entry point and is not chained
// after Discover automatically. Nodes without a usable record are skipped.
func (d *Discoverer) DiscoverFromRegistry(ctx context.Context, known []models.NodeRecord) ([]models.RawNode, error) {
	if d.registry == nil {
		return nil, ErrRegistryDisabled
	}

	nodes := make([]models.RawNode, 0, len(known))

	for i := range known {
		rec := &known[i]

		account, err := d.registry.Lookup(ctx, rec.NodeID)
		if err != nil {
			d.logger.Debug().Err(err).Str("node_id", rec.NodeID).Msg("Registry lookup failed")

			continue
		}

		if account == nil {
			continue
		}

		nodes = append(nodes, fromRegistry(rec, account))
	}

	d.logger.Info().
		Int("known", len(known)).
		Int("count", len(nodes)).
		Msg("Recovered pNodes from registry")

	return nodes, nil
}

func fromRegistry(rec *models.NodeRecord, account *models.RegistryAccount) models.RawNode {
	m := rec.CurrentMetrics

	return models.RawNode{
		Pubkey:              rec.NodeID,
		Address:             rec.Address,
		RPCPort:             rec.RPCPort,
		IsPublic:            rec.IsPublic,
		Version:             rec.Version,
		LastSeenTimestamp:   account.Timestamp.Unix(),
		StorageCommitted:    m.StorageCommitted,
		StorageUsed:         m.StorageUsed,
		StorageUsagePercent: m.StorageUsagePercent,
		Uptime:              m.UptimeSeconds,
		RegistryStatus:      account.Status,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
