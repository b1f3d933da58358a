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
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/carverauto/pnoderadar/pkg/aggregate"
	"github.com/carverauto/pnoderadar/pkg/db"
	"github.com/carverauto/pnoderadar/pkg/events"
	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
	"github.com/carverauto/pnoderadar/pkg/provider"
)

var (
	// ErrCycleInProgress is returned when a cycle is requested while another runs.
	ErrCycleInProgress = errors.New("sync cycle already in progress")
	// ErrNoNodesDiscovered is the cycle failure for an empty roster.
	ErrNoNodesDiscovered = errors.New("no pNodes discovered from any seed")
)

// CycleResult is the outcome of one sync cycle.
type CycleResult struct {
	Processed int
	Err       error
}

// Message renders the result for operators.
func (r CycleResult) Message() string {
	if r.Err != nil {
		return "Sync Failed: " + r.Err.Error()
	}

	return fmt.Sprintf("Synced %d pNodes", r.Processed)
}

type cycleCounts struct {
	detected int
	stored   int
}

// RunSyncCycle runs one full cycle and records its outcome in the status
// record. A call made while a cycle is running returns ErrCycleInProgress
// without touching the status record.
func (s *Service) RunSyncCycle(ctx context.Context) CycleResult {
	if !s.cycleMu.TryLock() {
		s.metrics.RecordCycleSkipped()
		s.logger.Warn().Msg("Sync cycle already running, skipping")

		return CycleResult{Err: ErrCycleInProgress}
	}
	defer s.cycleMu.Unlock()

	ctx, span := s.tracer.Start(ctx, "pnode.sync_cycle")
	defer span.End()

	log := logger.WithTraceContext(ctx, s.logger)
	start := s.clock.Now()

	s.metrics.RecordCycleStart()

	status := s.loadStatus(ctx)
	status.SyncStatus = models.SyncStateSyncing
	status.UpdatedAt = start
	s.saveStatus(ctx, status)

	processed, err := s.runCycle(ctx)
	result := CycleResult{Processed: processed, Err: err}

	finished := s.clock.Now()
	duration := finished.Sub(start)
	status.UpdatedAt = finished

	if err != nil {
		status.SyncStatus = models.SyncStateError
		status.ConsecutiveFailures++
		status.LastErrorMessage = err.Error()

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.RecordCycleFailure(duration)

		log.Error().
			Err(err).
			Int("consecutive_failures", status.ConsecutiveFailures).
			Dur("duration", duration).
			Msg("Sync cycle failed")
	} else {
		status.SyncStatus = models.SyncStateSuccess
		status.ConsecutiveFailures = 0
		status.LastErrorMessage = ""
		status.LastSyncTimestamp = finished
		status.LastProcessed = processed

		span.SetAttributes(attribute.Int("pnode.processed", processed))
		s.metrics.RecordCycleSuccess(processed, duration)

		log.Info().
			Int("count", processed).
			Dur("duration", duration).
			Msg(result.Message())
	}

	s.saveStatus(ctx, status)

	return result
}

// loadStatus returns the stored status record. When the store cannot provide
// it, the last status this service wrote is reused so the failure count keeps
// counting from its previous value.
func (s *Service) loadStatus(ctx context.Context) *models.SystemStatus {
	status, err := s.store.EnsureStatus(ctx, s.clock.Now())
	if err == nil {
		return status
	}

	s.logger.Warn().Err(err).Msg("Failed to ensure sync status")

	if stored, getErr := s.store.GetStatus(ctx); getErr == nil {
		return stored
	}

	if s.lastStatus != nil {
		last := *s.lastStatus
		return &last
	}

	s.logger.Warn().Msg("No known sync status, starting from idle")

	return models.NewSystemStatus(s.clock.Now())
}

// saveStatus writes the status record. A failure here must not change the
// cycle outcome, so it is only logged.
func (s *Service) saveStatus(ctx context.Context, status *models.SystemStatus) {
	last := *status
	s.lastStatus = &last

	if err := s.store.UpsertStatus(ctx, status); err != nil {
		s.logger.Error().Err(err).Str("sync_status", string(status.SyncStatus)).Msg("Failed to persist sync status")
	}
}

func (s *Service) runCycle(ctx context.Context) (int, error) {
	roster := s.discover(ctx)
	if len(roster) == 0 {
		return 0, ErrNoNodesDiscovered
	}

	enriched := s.enricher.Enrich(ctx, roster)
	s.recordEnrichment(enriched)

	now := s.clock.Now()
	records := make([]models.NodeRecord, 0, len(enriched))

	var counts cycleCounts

	for i := range enriched {
		rec, err := s.processNode(ctx, &enriched[i], now, &counts)
		if err != nil {
			return len(records), fmt.Errorf("node %s: %w", enriched[i].Pubkey, err)
		}

		records = append(records, *rec)
	}

	s.metrics.RecordEvents(counts.detected, counts.stored)

	snapshot, err := aggregate.Aggregate(records, now)
	if err != nil {
		return len(records), fmt.Errorf("aggregate network: %w", err)
	}

	if err := s.store.InsertSnapshot(ctx, snapshot); err != nil {
		return len(records), fmt.Errorf("store snapshot: %w", err)
	}

	s.metrics.RecordSnapshot(snapshot)

	if err := s.upsertProviders(ctx, records, now); err != nil {
		return len(records), err
	}

	return len(records), nil
}

func (s *Service) discover(ctx context.Context) []models.RawNode {
	start := s.clock.Now()

	roster := s.discoverer.Discover(ctx)
	if len(roster) == 0 && s.config.RegistryFallback {
		roster = s.registryFallback(ctx)
	}

	s.metrics.RecordDiscovery(len(roster), s.clock.Now().Sub(start))

	return roster
}

func (s *Service) registryFallback(ctx context.Context) []models.RawNode {
	known, err := s.store.ListNodes(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Registry fallback: failed to list known nodes")

		return nil
	}

	nodes, err := s.discoverer.DiscoverFromRegistry(ctx, known)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Registry fallback failed")

		return nil
	}

	s.logger.Info().Int("count", len(nodes)).Msg("Roster rebuilt from registry")

	return nodes
}

func (s *Service) recordEnrichment(nodes []models.RawNode) {
	attempted, enriched := 0, 0

	for i := range nodes {
		if nodes[i].StatsAttempted {
			attempted++
		}

		if nodes[i].Enriched {
			enriched++
		}
	}

	s.metrics.RecordEnrichment(attempted, enriched)
	s.logger.Debug().
		Int("attempted", attempted).
		Int("enriched", enriched).
		Msg("Enrichment complete")
}

// processNode persists one node and diffs it against the previous cycle.
// Store errors abort the node; cache and event errors do not.
func (s *Service) processNode(ctx context.Context, raw *models.RawNode, now time.Time, counts *cycleCounts) (*models.NodeRecord, error) {
	existing, err := s.store.GetNode(ctx, raw.Pubkey)
	if err != nil && !errors.Is(err, db.ErrNodeNotFound) {
		return nil, fmt.Errorf("load node: %w", err)
	}

	rec := s.buildRecord(raw, existing, now)

	if err := s.store.UpsertNode(ctx, &rec); err != nil {
		return nil, fmt.Errorf("upsert node: %w", err)
	}

	if err := s.store.InsertMetricSample(ctx, models.SampleOf(&rec, now)); err != nil {
		return nil, fmt.Errorf("insert metric sample: %w", err)
	}

	s.diffAndPublish(ctx, &rec, now, counts)

	return &rec, nil
}

func (s *Service) diffAndPublish(ctx context.Context, rec *models.NodeRecord, now time.Time, counts *cycleCounts) {
	current := models.StateOf(rec)

	previous, err := s.cache.Get(ctx, rec.NodeID)
	if err != nil {
		// Without a reliable previous state every rule would misfire, so the
		// node is diffed again next cycle instead.
		s.logger.Warn().Err(err).Str("node_id", rec.NodeID).Msg("Previous state unavailable, skipping event detection")
	} else {
		detected := events.Detect(rec.NodeID, previous, current, now)
		if len(detected) > 0 {
			counts.detected += len(detected)
			counts.stored += s.publisher.Publish(ctx, detected)
		}
	}

	if err := s.cache.Put(ctx, rec.NodeID, current); err != nil {
		s.logger.Warn().Err(err).Str("node_id", rec.NodeID).Msg("Failed to update previous state")
	}
}

func (s *Service) upsertProviders(ctx context.Context, records []models.NodeRecord, now time.Time) error {
	providers := provider.ClusterAndAggregate(records, now)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range providers {
		p := &providers[i]

		g.Go(func() error {
			if err := s.store.UpsertProvider(gctx, p); err != nil {
				return fmt.Errorf("upsert provider %s: %w", p.ProviderID, err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	keep := make([]string, len(providers))
	for i := range providers {
		keep[i] = providers[i].ProviderID
	}

	removed, err := s.store.DeleteProvidersExcept(ctx, keep)
	if err != nil {
		return fmt.Errorf("delete stale providers: %w", err)
	}

	if removed > 0 {
		s.logger.Info().Int64("count", removed).Msg("Removed providers with no members this cycle")
	}

	s.metrics.RecordProviders(len(providers))

	return nil
}
