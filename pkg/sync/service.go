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

// Package sync runs the pNode synchronization loop: discover the roster,
// enrich it, persist per-node state and events, then aggregate the network.
package sync

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/carverauto/pnoderadar/pkg/db"
	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
	"github.com/carverauto/pnoderadar/pkg/statecache"
)

var (
	errStoreRequired      = errors.New("store is required")
	errDiscovererRequired = errors.New("discoverer is required")
	errEnricherRequired   = errors.New("enricher is required")
	errPublisherRequired  = errors.New("event publisher is required")
)

const tracerName = "github.com/carverauto/pnoderadar/pkg/sync"

// Dependencies are the collaborators of a Service. Cache, Geo, Metrics and
// Clock are optional.
type Dependencies struct {
	Store      db.Service
	Discoverer RosterDiscoverer
	Enricher   Enricher
	Publisher  EventPublisher
	Cache      statecache.Cache
	Geo        GeoResolver
	Metrics    Metrics
	Clock      Clock
	Logger     logger.Logger
}

// Service owns the sync cycle and its schedule.
type Service struct {
	config     Config
	store      db.Service
	discoverer RosterDiscoverer
	enricher   Enricher
	publisher  EventPublisher
	cache      statecache.Cache
	geo        GeoResolver
	metrics    Metrics
	clock      Clock
	logger     logger.Logger
	tracer     trace.Tracer

	// cycleMu makes RunSyncCycle non re-entrant and guards lastStatus.
	cycleMu    sync.Mutex
	lastStatus *models.SystemStatus

	done      chan struct{}
	closeOnce sync.Once
	startWg   sync.WaitGroup
	wg        sync.WaitGroup
}

// NewService validates cfg and wires the collaborators.
func NewService(cfg *Config, deps Dependencies) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch {
	case deps.Store == nil:
		return nil, errStoreRequired
	case deps.Discoverer == nil:
		return nil, errDiscovererRequired
	case deps.Enricher == nil:
		return nil, errEnricherRequired
	case deps.Publisher == nil:
		return nil, errPublisherRequired
	}

	if deps.Cache == nil {
		deps.Cache = statecache.NewMemoryCache()
	}

	if deps.Metrics == nil {
		deps.Metrics = NoOpMetrics{}
	}

	if deps.Clock == nil {
		deps.Clock = realClock{}
	}

	if deps.Logger == nil {
		deps.Logger = logger.NewTestLogger()
	}

	return &Service{
		config:     *cfg,
		store:      deps.Store,
		discoverer: deps.Discoverer,
		enricher:   deps.Enricher,
		publisher:  deps.Publisher,
		cache:      deps.Cache,
		geo:        deps.Geo,
		metrics:    deps.Metrics,
		clock:      deps.Clock,
		logger:     deps.Logger,
		tracer:     logger.GetTracer(tracerName),
		done:       make(chan struct{}),
	}, nil
}

// Start implements the lifecycle.Service interface. It ensures the status
// record exists, runs one cycle after the initial delay and then one per
// sync interval until ctx is canceled or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	s.startWg.Add(1)
	defer s.startWg.Done()

	if _, err := s.store.EnsureStatus(ctx, s.clock.Now()); err != nil {
		return err
	}

	interval := time.Duration(s.config.SyncInterval)

	s.logger.Info().
		Dur("interval", interval).
		Dur("initial_delay", time.Duration(s.config.InitialDelay)).
		Int("seeds", len(s.config.Seeds)).
		Msg("Starting pNode sync service")

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return nil
	case <-s.clock.After(time.Duration(s.config.InitialDelay)):
	}

	s.launch(ctx)

	ticker := s.clock.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case <-ticker.Chan():
			s.launch(ctx)
		}
	}
}

// launch runs a cycle in the background. Overlapping ticks are rejected by
// the cycle guard rather than queued.
func (s *Service) launch(ctx context.Context) {
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		result := s.RunSyncCycle(ctx)
		if result.Err != nil && !errors.Is(result.Err, ErrCycleInProgress) {
			s.logger.Error().Err(result.Err).Msg(result.Message())
		}
	}()
}

// Stop implements the lifecycle.Service interface. It waits for the loop and
// any in-flight cycle until ctx expires.
func (s *Service) Stop(ctx context.Context) error {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	finished := make(chan struct{})

	go func() {
		s.startWg.Wait()
		s.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		s.logger.Info().Msg("pNode sync service stopped")

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
