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

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/carverauto/pnoderadar/pkg/api"
	"github.com/carverauto/pnoderadar/pkg/db"
	"github.com/carverauto/pnoderadar/pkg/discovery"
	"github.com/carverauto/pnoderadar/pkg/enrich"
	"github.com/carverauto/pnoderadar/pkg/events"
	"github.com/carverauto/pnoderadar/pkg/geoip"
	"github.com/carverauto/pnoderadar/pkg/hashutil"
	"github.com/carverauto/pnoderadar/pkg/lifecycle"
	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/natsutil"
	"github.com/carverauto/pnoderadar/pkg/prpc"
	"github.com/carverauto/pnoderadar/pkg/registry"
	"github.com/carverauto/pnoderadar/pkg/statecache"
	pnodesync "github.com/carverauto/pnoderadar/pkg/sync"
	"github.com/carverauto/pnoderadar/pkg/version"
)

const defaultSampleRetention = 7 * 24 * time.Hour

var errNATSCacheUnavailable = errors.New("state_cache.type nats requires a NATS connection")

// natsOptions are applied to every NATS connection the binary opens.
var natsOptions = []nats.Option{nats.Name("pnode-sync")}

// app holds every wired component of the binary.
type app struct {
	cfg      *pnodesync.Config
	log      logger.Logger
	store    db.Service
	registry *registry.Client
	service  *pnodesync.Service
	api      *api.Server
	janitor  *db.Janitor
	closers  []func()
}

var _ lifecycle.Service = (*app)(nil)

func buildApp(ctx context.Context, cfg *pnodesync.Config, log logger.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	if err := a.wire(ctx); err != nil {
		a.close()
		return nil, err
	}

	return a, nil
}

func (a *app) wire(ctx context.Context) error {
	cfg := a.cfg

	if err := a.openStore(ctx); err != nil {
		return err
	}

	var (
		feed  events.Feed
		cache statecache.Cache
	)

	if cfg.NATS != nil {
		nc, err := natsutil.ConnectWithSecurity(cfg.NATS.URL, cfg.NATS.Security, lifecycle.Named(a.log, "nats"), natsOptions...)
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}

		a.closers = append(a.closers, func() { _ = nc.Drain() })

		pub, js, err := natsutil.CreateEventPublisher(ctx, nc, cfg.NATS, a.log)
		if err != nil {
			return fmt.Errorf("create event publisher: %w", err)
		}

		feed = pub

		if cfg.StateCache.Type == pnodesync.StateCacheNATS {
			kv, err := statecache.NewNATSCache(ctx, js, cfg.StateCache.Bucket)
			if err != nil {
				return fmt.Errorf("open state cache: %w", err)
			}

			cache = kv
		}
	}

	if cfg.StateCache.Type == pnodesync.StateCacheNATS && cache == nil {
		return errNATSCacheUnavailable
	}

	if cfg.Registry != nil && cfg.Registry.RPCURL != "" {
		rc, err := registry.NewClient(cfg.Registry, nil, lifecycle.Named(a.log, "registry"))
		if err != nil {
			return fmt.Errorf("registry client: %w", err)
		}

		a.registry = rc
	}

	rpc := prpc.NewClient(cfg.Seeds, lifecycle.Named(a.log, "prpc"))

	// a nil *registry.Client must not reach the interface
	var lookup discovery.RegistryLookup
	if a.registry != nil {
		lookup = a.registry
	}

	discoverer := discovery.NewDiscoverer(rpc, lookup, discovery.Config{
		SeedTimeout:   time.Duration(cfg.SeedTimeout),
		RetryAttempts: cfg.RetryAttempts,
		RetryDelay:    time.Duration(cfg.RetryDelay),
	}, lifecycle.Named(a.log, "discovery"))

	enricher := enrich.NewEnricher(rpc, enrich.Config{
		Workers:      cfg.Workers,
		StatsTimeout: time.Duration(cfg.StatsTimeout),
	}, lifecycle.Named(a.log, "enrich"))

	reg := prometheus.NewRegistry()
	if err := version.RegisterBuildInfo(reg); err != nil {
		return fmt.Errorf("register build info: %w", err)
	}

	deps := pnodesync.Dependencies{
		Store:      a.store,
		Discoverer: discoverer,
		Enricher:   enricher,
		Publisher:  events.NewPublisher(a.store, feed, lifecycle.Named(a.log, "events")),
		Cache:      cache,
		Metrics:    pnodesync.NewPrometheusMetrics(reg),
		Logger:     a.log,
	}

	if cfg.GeoIP != nil && cfg.GeoIP.DatabasePath != "" {
		if cfg.GeoIP.SHA256 != "" {
			if err := hashutil.VerifyFile(cfg.GeoIP.DatabasePath, cfg.GeoIP.SHA256); err != nil {
				return fmt.Errorf("verify geoip database: %w", err)
			}
		}

		resolver, err := geoip.Open(cfg.GeoIP.DatabasePath, lifecycle.Named(a.log, "geoip"))
		if err != nil {
			return fmt.Errorf("open geoip database: %w", err)
		}

		a.closers = append(a.closers, func() { _ = resolver.Close() })
		deps.Geo = resolver
	}

	svc, err := pnodesync.NewService(cfg, deps)
	if err != nil {
		return err
	}

	a.service = svc
	a.api = api.NewServer(cfg.ListenAddr, a.store, svc, lifecycle.Named(a.log, "api"),
		api.WithGatherer(reg),
		api.WithCORS(cfg.CORSAllowedOrigins),
		api.WithAPIKey(cfg.APIKey),
	)

	if pruner, ok := a.store.(db.Pruner); ok {
		a.janitor = db.NewJanitor(pruner, time.Duration(cfg.PruneInterval), sampleRetention(cfg), lifecycle.Named(a.log, "janitor"))
	}

	return nil
}

func (a *app) openStore(ctx context.Context) error {
	if a.cfg.Postgres == nil {
		a.log.Warn().Msg("No postgres section configured, using the in-memory store")
		a.store = db.NewMemoryStore()

		return nil
	}

	pool, err := db.NewPostgresPool(ctx, a.cfg.Postgres, a.log)
	if err != nil {
		return err
	}

	a.closers = append(a.closers, pool.Close)

	if err := db.RunMigrations(ctx, pool, a.log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	a.store = db.NewPostgresStore(pool, lifecycle.Named(a.log, "db"))

	return nil
}

func sampleRetention(cfg *pnodesync.Config) time.Duration {
	if cfg.Postgres != nil && cfg.Postgres.SampleRetention > 0 {
		return time.Duration(cfg.Postgres.SampleRetention)
	}

	return defaultSampleRetention
}

// Start brings up the admin API and the janitor, then blocks in the sync loop.
func (a *app) Start(ctx context.Context) error {
	if err := a.api.Start(ctx); err != nil {
		return fmt.Errorf("start admin API: %w", err)
	}

	if a.janitor != nil {
		a.janitor.Start(ctx)
	}

	return a.service.Start(ctx)
}

// Stop shuts components down in reverse start order and releases resources.
func (a *app) Stop(ctx context.Context) error {
	var errs []error

	if err := a.service.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("sync service: %w", err))
	}

	if a.janitor != nil {
		a.janitor.Stop()
	}

	if err := a.api.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("admin API: %w", err))
	}

	a.close()

	return errors.Join(errs...)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}

	a.closers = nil
}
