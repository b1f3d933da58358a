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
	"errors"
	"fmt"
	"time"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
)

const (
	defaultSyncInterval  = 60 * time.Second
	defaultInitialDelay  = 5 * time.Second
	defaultSeedTimeout   = 10 * time.Second
	defaultStatsTimeout  = 5 * time.Second
	defaultRetryAttempts = 3
	defaultRetryDelay    = time.Second
	defaultWorkers       = 32
	defaultOnlineWindow  = 5 * time.Minute
	defaultOfflineAfter  = time.Hour
	defaultListenAddr    = ":9090"
	defaultPruneInterval = time.Hour

	// StateCacheMemory keeps previous state in process memory.
	StateCacheMemory = "memory"
	// StateCacheNATS keeps previous state in a JetStream KeyValue bucket.
	StateCacheNATS = "nats"
)

var (
	errMissingSeeds        = errors.New("at least one seed endpoint is required")
	errInvalidStateCache   = errors.New("state_cache.type must be memory or nats")
	errStateCacheNeedsNATS = errors.New("state_cache.type nats requires a nats section")
	errRegistryNeedsConfig = errors.New("registry_fallback requires registry.rpc_url and registry.program_id")
	errInvalidWindow       = errors.New("offline_after must not be shorter than online_window")
)

// StateCacheConfig selects the previous-state cache backend.
type StateCacheConfig struct {
	Type   string `json:"type" yaml:"type"`
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
}

// Config configures the pnode-sync service.
type Config struct {
	Seeds         []string        `json:"seeds" yaml:"seeds"`
	SyncInterval  models.Duration `json:"sync_interval" yaml:"sync_interval"`
	InitialDelay  models.Duration `json:"initial_delay" yaml:"initial_delay"`
	SeedTimeout   models.Duration `json:"seed_timeout" yaml:"seed_timeout"`
	StatsTimeout  models.Duration `json:"stats_timeout" yaml:"stats_timeout"`
	RetryAttempts int             `json:"retry_attempts" yaml:"retry_attempts"`
	RetryDelay    models.Duration `json:"retry_delay" yaml:"retry_delay"`
	Workers       int             `json:"workers" yaml:"workers"`

	// A node last seen within OnlineWindow is online, within OfflineAfter
	// degraded, and offline beyond that.
	OnlineWindow models.Duration `json:"online_window" yaml:"online_window"`
	OfflineAfter models.Duration `json:"offline_after" yaml:"offline_after"`

	// RegistryFallback rebuilds the roster from the on-chain registry when
	// every seed fails. Off by default.
	RegistryFallback bool `json:"registry_fallback" yaml:"registry_fallback"`

	ListenAddr    string          `json:"listen_addr" yaml:"listen_addr"`
	PruneInterval models.Duration `json:"prune_interval" yaml:"prune_interval"`

	// CORSAllowedOrigins enables CORS on the admin API when non-empty.
	CORSAllowedOrigins []string `json:"cors_allowed_origins,omitempty" yaml:"cors_allowed_origins,omitempty"`
	// APIKey, when set, is required by the admin API's write endpoints.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	StateCache StateCacheConfig       `json:"state_cache" yaml:"state_cache"`
	Postgres   *models.PostgresConfig `json:"postgres,omitempty" yaml:"postgres,omitempty"`
	NATS       *models.NATSConfig     `json:"nats,omitempty" yaml:"nats,omitempty"`
	Registry   *models.RegistryConfig `json:"registry,omitempty" yaml:"registry,omitempty"`
	GeoIP      *models.GeoIPConfig    `json:"geoip,omitempty" yaml:"geoip,omitempty"`
	Logging    *logger.Config         `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// Validate applies defaults and checks the configuration.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return errMissingSeeds
	}

	setDefault(&c.SyncInterval, defaultSyncInterval)
	setDefault(&c.InitialDelay, defaultInitialDelay)
	setDefault(&c.SeedTimeout, defaultSeedTimeout)
	setDefault(&c.StatsTimeout, defaultStatsTimeout)
	setDefault(&c.RetryDelay, defaultRetryDelay)
	setDefault(&c.OnlineWindow, defaultOnlineWindow)
	setDefault(&c.OfflineAfter, defaultOfflineAfter)
	setDefault(&c.PruneInterval, defaultPruneInterval)

	if c.RetryAttempts <= 0 {
		c.RetryAttempts = defaultRetryAttempts
	}

	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}

	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}

	if c.OfflineAfter < c.OnlineWindow {
		return errInvalidWindow
	}

	if err := c.validateStateCache(); err != nil {
		return err
	}

	if c.RegistryFallback && (c.Registry == nil || c.Registry.RPCURL == "" || c.Registry.ProgramID == "") {
		return errRegistryNeedsConfig
	}

	if c.NATS != nil {
		if err := c.NATS.Validate(); err != nil {
			return fmt.Errorf("nats: %w", err)
		}
	}

	return nil
}

func (c *Config) validateStateCache() error {
	switch c.StateCache.Type {
	case "":
		c.StateCache.Type = StateCacheMemory
	case StateCacheMemory:
	case StateCacheNATS:
		if c.NATS == nil {
			return errStateCacheNeedsNATS
		}
	default:
		return fmt.Errorf("%w: %q", errInvalidStateCache, c.StateCache.Type)
	}

	return nil
}

func setDefault(d *models.Duration, def time.Duration) {
	if *d <= 0 {
		*d = models.Duration(def)
	}
}
