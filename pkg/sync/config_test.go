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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pnoderadar/pkg/models"
)

func TestConfigValidateDefaults(t *testing.T) {
	cfg := Config{Seeds: []string{"seed-1:6000"}}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, models.Duration(60*time.Second), cfg.SyncInterval)
	assert.Equal(t, models.Duration(5*time.Second), cfg.InitialDelay)
	assert.Equal(t, models.Duration(10*time.Second), cfg.SeedTimeout)
	assert.Equal(t, models.Duration(5*time.Second), cfg.StatsTimeout)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, models.Duration(time.Second), cfg.RetryDelay)
	assert.Equal(t, 32, cfg.Workers)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, StateCacheMemory, cfg.StateCache.Type)
	assert.False(t, cfg.RegistryFallback)
}

func TestConfigValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{
			name: "no seeds",
			cfg:  Config{},
			want: errMissingSeeds,
		},
		{
			name: "unknown cache type",
			cfg:  Config{Seeds: []string{"s"}, StateCache: StateCacheConfig{Type: "redis"}},
			want: errInvalidStateCache,
		},
		{
			name: "nats cache without nats",
			cfg:  Config{Seeds: []string{"s"}, StateCache: StateCacheConfig{Type: StateCacheNATS}},
			want: errStateCacheNeedsNATS,
		},
		{
			name: "registry fallback without registry",
			cfg:  Config{Seeds: []string{"s"}, RegistryFallback: true},
			want: errRegistryNeedsConfig,
		},
		{
			name: "inverted status windows",
			cfg: Config{
				Seeds:        []string{"s"},
				OnlineWindow: models.Duration(time.Hour),
				OfflineAfter: models.Duration(time.Minute),
			},
			want: errInvalidWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			require.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestConfigValidateNATSDefaults(t *testing.T) {
	cfg := Config{
		Seeds:      []string{"s"},
		NATS:       &models.NATSConfig{URL: "nats://localhost:4222"},
		StateCache: StateCacheConfig{Type: StateCacheNATS},
	}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "pnode-events", cfg.NATS.StreamName)
}
