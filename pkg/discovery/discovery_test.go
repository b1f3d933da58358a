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

package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
	"github.com/carverauto/pnoderadar/pkg/prpc"
)

var errSeedDown = errors.New("seed down")

func fastConfig() Config {
	return Config{SeedTimeout: time.Second, RetryAttempts: 3, RetryDelay: 0}
}

func TestDiscoverFirstSeedWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := prpc.NewMockRosterSource(ctrl)

	source.EXPECT().ListSeedEndpoints().Return([]string{"a:6000", "b:6000"})
	source.EXPECT().FetchRoster(gomock.Any(), "a:6000").Return([]models.RawNode{{Pubkey: "PK1", Address: "10.0.0.1:9001"}}, nil)

	nodes := NewDiscoverer(source, nil, fastConfig(), logger.NewTestLogger()).Discover(context.Background())

	require.Len(t, nodes, 1)
	assert.Equal(t, "PK1", nodes[0].Pubkey)
}

func TestDiscoverRetriesThenAdvances(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := prpc.NewMockRosterSource(ctrl)

	source.EXPECT().ListSeedEndpoints().Return([]string{"a:6000", "b:6000"})

	gomock.InOrder(
		source.EXPECT().FetchRoster(gomock.Any(), "a:6000").Return(nil, errSeedDown).Times(3),
		source.EXPECT().FetchRoster(gomock.Any(), "b:6000").Return(nil, errSeedDown),
		source.EXPECT().FetchRoster(gomock.Any(), "b:6000").Return([]models.RawNode{{Pubkey: "PK2"}}, nil),
	)

	nodes := NewDiscoverer(source, nil, fastConfig(), logger.NewTestLogger()).Discover(context.Background())

	require.Len(t, nodes, 1)
	assert.Equal(t, "PK2", nodes[0].Pubkey)
}

func TestDiscoverEmptyRosterIsRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := prpc.NewMockRosterSource(ctrl)

	source.EXPECT().ListSeedEndpoints().Return([]string{"a:6000"})
	gomock.InOrder(
		source.EXPECT().FetchRoster(gomock.Any(), "a:6000").Return([]models.RawNode{{Pubkey: ""}}, nil),
		source.EXPECT().FetchRoster(gomock.Any(), "a:6000").Return([]models.RawNode{{Pubkey: "PK"}}, nil),
	)

	nodes := NewDiscoverer(source, nil, fastConfig(), logger.NewTestLogger()).Discover(context.Background())
	assert.Len(t, nodes, 1)
}

func TestDiscoverAllSeedsExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := prpc.NewMockRosterSource(ctrl)

	source.EXPECT().ListSeedEndpoints().Return([]string{"a:6000", "b:6000"})
	source.EXPECT().FetchRoster(gomock.Any(), gomock.Any()).Return(nil, errSeedDown).Times(6)

	nodes := NewDiscoverer(source, nil, fastConfig(), logger.NewTestLogger()).Discover(context.Background())

	require.NotNil(t, nodes)
	assert.Empty(t, nodes)
}

func TestDiscoverOpenBreakerSkipsRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := prpc.NewMockRosterSource(ctrl)

	source.EXPECT().ListSeedEndpoints().Return([]string{"a:6000"})
	source.EXPECT().FetchRoster(gomock.Any(), "a:6000").Return(nil, prpc.ErrCircuitOpen).Times(1)

	nodes := NewDiscoverer(source, nil, fastConfig(), logger.NewTestLogger()).Discover(context.Background())
	assert.Empty(t, nodes)
}

func TestDiscoverAppliesSeedTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := prpc.NewMockRosterSource(ctrl)

	source.EXPECT().ListSeedEndpoints().Return([]string{"slow:6000"})
	source.EXPECT().FetchRoster(gomock.Any(), "slow:6000").DoAndReturn(
		func(ctx context.Context, _ string) ([]models.RawNode, error) {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 40*time.Millisecond)

			<-ctx.Done()

			return nil, ctx.Err()
		})

	cfg := Config{SeedTimeout: 50 * time.Millisecond, RetryAttempts: 1}

	nodes := NewDiscoverer(source, nil, cfg, logger.NewTestLogger()).Discover(context.Background())
	assert.Empty(t, nodes)
}

func TestDiscoverNoSeeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := prpc.NewMockRosterSource(ctrl)

	source.EXPECT().ListSeedEndpoints().Return(nil)

	assert.Empty(t, NewDiscoverer(source, nil, fastConfig(), logger.NewTestLogger()).Discover(context.Background()))
}

func TestDiscoverFromRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := prpc.NewMockRosterSource(ctrl)
	reg := NewMockRegistryLookup(ctrl)

	ts := time.Unix(1700000000, 0).UTC()

	reg.EXPECT().Lookup(gomock.Any(), "A").Return(&models.RegistryAccount{NodeID: "A", Status: models.NodeStatusOnline, Timestamp: ts}, nil)
	reg.EXPECT().Lookup(gomock.Any(), "B").Return(nil, nil)
	reg.EXPECT().Lookup(gomock.Any(), "C").Return(nil, errSeedDown)

	known := []models.NodeRecord{
		{NodeID: "A", Address: "10.0.0.1:9001", RPCPort: 6000, Version: "0.8.0", CurrentMetrics: models.NodeMetrics{StorageCommitted: 100}},
		{NodeID: "B"},
		{NodeID: "C"},
	}

	nodes, err := NewDiscoverer(source, reg, fastConfig(), logger.NewTestLogger()).DiscoverFromRegistry(context.Background(), known)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	assert.Equal(t, "A", nodes[0].Pubkey)
	assert.Equal(t, "10.0.0.1:9001", nodes[0].Address)
	assert.Equal(t, ts.Unix(), nodes[0].LastSeenTimestamp)
	assert.Equal(t, int64(100), nodes[0].StorageCommitted)
	assert.Equal(t, models.NodeStatusOnline, nodes[0].RegistryStatus)
}

func TestDiscoverFromRegistryDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := NewDiscoverer(prpc.NewMockRosterSource(ctrl), nil, fastConfig(), logger.NewTestLogger()).
		DiscoverFromRegistry(context.Background(), nil)
	require.ErrorIs(t, err, ErrRegistryDisabled)
}
