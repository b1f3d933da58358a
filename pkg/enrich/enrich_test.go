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

package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
	"github.com/carverauto/pnoderadar/pkg/prpc"
)

var errUnreachable = errors.New("unreachable")

func payload(cpu float64) *models.StatsPayload {
	return &models.StatsPayload{
		Metadata: models.StatsMetadata{TotalBytes: 1000, TotalPages: 10},
		Stats: models.NodeStats{
			CPUPercent:      models.Float64Ptr(cpu),
			RAMUsed:         512,
			RAMTotal:        2048,
			Uptime:          7200,
			PacketsReceived: 5,
			PacketsSent:     6,
			ActiveStreams:   2,
		},
		FileSize: 4096,
	}
}

func TestEnrichPreservesOrderAndFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := prpc.NewMockStatsSource(ctrl)

	source.EXPECT().FetchLiveStats(gomock.Any(), "10.0.0.1:6000").Return(payload(12), nil)
	source.EXPECT().FetchLiveStats(gomock.Any(), "10.0.0.2:6000").Return(nil, errUnreachable)

	in := []models.RawNode{
		{Pubkey: "A", Address: "10.0.0.1:9001", RPCPort: 6000, StorageCommitted: 100, StorageUsed: 40},
		{Pubkey: "B", Address: "10.0.0.2:9001", RPCPort: 6000, Uptime: 60},
		{Pubkey: "C"},
	}

	out := NewEnricher(source, Config{Workers: 2, StatsTimeout: time.Second}, logger.NewTestLogger()).
		Enrich(context.Background(), in)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{out[0].Pubkey, out[1].Pubkey, out[2].Pubkey})

	a := out[0]
	assert.True(t, a.Enriched)
	require.NotNil(t, a.CPUPercent)
	assert.InDelta(t, 12, *a.CPUPercent, 1e-9)
	require.NotNil(t, a.RAMUsagePercent)
	assert.InDelta(t, 25, *a.RAMUsagePercent, 1e-9)
	assert.Equal(t, int64(60), a.StorageAvailable)
	assert.Equal(t, int64(7200), a.Uptime)
	assert.Equal(t, int64(4096), a.FileSize)
	require.NotNil(t, a.LatencyMs)
	assert.GreaterOrEqual(t, *a.LatencyMs, 0.0)

	b := out[1]
	assert.True(t, b.StatsAttempted)
	assert.False(t, b.Enriched)
	assert.Nil(t, b.CPUPercent)
	assert.Equal(t, int64(60), b.Uptime)

	assert.False(t, out[2].StatsAttempted)

	// input is untouched
	assert.False(t, in[0].Enriched)
}

func TestEnrichBoundsConcurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := prpc.NewMockStatsSource(ctrl)

	var inFlight, peak atomic.Int32

	source.EXPECT().FetchLiveStats(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string) (*models.StatsPayload, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)

			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}

			time.Sleep(5 * time.Millisecond)

			return payload(1), nil
		}).Times(20)

	nodes := make([]models.RawNode, 20)
	for i := range nodes {
		nodes[i] = models.RawNode{Pubkey: fmt.Sprintf("N%d", i), Address: fmt.Sprintf("10.0.0.%d:9001", i+1), RPCPort: 6000}
	}

	out := NewEnricher(source, Config{Workers: 3}, logger.NewTestLogger()).Enrich(context.Background(), nodes)

	require.Len(t, out, 20)
	assert.LessOrEqual(t, peak.Load(), int32(3))

	for _, n := range out {
		assert.True(t, n.Enriched)
	}
}

func TestEnrichAppliesStatsTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := prpc.NewMockStatsSource(ctrl)

	source.EXPECT().FetchLiveStats(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (*models.StatsPayload, error) {
			<-ctx.Done()

			return nil, ctx.Err()
		})

	out := NewEnricher(source, Config{StatsTimeout: 20 * time.Millisecond}, logger.NewTestLogger()).
		Enrich(context.Background(), []models.RawNode{{Pubkey: "A", Address: "10.0.0.1:1", RPCPort: 6000}})

	assert.False(t, out[0].Enriched)
}

func TestMergeNegativeAvailableAndZeroRAM(t *testing.T) {
	node := models.RawNode{StorageCommitted: 10, StorageUsed: 25}

	p := payload(50)
	p.Stats.RAMTotal = 0

	Merge(&node, p, 3.5)

	assert.Equal(t, int64(-15), node.StorageAvailable)
	assert.Nil(t, node.RAMUsagePercent)
	assert.InDelta(t, 3.5, *node.LatencyMs, 1e-9)
}

func TestMergeKeepsGossipValuesMissingFromStats(t *testing.T) {
	tests := []struct {
		name       string
		cpu        *float64
		uptime     int64
		wantCPU    *float64
		wantUptime int64
	}{
		{name: "no cpu and zero uptime", wantUptime: 300},
		{name: "reported zero cpu", cpu: models.Float64Ptr(0), wantCPU: models.Float64Ptr(0), wantUptime: 300},
		{name: "fresh uptime", uptime: 900, wantUptime: 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := models.RawNode{Pubkey: "A", Uptime: 300}

			p := payload(0)
			p.Stats.CPUPercent = tt.cpu
			p.Stats.Uptime = tt.uptime

			Merge(&node, p, 1)

			assert.True(t, node.Enriched)
			assert.Equal(t, tt.wantUptime, node.Uptime)
			assert.Equal(t, tt.wantCPU, node.CPUPercent)
		})
	}
}

func TestDecodedStatsWithoutCPUStayUnknown(t *testing.T) {
	var p models.StatsPayload
	require.NoError(t, json.Unmarshal([]byte(`{"stats":{"ram_total":100,"uptime":0}}`), &p))

	node := models.RawNode{Pubkey: "A", Uptime: 42}
	Merge(&node, &p, 1)

	assert.Nil(t, node.CPUPercent)
	assert.Equal(t, int64(42), node.Uptime)
}
