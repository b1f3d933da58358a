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

package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pnoderadar/pkg/models"
)

func TestMemoryStore_Nodes(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.GetNode(ctx, "missing")
	require.ErrorIs(t, err, ErrNodeNotFound)

	require.ErrorIs(t, store.UpsertNode(ctx, nil), ErrNilRecord)
	require.ErrorIs(t, store.UpsertNode(ctx, &models.NodeRecord{}), ErrNodeIDRequired)

	require.NoError(t, store.UpsertNode(ctx, &models.NodeRecord{NodeID: "b", Status: models.NodeStatusOnline}))
	require.NoError(t, store.UpsertNode(ctx, &models.NodeRecord{NodeID: "a", Status: models.NodeStatusOffline}))
	require.NoError(t, store.UpsertNode(ctx, &models.NodeRecord{NodeID: "b", Status: models.NodeStatusDegraded}))

	nodes, err := store.ListNodes(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[0].NodeID)
	assert.Equal(t, models.NodeStatusDegraded, nodes[1].Status)

	got, err := store.GetNode(ctx, "b")
	require.NoError(t, err)

	got.Status = models.NodeStatusOnline

	again, err := store.GetNode(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, models.NodeStatusDegraded, again.Status, "reads must not alias stored records")
}

func TestMemoryStore_EventsNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, node := range []string{"n1", "n2", "n1", "n1"} {
		require.NoError(t, store.InsertEvent(ctx, &models.Event{
			EventID:   string(rune('a' + i)),
			NodeID:    node,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	require.ErrorIs(t, store.InsertEvent(ctx, &models.Event{}), ErrEventIDRequired)

	all, err := store.ListEvents(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "d", all[0].EventID)
	assert.Equal(t, "a", all[3].EventID)

	limited, err := store.ListNodeEvents(ctx, "n1", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "d", limited[0].EventID)
	assert.Equal(t, "c", limited[1].EventID)

	none, err := store.ListNodeEvents(ctx, "n9", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestMemoryStore_MetricsAndPrune(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.InsertMetricSample(ctx, &models.MetricSample{
			NodeID:    "n1",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	samples, err := store.GetNodeMetrics(ctx, "n1", 3)
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, base.Add(4*time.Hour), samples[0].Timestamp)

	removed, err := store.PruneMetricSamples(ctx, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	samples, err = store.GetNodeMetrics(ctx, "n1", 0)
	require.NoError(t, err)
	assert.Len(t, samples, 3)
}

func TestMemoryStore_ProvidersReplaceMembership(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	ids := []string{"n1", "n2"}
	require.NoError(t, store.UpsertProvider(ctx, &models.Provider{ProviderID: "p2", NodeIDs: ids}))
	require.NoError(t, store.UpsertProvider(ctx, &models.Provider{ProviderID: "p1", NodeIDs: []string{"n3"}}))
	require.NoError(t, store.UpsertProvider(ctx, &models.Provider{ProviderID: "p2", NodeIDs: []string{"n2"}}))
	require.ErrorIs(t, store.UpsertProvider(ctx, &models.Provider{}), ErrProviderIDRequired)

	ids[0] = "mutated"

	providers, err := store.ListProviders(ctx)
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.Equal(t, "p1", providers[0].ProviderID)
	assert.Equal(t, []string{"n2"}, providers[1].NodeIDs)

	n, err := store.DeleteProvidersExcept(ctx, []string{"p2"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	providers, err = store.ListProviders(ctx)
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "p2", providers[0].ProviderID)

	n, err = store.DeleteProvidersExcept(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryStore_Status(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := store.GetStatus(ctx)
	require.ErrorIs(t, err, ErrStatusNotFound)

	st, err := store.EnsureStatus(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStateIdle, st.SyncStatus)
	assert.Equal(t, models.SystemStatusID, st.ID)

	st.SyncStatus = models.SyncStateError
	st.ConsecutiveFailures = 2
	require.NoError(t, store.UpsertStatus(ctx, st))

	again, err := store.EnsureStatus(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.SyncStateError, again.SyncStatus)
	assert.Equal(t, 2, again.ConsecutiveFailures)
}

func TestMemoryStore_SnapshotsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.InsertSnapshot(ctx, &models.NetworkSnapshot{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Nodes:     models.NodeCounts{Total: i},
		}))
	}

	snaps, err := store.LatestSnapshots(ctx, 1)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, 2, snaps[0].Nodes.Total)
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, normalizeLimit(0))
	assert.Equal(t, DefaultListLimit, normalizeLimit(-5))
	assert.Equal(t, 7, normalizeLimit(7))
	assert.Equal(t, MaxListLimit, normalizeLimit(MaxListLimit+1))
}
