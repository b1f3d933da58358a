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

package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/carverauto/pnoderadar/pkg/models"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func base() models.PreviousState {
	return models.PreviousState{
		StorageCommitted:    100e9,
		StorageUsed:         10e9,
		StorageUsagePercent: 10,
		Status:              models.NodeStatusOnline,
		Version:             "0.8.0",
		CPUPercent:          models.Float64Ptr(20),
		RAMUsagePercent:     models.Float64Ptr(30),
	}
}

func types(evs []models.Event) []string {
	out := make([]string, len(evs))
	for i := range evs {
		out[i] = evs[i].Type
	}

	return out
}

func TestDetectNewNodeJoinsOnly(t *testing.T) {
	cur := base()
	cur.CPUPercent = models.Float64Ptr(99)
	cur.StorageUsagePercent = 95

	evs := Detect("PK", nil, cur, now)

	require.Len(t, evs, 1)
	assert.Equal(t, models.EventNodeJoined, evs[0].Type)
	assert.Equal(t, models.SeverityInfo, evs[0].Severity)
	assert.Equal(t, models.EventCategoryNode, evs[0].Category)
	assert.Equal(t, "PK", evs[0].NodeID)
	assert.Equal(t, now, evs[0].Timestamp)
	assert.NotEmpty(t, evs[0].EventID)
}

func TestDetectNoChange(t *testing.T) {
	prev := base()

	assert.Empty(t, Detect("PK", &prev, base(), now))
}

func TestDetectCPUCrossing(t *testing.T) {
	tests := []struct {
		name string
		prev *float64
		cur  *float64
		want bool
	}{
		{name: "79 to 85 fires", prev: models.Float64Ptr(79), cur: models.Float64Ptr(85), want: true},
		{name: "85 to 90 stays quiet", prev: models.Float64Ptr(85), cur: models.Float64Ptr(90), want: false},
		{name: "exactly 80 to 81 fires", prev: models.Float64Ptr(80), cur: models.Float64Ptr(81), want: true},
		{name: "79 to 80 stays quiet", prev: models.Float64Ptr(79), cur: models.Float64Ptr(80), want: false},
		{name: "unknown previous", prev: nil, cur: models.Float64Ptr(95), want: false},
		{name: "unknown current", prev: models.Float64Ptr(10), cur: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, cur := base(), base()
			prev.CPUPercent, cur.CPUPercent = tt.prev, tt.cur

			evs := Detect("PK", &prev, cur, now)

			if !tt.want {
				assert.NotContains(t, types(evs), models.EventHighCPU)
				return
			}

			require.Len(t, evs, 1)
			assert.Equal(t, models.EventHighCPU, evs[0].Type)
			assert.Equal(t, models.SeverityWarning, evs[0].Severity)
			assert.Equal(t, models.EventCategoryPerformance, evs[0].Category)
			require.NotNil(t, evs[0].Details.Delta)
			assert.InDelta(t, *tt.cur-*tt.prev, *evs[0].Details.Delta, 1e-9)
		})
	}
}

func TestDetectStatusSeverity(t *testing.T) {
	prev, cur := base(), base()
	cur.Status = models.NodeStatusOffline

	evs := Detect("PK", &prev, cur, now)
	require.Len(t, evs, 1)
	assert.Equal(t, "node_offline", evs[0].Type)
	assert.Equal(t, models.SeverityWarning, evs[0].Severity)

	prev.Status, cur.Status = models.NodeStatusOffline, models.NodeStatusOnline

	evs = Detect("PK", &prev, cur, now)
	require.Len(t, evs, 1)
	assert.Equal(t, "node_online", evs[0].Type)
	assert.Equal(t, models.SeverityInfo, evs[0].Severity)
}

func TestDetectRuleOrder(t *testing.T) {
	prev := base()
	prev.RAMUsagePercent = models.Float64Ptr(70)
	prev.StorageUsagePercent = 85
	prev.CPUPercent = models.Float64Ptr(50)

	cur := base()
	cur.StorageCommitted = 50e9
	cur.Status = models.NodeStatusDegraded
	cur.Version = "0.9.0"
	cur.CPUPercent = models.Float64Ptr(81)
	cur.RAMUsagePercent = models.Float64Ptr(81)
	cur.StorageUsagePercent = 91

	evs := Detect("PK", &prev, cur, now)

	assert.Equal(t, []string{
		models.EventCapacityRemoved,
		"node_degraded",
		models.EventVersionUpgraded,
		models.EventHighCPU,
		models.EventHighRAM,
		models.EventStorageFull,
	}, types(evs))

	assert.Equal(t, models.SeverityCritical, evs[5].Severity)
	assert.Equal(t, models.EventCategoryStorage, evs[5].Category)
	require.NotNil(t, evs[0].Details.Delta)
	assert.InDelta(t, -50e9, *evs[0].Details.Delta, 1)

	ids := map[string]bool{}
	for _, ev := range evs {
		ids[ev.EventID] = true
	}

	assert.Len(t, ids, len(evs))
}

func TestDetectCapacityAdded(t *testing.T) {
	prev, cur := base(), base()
	cur.StorageCommitted = prev.StorageCommitted + 5e9

	evs := Detect("PK", &prev, cur, now)

	require.Len(t, evs, 1)
	assert.Equal(t, models.EventCapacityAdded, evs[0].Type)
	assert.Equal(t, "Committed storage increased by 5.00 GB", evs[0].Details.Message)
}

func TestDetectNeverRefiresAboveThreshold(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := rapid.Float64Range(80.0001, 100).Draw(t, "prev")
		c := rapid.Float64Range(0, 100).Draw(t, "cur")

		prev, cur := base(), base()
		prev.CPUPercent, cur.CPUPercent = &p, &c

		for _, ev := range Detect("PK", &prev, cur, now) {
			if ev.Type == models.EventHighCPU {
				t.Fatalf("high_cpu fired while already above threshold (%v -> %v)", p, c)
			}
		}
	})
}
