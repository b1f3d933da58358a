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
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
)

type countingPruner struct {
	calls  atomic.Int32
	cutoff atomic.Value
	err    error
}

func (c *countingPruner) PruneMetricSamples(_ context.Context, olderThan time.Time) (int64, error) {
	c.calls.Add(1)
	c.cutoff.Store(olderThan)

	return 2, c.err
}

func TestJanitorPruneOnceUsesRetention(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	for _, age := range []time.Duration{72 * time.Hour, 36 * time.Hour, time.Hour} {
		require.NoError(t, store.InsertMetricSample(ctx, &models.MetricSample{NodeID: "n1", Timestamp: now.Add(-age)}))
	}

	j := NewJanitor(store, time.Hour, 48*time.Hour, logger.NewTestLogger())
	j.now = func() time.Time { return now }

	n, err := j.PruneOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, err := store.GetNodeMetrics(ctx, "n1", 0)
	require.NoError(t, err)
	assert.Len(t, left, 2)
}

func TestJanitorPruneOnceError(t *testing.T) {
	p := &countingPruner{err: errors.New("locked")}
	j := NewJanitor(p, time.Hour, time.Hour, logger.NewTestLogger())

	_, err := j.PruneOnce(context.Background())
	require.Error(t, err)
}

func TestJanitorLoop(t *testing.T) {
	defer leaktest.Check(t)()

	p := &countingPruner{}
	j := NewJanitor(p, 5*time.Millisecond, time.Hour, logger.NewTestLogger())

	j.Start(context.Background())

	require.Eventually(t, func() bool { return p.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)

	j.Stop()
	j.Stop()
}

func TestJanitorDisabled(t *testing.T) {
	defer leaktest.Check(t)()

	p := &countingPruner{}
	j := NewJanitor(p, time.Hour, 0, logger.NewTestLogger())

	j.Start(context.Background())
	j.Stop()

	assert.Equal(t, int32(0), p.calls.Load())
}
