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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pnoderadar/pkg/db"
	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
	pnodesync "github.com/carverauto/pnoderadar/pkg/sync"
)

type fixedRunner struct{ result pnodesync.CycleResult }

func (f fixedRunner) RunSyncCycle(context.Context) pnodesync.CycleResult { return f.result }

type fakeLookup map[string]*models.RegistryAccount

var errRPCDown = errors.New("rpc down")

func (f fakeLookup) Lookup(_ context.Context, nodeID string) (*models.RegistryAccount, error) {
	if nodeID == "broken" {
		return nil, errRPCDown
	}

	return f[nodeID], nil
}

func TestRunOnce(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, runOnce(context.Background(), fixedRunner{pnodesync.CycleResult{Processed: 4}}, &out))
	assert.Equal(t, "Synced 4 pNodes\n", out.String())

	out.Reset()

	err := runOnce(context.Background(), fixedRunner{pnodesync.CycleResult{Err: pnodesync.ErrNoNodesDiscovered}}, &out)
	require.ErrorIs(t, err, pnodesync.ErrNoNodesDiscovered)
	assert.True(t, strings.HasPrefix(out.String(), "Sync Failed: "))
}

func TestLookupAll(t *testing.T) {
	lookup := fakeLookup{
		"node-a": {NodeID: "node-a", Status: models.NodeStatusOnline, Address: "addr"},
	}

	var out bytes.Buffer

	err := lookupAll(context.Background(), lookup, []string{"node-a", "node-b", "broken"}, &out)
	require.EqualError(t, err, "1 of 3 lookups failed")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)

	var first, second, third lookupResult
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &third))

	assert.True(t, first.Found)
	assert.Equal(t, models.NodeStatusOnline, first.Account.Status)
	assert.False(t, second.Found)
	assert.Empty(t, second.Error)
	assert.Equal(t, "rpc down", third.Error)
}

func TestSampleRetention(t *testing.T) {
	assert.Equal(t, defaultSampleRetention, sampleRetention(&pnodesync.Config{}))
	assert.Equal(t, 48*time.Hour, sampleRetention(&pnodesync.Config{
		Postgres: &models.PostgresConfig{SampleRetention: models.Duration(48 * time.Hour)},
	}))
}

func TestBuildAppInMemory(t *testing.T) {
	defer leaktest.Check(t)()

	cfg := &pnodesync.Config{
		Seeds:        []string{"127.0.0.1:1"},
		ListenAddr:   "127.0.0.1:0",
		InitialDelay: models.Duration(time.Hour),
	}

	a, err := buildApp(context.Background(), cfg, logger.NewTestLogger())
	require.NoError(t, err)

	store, ok := a.store.(*db.MemoryStore)
	require.True(t, ok)
	require.NotNil(t, a.janitor)
	assert.Nil(t, a.registry)

	errCh := make(chan error, 1)

	go func() { errCh <- a.Start(context.Background()) }()

	require.Eventually(t, func() bool {
		_, err := store.GetStatus(context.Background())
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, a.Stop(ctx))
	require.NoError(t, <-errCh)
}

func TestBuildAppRejectsNATSCacheWithoutNATS(t *testing.T) {
	cfg := &pnodesync.Config{Seeds: []string{"127.0.0.1:1"}}
	require.NoError(t, cfg.Validate())

	cfg.StateCache.Type = pnodesync.StateCacheNATS

	_, err := buildApp(context.Background(), cfg, logger.NewTestLogger())
	require.ErrorIs(t, err, errNATSCacheUnavailable)
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["run"])
	assert.True(t, names["sync-once"])
	assert.True(t, names["registry-lookup"])
	assert.True(t, names["version"])
	assert.Equal(t, defaultConfigPath, root.PersistentFlags().Lookup("config").DefValue)
}
