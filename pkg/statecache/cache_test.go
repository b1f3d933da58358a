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

package statecache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pnoderadar/pkg/models"
)

func sampleState() models.PreviousState {
	return models.PreviousState{
		StorageCommitted: 100,
		Status:           models.NodeStatusOnline,
		Version:          "0.8.0",
		CPUPercent:       models.Float64Ptr(42),
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	got, err := c.Get(ctx, "A")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Put(ctx, "A", sampleState()))

	got, err = c.Get(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sampleState(), *got)

	got.Version = "mutated"

	again, _ := c.Get(ctx, "A")
	assert.Equal(t, "0.8.0", again.Version)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			id := fmt.Sprintf("N%d", i%10)
			_ = c.Put(ctx, id, sampleState())
			_, _ = c.Get(ctx, id)
		}(i)
	}

	wg.Wait()
	assert.Equal(t, 10, c.Len())
}

type fakeEntry struct {
	jetstream.KeyValueEntry
	key   string
	value []byte
}

func (e fakeEntry) Key() string   { return e.key }
func (e fakeEntry) Value() []byte { return e.value }

type fakeKV struct {
	data   map[string][]byte
	getErr error
}

func (f *fakeKV) Get(_ context.Context, key string) (jetstream.KeyValueEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	v, ok := f.data[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}

	return fakeEntry{key: key, value: v}, nil
}

func (f *fakeKV) Put(_ context.Context, key string, value []byte) (uint64, error) {
	f.data[key] = value

	return uint64(len(f.data)), nil
}

func TestNATSCacheRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	c := &NATSCache{kv: &fakeKV{data: map[string][]byte{}}}

	got, err := c.Get(ctx, "A")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Put(ctx, "A", sampleState()))

	got, err = c.Get(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sampleState(), *got)
}

func TestNATSCacheErrors(t *testing.T) {
	ctx := context.Background()

	errDown := errors.New("nats down")

	c := &NATSCache{kv: &fakeKV{getErr: errDown}}

	_, err := c.Get(ctx, "A")
	require.ErrorIs(t, err, errDown)

	c = &NATSCache{kv: &fakeKV{data: map[string][]byte{"A": []byte("{not json")}}}

	_, err = c.Get(ctx, "A")
	require.Error(t, err)
}
