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

// Package statecache stores the per-node state of the previous sync cycle,
// which the event detector diffs against.
package statecache

import (
	"context"
	"sync"

	"github.com/carverauto/pnoderadar/pkg/models"
)

// Cache holds one PreviousState per node id. Get returns nil, nil for a node
// that has not been seen. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, nodeID string) (*models.PreviousState, error)
	Put(ctx context.Context, nodeID string, state models.PreviousState) error
}

// MemoryCache is a process-local Cache. Its contents are lost on restart, so
// every node looks new to the first cycle after startup.
type MemoryCache struct {
	mu     sync.RWMutex
	states map[string]models.PreviousState
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{states: make(map[string]models.PreviousState)}
}

var _ Cache = (*MemoryCache)(nil)

// Get implements Cache.
func (m *MemoryCache) Get(_ context.Context, nodeID string) (*models.PreviousState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[nodeID]
	if !ok {
		return nil, nil
	}

	return &state, nil
}

// Put implements Cache.
func (m *MemoryCache) Put(_ context.Context, nodeID string, state models.PreviousState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[nodeID] = state

	return nil
}

// Len returns the number of cached nodes.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.states)
}
