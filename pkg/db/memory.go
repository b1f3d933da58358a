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
	"sort"
	"sync"
	"time"

	"github.com/carverauto/pnoderadar/pkg/models"
)

// MemoryStore is an in-process Service used when no database is configured
// and by tests. Reads return copies so callers cannot mutate stored records.
type MemoryStore struct {
	mu        sync.RWMutex
	nodes     map[string]models.NodeRecord
	samples   map[string][]models.MetricSample
	events    []models.Event
	providers map[string]models.Provider
	snapshots []models.NetworkSnapshot
	status    *models.SystemStatus
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes:     make(map[string]models.NodeRecord),
		samples:   make(map[string][]models.MetricSample),
		providers: make(map[string]models.Provider),
	}
}

var (
	_ Service = (*MemoryStore)(nil)
	_ Pruner  = (*MemoryStore)(nil)
)

// Close implements Service.
func (*MemoryStore) Close() error { return nil }

// UpsertNode implements Service.
func (m *MemoryStore) UpsertNode(_ context.Context, node *models.NodeRecord) error {
	if node == nil {
		return ErrNilRecord
	}

	if node.NodeID == "" {
		return ErrNodeIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nodes[node.NodeID] = *node

	return nil
}

// GetNode implements Service.
func (m *MemoryStore) GetNode(_ context.Context, nodeID string) (*models.NodeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.nodes[nodeID]
	if !ok {
		return nil, ErrNodeNotFound
	}

	return &n, nil
}

// ListNodes implements Service. Nodes are ordered by id.
func (m *MemoryStore) ListNodes(_ context.Context) ([]models.NodeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.NodeRecord, 0, len(m.nodes))
	for _, n := range m.nodes {
		out = append(out, n)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })

	return out, nil
}

// InsertMetricSample implements Service.
func (m *MemoryStore) InsertMetricSample(_ context.Context, sample *models.MetricSample) error {
	if sample == nil {
		return ErrNilRecord
	}

	if sample.NodeID == "" {
		return ErrNodeIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.samples[sample.NodeID] = append(m.samples[sample.NodeID], *sample)

	return nil
}

// GetNodeMetrics implements Service, newest first.
func (m *MemoryStore) GetNodeMetrics(_ context.Context, nodeID string, limit int) ([]models.MetricSample, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	src := m.samples[nodeID]
	out := make([]models.MetricSample, len(src))
	copy(out, src)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })

	return truncate(out, normalizeLimit(limit)), nil
}

// InsertEvent implements Service.
func (m *MemoryStore) InsertEvent(_ context.Context, event *models.Event) error {
	if event == nil {
		return ErrNilRecord
	}

	if event.EventID == "" {
		return ErrEventIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, *event)

	return nil
}

// ListEvents implements Service, newest first.
func (m *MemoryStore) ListEvents(_ context.Context, limit int) ([]models.Event, error) {
	return m.filterEvents(func(*models.Event) bool { return true }, limit), nil
}

// ListNodeEvents implements Service, newest first.
func (m *MemoryStore) ListNodeEvents(_ context.Context, nodeID string, limit int) ([]models.Event, error) {
	return m.filterEvents(func(e *models.Event) bool { return e.NodeID == nodeID }, limit), nil
}

func (m *MemoryStore) filterEvents(keep func(*models.Event) bool, limit int) []models.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Event, 0)

	// walk backwards so equal timestamps keep insertion recency
	for i := len(m.events) - 1; i >= 0; i-- {
		if keep(&m.events[i]) {
			out = append(out, m.events[i])
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })

	return truncate(out, normalizeLimit(limit))
}

// UpsertProvider implements Service. Membership is replaced, not merged.
func (m *MemoryStore) UpsertProvider(_ context.Context, provider *models.Provider) error {
	if provider == nil {
		return ErrNilRecord
	}

	if provider.ProviderID == "" {
		return ErrProviderIDRequired
	}

	p := *provider
	p.NodeIDs = append([]string(nil), provider.NodeIDs...)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.providers[p.ProviderID] = p

	return nil
}

// ListProviders implements Service, ordered by provider id.
func (m *MemoryStore) ListProviders(_ context.Context) ([]models.Provider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Provider, 0, len(m.providers))
	for _, p := range m.providers {
		p.NodeIDs = append([]string(nil), p.NodeIDs...)
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ProviderID < out[j].ProviderID })

	return out, nil
}

// DeleteProvidersExcept implements Service.
func (m *MemoryStore) DeleteProvidersExcept(_ context.Context, keep []string) (int64, error) {
	kept := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		kept[id] = struct{}{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64

	for id := range m.providers {
		if _, ok := kept[id]; !ok {
			delete(m.providers, id)
			n++
		}
	}

	return n, nil
}

// InsertSnapshot implements Service.
func (m *MemoryStore) InsertSnapshot(_ context.Context, snapshot *models.NetworkSnapshot) error {
	if snapshot == nil {
		return ErrNilRecord
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots = append(m.snapshots, *snapshot)

	return nil
}

// LatestSnapshots implements Service, newest first.
func (m *MemoryStore) LatestSnapshots(_ context.Context, limit int) ([]models.NetworkSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.NetworkSnapshot, len(m.snapshots))
	copy(out, m.snapshots)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })

	return truncate(out, normalizeLimit(limit)), nil
}

// GetStatus implements Service.
func (m *MemoryStore) GetStatus(_ context.Context) (*models.SystemStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.status == nil {
		return nil, ErrStatusNotFound
	}

	s := *m.status

	return &s, nil
}

// UpsertStatus implements Service.
func (m *MemoryStore) UpsertStatus(_ context.Context, status *models.SystemStatus) error {
	if status == nil {
		return ErrNilRecord
	}

	s := *status

	m.mu.Lock()
	defer m.mu.Unlock()

	m.status = &s

	return nil
}

// EnsureStatus implements Service. An existing record is returned unchanged.
func (m *MemoryStore) EnsureStatus(_ context.Context, now time.Time) (*models.SystemStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status == nil {
		m.status = models.NewSystemStatus(now)
	}

	s := *m.status

	return &s, nil
}

// PruneMetricSamples implements Pruner.
func (m *MemoryStore) PruneMetricSamples(_ context.Context, olderThan time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64

	for id, samples := range m.samples {
		kept := samples[:0]

		for _, s := range samples {
			if s.Timestamp.Before(olderThan) {
				removed++
				continue
			}

			kept = append(kept, s)
		}

		m.samples[id] = kept
	}

	return removed, nil
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}

	return items
}
