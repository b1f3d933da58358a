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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/pnoderadar/pkg/models"
)

// DefaultBucket is the KV bucket used when none is configured.
const DefaultBucket = "pnode-state"

// keyValue is the subset of jetstream.KeyValue used by NATSCache.
type keyValue interface {
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(ctx context.Context, key string, value []byte) (uint64, error)
}

// NATSCache keeps previous states in a JetStream KeyValue bucket so they
// survive restarts. Values are JSON-encoded PreviousState documents.
type NATSCache struct {
	kv keyValue
}

var _ Cache = (*NATSCache)(nil)

// NewNATSCache creates or opens the bucket and returns a cache on top of it.
func NewNATSCache(ctx context.Context, js jetstream.JetStream, bucket string) (*NATSCache, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "previous-cycle pNode state",
		History:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create KV bucket %s: %w", bucket, err)
	}

	return &NATSCache{kv: kv}, nil
}

// Get implements Cache.
func (n *NATSCache) Get(ctx context.Context, nodeID string) (*models.PreviousState, error) {
	entry, err := n.kv.Get(ctx, nodeID)
	if errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get state for %s: %w", nodeID, err)
	}

	var state models.PreviousState
	if err := json.Unmarshal(entry.Value(), &state); err != nil {
		return nil, fmt.Errorf("failed to decode state for %s: %w", nodeID, err)
	}

	return &state, nil
}

// Put implements Cache.
func (n *NATSCache) Put(ctx context.Context, nodeID string, state models.PreviousState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state for %s: %w", nodeID, err)
	}

	if _, err := n.kv.Put(ctx, nodeID, data); err != nil {
		return fmt.Errorf("failed to put state for %s: %w", nodeID, err)
	}

	return nil
}
