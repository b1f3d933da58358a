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
	"context"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
)

// Store persists events so they can be queried later.
type Store interface {
	InsertEvent(ctx context.Context, event *models.Event) error
}

// Feed forwards events to the notification collaborator.
type Feed interface {
	PublishEvent(ctx context.Context, event *models.Event) error
}

// Publisher writes events to the store and the feed. It never fails: every
// error is logged and dropped so event handling cannot break a sync cycle.
type Publisher struct {
	store  Store
	feed   Feed
	logger logger.Logger
}

// NewPublisher creates a publisher. feed may be nil.
func NewPublisher(store Store, feed Feed, log logger.Logger) *Publisher {
	return &Publisher{store: store, feed: feed, logger: log}
}

// Publish persists and forwards each event, returning how many were stored.
func (p *Publisher) Publish(ctx context.Context, events []models.Event) int {
	stored := 0

	for i := range events {
		ev := &events[i]

		if err := p.store.InsertEvent(ctx, ev); err != nil {
			p.logger.Error().
				Err(err).
				Str("node_id", ev.NodeID).
				Str("event_type", ev.Type).
				Msg("Failed to store event")
		} else {
			stored++
		}

		if p.feed == nil {
			continue
		}

		if err := p.feed.PublishEvent(ctx, ev); err != nil {
			p.logger.Warn().
				Err(err).
				Str("node_id", ev.NodeID).
				Str("event_type", ev.Type).
				Msg("Failed to publish event")
		}
	}

	return stored
}
