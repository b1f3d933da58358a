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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
)

var errBoom = errors.New("boom")

type fakeStore struct {
	failOn string
	stored []string
}

func (f *fakeStore) InsertEvent(_ context.Context, ev *models.Event) error {
	if ev.Type == f.failOn {
		return errBoom
	}

	f.stored = append(f.stored, ev.Type)

	return nil
}

type fakeFeed struct {
	published []string
	err       error
}

func (f *fakeFeed) PublishEvent(_ context.Context, ev *models.Event) error {
	f.published = append(f.published, ev.Type)

	return f.err
}

func TestPublishSwallowsFailures(t *testing.T) {
	store := &fakeStore{failOn: models.EventHighCPU}
	feed := &fakeFeed{err: errBoom}

	evs := []models.Event{
		{Type: models.EventVersionUpgraded},
		{Type: models.EventHighCPU},
		{Type: models.EventStorageFull},
	}

	n := NewPublisher(store, feed, logger.NewTestLogger()).Publish(context.Background(), evs)

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{models.EventVersionUpgraded, models.EventStorageFull}, store.stored)
	assert.Len(t, feed.published, 3)
}

func TestPublishWithoutFeed(t *testing.T) {
	store := &fakeStore{}

	n := NewPublisher(store, nil, logger.NewTestLogger()).
		Publish(context.Background(), []models.Event{{Type: models.EventNodeJoined}})

	assert.Equal(t, 1, n)
}
