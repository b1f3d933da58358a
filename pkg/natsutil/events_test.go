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

package natsutil

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
)

var errTestFixture = errors.New("test fixture error")

type fakePublisher struct {
	subject string
	payload []byte
	opts    int
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.subject = subject
	f.payload = payload
	f.opts = len(opts)

	return &jetstream.PubAck{Stream: "pnode-events", Sequence: 7}, nil
}

func TestPublishEvent(t *testing.T) {
	fake := &fakePublisher{}
	pub := newEventPublisher(fake, "pnode-events", logger.NewTestLogger())
	ts := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

	event := &models.Event{
		EventID:   "evt-1",
		Timestamp: ts,
		Category:  models.EventCategoryStorage,
		Type:      models.EventCapacityAdded,
		Severity:  models.SeverityInfo,
		NodeID:    "pk1",
		Details:   models.EventDetails{Message: "Committed storage increased by 1.00 GB"},
	}

	require.NoError(t, pub.PublishEvent(context.Background(), event))
	assert.Equal(t, "events.pnode.storage", fake.subject)
	assert.Equal(t, 1, fake.opts)

	var ce map[string]interface{}
	require.NoError(t, json.Unmarshal(fake.payload, &ce))
	assert.Equal(t, "1.0", ce["specversion"])
	assert.Equal(t, "evt-1", ce["id"])
	assert.Equal(t, "pnoderadar/sync", ce["source"])
	assert.Equal(t, "com.carverauto.pnoderadar.pnode.capacity_added", ce["type"])

	data, ok := ce["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "pk1", data["node_id"])
}

func TestPublishEventErrors(t *testing.T) {
	pub := newEventPublisher(&fakePublisher{err: errTestFixture}, "s", logger.NewTestLogger())

	err := pub.PublishEvent(context.Background(), &models.Event{EventID: "x", Category: models.EventCategoryNode})
	require.ErrorIs(t, err, errTestFixture)

	require.ErrorIs(t, pub.PublishEvent(context.Background(), nil), errNilEvent)
}

func TestEnsureSubjectList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		subjects []string
		want     []string
	}{
		{"adds subject when list empty", nil, []string{StreamSubjects}},
		{"keeps list when covered", []string{"events.>"}, []string{"events.>"}},
		{"keeps exact entry", []string{StreamSubjects}, []string{StreamSubjects}},
		{"appends when unmatched", []string{"logs.syslog.*"}, []string{"logs.syslog.*", StreamSubjects}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ensureSubjectList(append([]string(nil), tc.subjects...), StreamSubjects)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatchesSubject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pattern  string
		subject  string
		expected bool
	}{
		{"exact match", "events.pnode.node", "events.pnode.node", true},
		{"single wildcard", "events.*.node", "events.pnode.node", true},
		{"greater wildcard", "events.>", "events.pnode.node", true},
		{"greater needs a token", "events.pnode.>", "events.pnode", false},
		{"no match length", "events.*", "events.pnode.node", false},
		{"no match tokens", "logs.syslog.*", "events.pnode.node", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, matchesSubject(tc.pattern, tc.subject))
		})
	}
}

func TestIsStreamMissingErr(t *testing.T) {
	t.Parallel()

	assert.True(t, isStreamMissingErr(jetstream.ErrStreamNotFound))
	assert.True(t, isStreamMissingErr(nats.ErrNoResponders))
	assert.False(t, isStreamMissingErr(errTestFixture))
}

func TestTLSConfigRequiresFiles(t *testing.T) {
	t.Parallel()

	_, err := TLSConfig(nil)
	require.ErrorIs(t, err, ErrTLSFilesRequired)

	_, err = TLSConfig(&models.SecurityConfig{TLS: models.TLSConfig{CertFile: "c.pem"}})
	require.ErrorIs(t, err, ErrTLSFilesRequired)
}
