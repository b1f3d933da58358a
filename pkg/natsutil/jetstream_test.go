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
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
)

func runJetStreamServer(t *testing.T) *server.Server {
	t.Helper()

	opts := &server.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
	}

	srv, err := server.NewServer(opts)
	require.NoError(t, err)

	go srv.Start()

	if !srv.ReadyForConnections(10 * time.Second) {
		srv.Shutdown()
		t.Fatalf("embedded NATS server not ready for connections")
	}

	require.Eventually(t, func() bool {
		return srv.JetStreamEnabled()
	}, 5*time.Second, 50*time.Millisecond, "embedded NATS server not ready for JetStream")

	t.Cleanup(srv.Shutdown)

	return srv
}

func TestEventPublisherAgainstJetStream(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping embedded NATS test in short mode")
	}

	srv := runJetStreamServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log := logger.NewTestLogger()

	nc, err := ConnectWithSecurity(srv.ClientURL(), nil, log, nats.Name("natsutil-test"))
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	cfg := &models.NATSConfig{URL: srv.ClientURL()}
	require.NoError(t, cfg.Validate())

	pub, js, err := CreateEventPublisher(ctx, nc, cfg, log)
	require.NoError(t, err)

	ev := &models.Event{
		EventID:   "ev-1",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Category:  models.EventCategoryStorage,
		Type:      models.EventCapacityAdded,
		Severity:  models.SeverityInfo,
		NodeID:    "node-a",
	}

	require.NoError(t, pub.PublishEvent(ctx, ev))
	require.NoError(t, pub.PublishEvent(ctx, ev), "duplicate publish is acknowledged")

	stream, err := js.Stream(ctx, cfg.StreamName)
	require.NoError(t, err)

	info, err := stream.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), info.State.Msgs, "message id deduplicates the retry")

	msg, err := stream.GetLastMsgForSubject(ctx, "events.pnode.storage")
	require.NoError(t, err)

	var ce models.CloudEvent
	require.NoError(t, json.Unmarshal(msg.Data, &ce))
	assert.Equal(t, "ev-1", ce.ID)
	assert.Equal(t, "com.carverauto.pnoderadar.pnode.capacity_added", ce.Type)
}

func TestEnsureStreamWidensExistingSubjects(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping embedded NATS test in short mode")
	}

	srv := runJetStreamServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	nc, err := nats.Connect(srv.ClientURL())
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	js, err := NewJetStream(nc, "")
	require.NoError(t, err)

	_, err = js.CreateStream(ctx, jetstream.StreamConfig{Name: "events", Subjects: []string{"events.other.>"}})
	require.NoError(t, err)

	require.NoError(t, EnsureStream(ctx, js, "events"))
	require.NoError(t, EnsureStream(ctx, js, "events"))

	stream, err := js.Stream(ctx, "events")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"events.other.>", StreamSubjects}, stream.CachedInfo().Config.Subjects)
}
