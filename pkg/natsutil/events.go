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
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
)

const (
	// SubjectPrefix is prepended to the event category to form the subject.
	SubjectPrefix = "events.pnode."
	// StreamSubjects matches every pNode event subject.
	StreamSubjects = "events.pnode.>"

	eventSource = "pnoderadar/sync"
	typePrefix  = "com.carverauto.pnoderadar.pnode."
)

var errNilEvent = errors.New("event is nil")

// publisher is the subset of jetstream.JetStream used to publish.
type publisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// EventPublisher publishes pNode events as CloudEvents to NATS JetStream.
type EventPublisher struct {
	js     publisher
	stream string
	logger logger.Logger
}

// NewEventPublisher creates a new EventPublisher for the specified stream.
func NewEventPublisher(js jetstream.JetStream, streamName string, log logger.Logger) *EventPublisher {
	return newEventPublisher(js, streamName, log)
}

func newEventPublisher(js publisher, streamName string, log logger.Logger) *EventPublisher {
	return &EventPublisher{
		js:     js,
		stream: streamName,
		logger: log,
	}
}

// Subject returns the subject an event is published on.
func Subject(event *models.Event) string {
	return SubjectPrefix + string(event.Category)
}

// CloudEventOf wraps a pNode event in a CloudEvents v1.0 envelope.
func CloudEventOf(event *models.Event) models.CloudEvent {
	ts := event.Timestamp

	return models.CloudEvent{
		SpecVersion:     "1.0",
		ID:              event.EventID,
		Source:          eventSource,
		Type:            typePrefix + event.Type,
		DataContentType: "application/json",
		Subject:         Subject(event),
		Time:            &ts,
		Data:            event,
	}
}

// PublishEvent publishes one event. The event id doubles as the JetStream
// message id so redelivered publishes are deduplicated by the server.
func (p *EventPublisher) PublishEvent(ctx context.Context, event *models.Event) error {
	if event == nil {
		return errNilEvent
	}

	ce := CloudEventOf(event)

	payload, err := json.Marshal(ce)
	if err != nil {
		return fmt.Errorf("failed to marshal pnode event: %w", err)
	}

	ack, err := p.js.Publish(ctx, ce.Subject, payload, jetstream.WithMsgID(event.EventID))
	if err != nil {
		return fmt.Errorf("failed to publish pnode event: %w", err)
	}

	if p.logger != nil {
		p.logger.Debug().
			Str("event_id", event.EventID).
			Str("subject", ce.Subject).
			Uint64("seq", ack.Sequence).
			Msg("Published event")
	}

	return nil
}

// ConnectWithSecurity creates a NATS connection, enabling mTLS when security is set.
func ConnectWithSecurity(natsURL string, security *models.SecurityConfig, log logger.Logger, extraOpts ...nats.Option) (*nats.Conn, error) {
	var opts []nats.Option

	if security != nil {
		tlsConf, err := TLSConfig(security)
		if err != nil {
			return nil, fmt.Errorf("failed to build NATS TLS config: %w", err)
		}

		opts = append(opts, nats.Secure(tlsConf))
	}

	opts = append(opts,
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)

	opts = append(opts, extraOpts...)

	nc, err := nats.Connect(natsURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info().Str("url", nc.ConnectedUrl()).Msg("Connected to NATS")

	return nc, nil
}

// NewJetStream returns a JetStream context, scoped to domain when set.
func NewJetStream(nc *nats.Conn, domain string) (jetstream.JetStream, error) {
	if domain != "" {
		js, err := jetstream.NewWithDomain(nc, domain)
		if err != nil {
			return nil, fmt.Errorf("failed to create JetStream context with domain %s: %w", domain, err)
		}

		return js, nil
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return js, nil
}

// EnsureStream creates the event stream when it is missing, or widens the
// subjects of an existing stream so it captures pNode events.
func EnsureStream(ctx context.Context, js jetstream.JetStream, streamName string) error {
	stream, err := js.Stream(ctx, streamName)
	if err != nil {
		if !isStreamMissingErr(err) {
			return fmt.Errorf("failed to look up stream %s: %w", streamName, err)
		}

		if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: []string{StreamSubjects},
		}); err != nil {
			return fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}

		return nil
	}

	cfg := stream.CachedInfo().Config

	subjects := ensureSubjectList(cfg.Subjects, StreamSubjects)
	if len(subjects) == len(cfg.Subjects) {
		return nil
	}

	cfg.Subjects = subjects

	if _, err := js.UpdateStream(ctx, cfg); err != nil {
		return fmt.Errorf("failed to update stream %s subjects: %w", streamName, err)
	}

	return nil
}

func isStreamMissingErr(err error) bool {
	return errors.Is(err, jetstream.ErrStreamNotFound) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrStreamNotFound) ||
		errors.Is(err, nats.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrNoResponders)
}

// ensureSubjectList appends subject unless an existing pattern already covers it.
func ensureSubjectList(subjects []string, subject string) []string {
	for _, pattern := range subjects {
		if matchesSubject(pattern, subject) {
			return subjects
		}
	}

	return append(subjects, subject)
}

// matchesSubject reports whether a NATS subject pattern matches subject.
func matchesSubject(pattern, subject string) bool {
	pt := strings.Split(pattern, ".")
	st := strings.Split(subject, ".")

	for i, tok := range pt {
		if tok == ">" {
			return len(st) > i
		}

		if i >= len(st) {
			return false
		}

		if tok != "*" && tok != st[i] {
			return false
		}
	}

	return len(pt) == len(st)
}

// CreateEventPublisher ensures the stream exists on an open connection and
// returns a publisher bound to it.
func CreateEventPublisher(ctx context.Context, nc *nats.Conn, cfg *models.NATSConfig, log logger.Logger) (*EventPublisher, jetstream.JetStream, error) {
	js, err := NewJetStream(nc, cfg.Domain)
	if err != nil {
		return nil, nil, err
	}

	if err := EnsureStream(ctx, js, cfg.StreamName); err != nil {
		return nil, nil, err
	}

	log.Info().Str("stream", cfg.StreamName).Msg("NATS event stream ready")

	return NewEventPublisher(js, cfg.StreamName, log), js, nil
}
