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
	"encoding/json"
	"fmt"
	"time"

	"github.com/carverauto/pnoderadar/pkg/models"
)

func marshalJSON(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json: %w", err)
	}

	return b, nil
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}

	return t.UTC()
}

func buildNodeArgs(n *models.NodeRecord, now time.Time) ([]interface{}, error) {
	if n == nil {
		return nil, ErrNilRecord
	}

	if n.NodeID == "" {
		return nil, ErrNodeIDRequired
	}

	metrics, err := marshalJSON(n.CurrentMetrics)
	if err != nil {
		return nil, err
	}

	return []interface{}{
		n.NodeID,
		n.Address,
		n.IP,
		n.Port,
		n.IsPublic,
		n.RPCPort,
		string(n.Status),
		n.Version,
		n.Country,
		n.City,
		n.FirstSeen.UTC(),
		n.LastSeen.UTC(),
		metrics,
		now.UTC(),
	}, nil
}

func buildSampleArgs(s *models.MetricSample) ([]interface{}, error) {
	if s == nil {
		return nil, ErrNilRecord
	}

	if s.NodeID == "" {
		return nil, ErrNodeIDRequired
	}

	payload, err := marshalJSON(s)
	if err != nil {
		return nil, err
	}

	return []interface{}{
		s.NodeID,
		s.Timestamp.UTC(),
		string(s.Status),
		s.Storage.Committed,
		s.Storage.Used,
		s.Storage.UsagePercent,
		s.System.CPUPercent,
		s.System.RAMUsagePercent,
		s.System.UptimeSeconds,
		s.Network.PacketsReceived,
		s.Network.PacketsSent,
		s.Performance.LatencyMs,
		payload,
	}, nil
}

func buildEventArgs(e *models.Event) ([]interface{}, error) {
	if e == nil {
		return nil, ErrNilRecord
	}

	if e.EventID == "" {
		return nil, ErrEventIDRequired
	}

	details, err := marshalJSON(e.Details)
	if err != nil {
		return nil, err
	}

	return []interface{}{
		e.EventID,
		e.Timestamp.UTC(),
		string(e.Category),
		e.Type,
		string(e.Severity),
		e.NodeID,
		details,
	}, nil
}

func buildProviderArgs(p *models.Provider) ([]interface{}, error) {
	if p == nil {
		return nil, ErrNilRecord
	}

	if p.ProviderID == "" {
		return nil, ErrProviderIDRequired
	}

	metrics, err := marshalJSON(p.Metrics)
	if err != nil {
		return nil, err
	}

	return []interface{}{
		p.ProviderID,
		p.Name,
		p.Subnet,
		p.NodeCount,
		p.ActiveCount,
		metrics,
		p.UpdatedAt.UTC(),
	}, nil
}

func buildSnapshotArgs(s *models.NetworkSnapshot) ([]interface{}, error) {
	if s == nil {
		return nil, ErrNilRecord
	}

	payload, err := marshalJSON(s)
	if err != nil {
		return nil, err
	}

	return []interface{}{
		s.Timestamp.UTC(),
		s.Nodes.Total,
		s.Nodes.Online,
		s.Health.Score,
		payload,
	}, nil
}

func buildStatusArgs(s *models.SystemStatus) ([]interface{}, error) {
	if s == nil {
		return nil, ErrNilRecord
	}

	id := s.ID
	if id == "" {
		id = models.SystemStatusID
	}

	return []interface{}{
		id,
		string(s.SyncStatus),
		nullableTime(s.LastSyncTimestamp),
		s.LastErrorMessage,
		s.ConsecutiveFailures,
		s.LastProcessed,
		s.UpdatedAt.UTC(),
	}, nil
}
