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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
)

const (
	upsertNodeSQL = `
INSERT INTO pnodes (
	node_id, address, ip, port, is_public, rpc_port, status, version,
	country, city, first_seen, last_seen, current_metrics, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (node_id) DO UPDATE SET
	address = EXCLUDED.address,
	ip = EXCLUDED.ip,
	port = EXCLUDED.port,
	is_public = EXCLUDED.is_public,
	rpc_port = EXCLUDED.rpc_port,
	status = EXCLUDED.status,
	version = EXCLUDED.version,
	country = EXCLUDED.country,
	city = EXCLUDED.city,
	first_seen = LEAST(pnodes.first_seen, EXCLUDED.first_seen),
	last_seen = EXCLUDED.last_seen,
	current_metrics = EXCLUDED.current_metrics,
	updated_at = EXCLUDED.updated_at`

	selectNodeColumns = `
SELECT node_id, address, ip, port, is_public, rpc_port, status, version,
	country, city, first_seen, last_seen, current_metrics
FROM pnodes`

	insertSampleSQL = `
INSERT INTO pnode_metric_samples (
	node_id, timestamp, status, storage_committed, storage_used,
	storage_usage_percent, cpu_percent, ram_usage_percent, uptime_seconds,
	packets_received, packets_sent, latency_ms, payload
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (node_id, timestamp) DO NOTHING`

	insertEventSQL = `
INSERT INTO pnode_events (
	event_id, timestamp, category, type, severity, node_id, details
) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (event_id) DO NOTHING`

	selectEventColumns = `
SELECT event_id, timestamp, category, type, severity, node_id, details
FROM pnode_events`

	upsertProviderSQL = `
INSERT INTO pnode_providers (
	provider_id, name, subnet, node_count, active_count, metrics, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (provider_id) DO UPDATE SET
	name = EXCLUDED.name,
	subnet = EXCLUDED.subnet,
	node_count = EXCLUDED.node_count,
	active_count = EXCLUDED.active_count,
	metrics = EXCLUDED.metrics,
	updated_at = EXCLUDED.updated_at`

	insertSnapshotSQL = `
INSERT INTO network_snapshots (
	timestamp, total_nodes, online_nodes, health_score, payload
) VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (timestamp) DO UPDATE SET
	total_nodes = EXCLUDED.total_nodes,
	online_nodes = EXCLUDED.online_nodes,
	health_score = EXCLUDED.health_score,
	payload = EXCLUDED.payload`

	upsertStatusSQL = `
INSERT INTO sync_status (
	id, sync_status, last_sync_timestamp, last_error_message,
	consecutive_failures, last_processed, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	sync_status = EXCLUDED.sync_status,
	last_sync_timestamp = EXCLUDED.last_sync_timestamp,
	last_error_message = EXCLUDED.last_error_message,
	consecutive_failures = EXCLUDED.consecutive_failures,
	last_processed = EXCLUDED.last_processed,
	updated_at = EXCLUDED.updated_at`

	selectStatusSQL = `
SELECT id, sync_status, last_sync_timestamp, last_error_message,
	consecutive_failures, last_processed, updated_at
FROM sync_status WHERE id = $1`
)

// PostgresStore persists sync output in Postgres/Timescale.
type PostgresStore struct {
	pool   pgxPool
	logger logger.Logger
	now    func() time.Time
}

var (
	_ Service = (*PostgresStore)(nil)
	_ Pruner  = (*PostgresStore)(nil)
)

// NewPostgresStore wraps an open pool. Callers usually pass the *pgxpool.Pool
// returned by NewPostgresPool.
func NewPostgresStore(pool pgxPool, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		pool:   pool,
		logger: log,
		now:    time.Now,
	}
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()

	return nil
}

// UpsertNode implements Service. first_seen never moves forward.
func (s *PostgresStore) UpsertNode(ctx context.Context, node *models.NodeRecord) error {
	args, err := buildNodeArgs(node, s.now())
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, upsertNodeSQL, args...); err != nil {
		return fmt.Errorf("%w node %s: %w", ErrFailedToInsert, node.NodeID, err)
	}

	return nil
}

// GetNode implements Service.
func (s *PostgresStore) GetNode(ctx context.Context, nodeID string) (*models.NodeRecord, error) {
	row := s.pool.QueryRow(ctx, selectNodeColumns+` WHERE node_id = $1`, nodeID)

	node, err := scanNode(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNodeNotFound
	}

	if err != nil {
		return nil, err
	}

	return node, nil
}

// ListNodes implements Service.
func (s *PostgresStore) ListNodes(ctx context.Context) ([]models.NodeRecord, error) {
	rows, err := s.pool.Query(ctx, selectNodeColumns+` ORDER BY node_id`)
	if err != nil {
		return nil, fmt.Errorf("%w nodes: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var out []models.NodeRecord

	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *node)
	}

	return out, rows.Err()
}

func scanNode(row pgx.Row) (*models.NodeRecord, error) {
	var (
		n       models.NodeRecord
		status  string
		metrics []byte
	)

	if err := row.Scan(
		&n.NodeID, &n.Address, &n.IP, &n.Port, &n.IsPublic, &n.RPCPort,
		&status, &n.Version, &n.Country, &n.City, &n.FirstSeen, &n.LastSeen, &metrics,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("%w node: %w", ErrFailedToScan, err)
	}

	n.Status = models.NodeStatus(status)

	if len(metrics) > 0 {
		if err := json.Unmarshal(metrics, &n.CurrentMetrics); err != nil {
			return nil, fmt.Errorf("%w node metrics: %w", ErrFailedToScan, err)
		}
	}

	return &n, nil
}

// InsertMetricSample implements Service.
func (s *PostgresStore) InsertMetricSample(ctx context.Context, sample *models.MetricSample) error {
	args, err := buildSampleArgs(sample)
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, insertSampleSQL, args...); err != nil {
		return fmt.Errorf("%w metric sample %s: %w", ErrFailedToInsert, sample.NodeID, err)
	}

	return nil
}

// GetNodeMetrics implements Service, newest first.
func (s *PostgresStore) GetNodeMetrics(ctx context.Context, nodeID string, limit int) ([]models.MetricSample, error) {
	rows, err := s.pool.Query(ctx, `
SELECT payload FROM pnode_metric_samples
WHERE node_id = $1
ORDER BY timestamp DESC
LIMIT $2`, nodeID, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%w metric samples: %w", ErrFailedToQuery, err)
	}

	return collectJSON[models.MetricSample](rows, "metric sample")
}

// PruneMetricSamples implements Pruner.
func (s *PostgresStore) PruneMetricSamples(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM pnode_metric_samples WHERE timestamp < $1`, olderThan.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune metric samples: %w", err)
	}

	return tag.RowsAffected(), nil
}

// InsertEvent implements Service. Duplicate event ids are ignored.
func (s *PostgresStore) InsertEvent(ctx context.Context, event *models.Event) error {
	args, err := buildEventArgs(event)
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, insertEventSQL, args...); err != nil {
		return fmt.Errorf("%w event %s: %w", ErrFailedToInsert, event.EventID, err)
	}

	return nil
}

// ListEvents implements Service, newest first.
func (s *PostgresStore) ListEvents(ctx context.Context, limit int) ([]models.Event, error) {
	rows, err := s.pool.Query(ctx, selectEventColumns+` ORDER BY timestamp DESC LIMIT $1`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%w events: %w", ErrFailedToQuery, err)
	}

	return scanEvents(rows)
}

// ListNodeEvents implements Service, newest first.
func (s *PostgresStore) ListNodeEvents(ctx context.Context, nodeID string, limit int) ([]models.Event, error) {
	rows, err := s.pool.Query(ctx,
		selectEventColumns+` WHERE node_id = $1 ORDER BY timestamp DESC LIMIT $2`,
		nodeID, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%w node events: %w", ErrFailedToQuery, err)
	}

	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]models.Event, error) {
	defer rows.Close()

	out := make([]models.Event, 0)

	for rows.Next() {
		var (
			e                  models.Event
			category, severity string
			details            []byte
		)

		if err := rows.Scan(&e.EventID, &e.Timestamp, &category, &e.Type, &severity, &e.NodeID, &details); err != nil {
			return nil, fmt.Errorf("%w event: %w", ErrFailedToScan, err)
		}

		e.Category = models.EventCategory(category)
		e.Severity = models.EventSeverity(severity)

		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, fmt.Errorf("%w event details: %w", ErrFailedToScan, err)
			}
		}

		out = append(out, e)
	}

	return out, rows.Err()
}

// UpsertProvider implements Service. The provider row and its membership are
// written in one batch; membership is replaced.
func (s *PostgresStore) UpsertProvider(ctx context.Context, provider *models.Provider) error {
	args, err := buildProviderArgs(provider)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	batch.Queue(upsertProviderSQL, args...)
	batch.Queue(`DELETE FROM pnode_provider_members WHERE provider_id = $1`, provider.ProviderID)

	for _, nodeID := range provider.NodeIDs {
		batch.Queue(`INSERT INTO pnode_provider_members (provider_id, node_id) VALUES ($1, $2)
ON CONFLICT DO NOTHING`, provider.ProviderID, nodeID)
	}

	return sendBatchExecAll(ctx, batch, s.pool.SendBatch, "upsert provider")
}

// DeleteProvidersExcept implements Service. Membership rows go with the
// provider through ON DELETE CASCADE.
func (s *PostgresStore) DeleteProvidersExcept(ctx context.Context, keep []string) (int64, error) {
	if keep == nil {
		keep = []string{}
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM pnode_providers WHERE NOT (provider_id = ANY($1))`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale providers: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListProviders implements Service.
func (s *PostgresStore) ListProviders(ctx context.Context) ([]models.Provider, error) {
	rows, err := s.pool.Query(ctx, `
SELECT p.provider_id, p.name, p.subnet, p.node_count, p.active_count, p.metrics, p.updated_at,
	COALESCE(array_agg(m.node_id ORDER BY m.node_id) FILTER (WHERE m.node_id IS NOT NULL), '{}')
FROM pnode_providers p
LEFT JOIN pnode_provider_members m ON m.provider_id = p.provider_id
GROUP BY p.provider_id
ORDER BY p.provider_id`)
	if err != nil {
		return nil, fmt.Errorf("%w providers: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	out := make([]models.Provider, 0)

	for rows.Next() {
		var (
			p       models.Provider
			metrics []byte
		)

		if err := rows.Scan(&p.ProviderID, &p.Name, &p.Subnet, &p.NodeCount, &p.ActiveCount,
			&metrics, &p.UpdatedAt, &p.NodeIDs); err != nil {
			return nil, fmt.Errorf("%w provider: %w", ErrFailedToScan, err)
		}

		if len(metrics) > 0 {
			if err := json.Unmarshal(metrics, &p.Metrics); err != nil {
				return nil, fmt.Errorf("%w provider metrics: %w", ErrFailedToScan, err)
			}
		}

		out = append(out, p)
	}

	return out, rows.Err()
}

// InsertSnapshot implements Service.
func (s *PostgresStore) InsertSnapshot(ctx context.Context, snapshot *models.NetworkSnapshot) error {
	args, err := buildSnapshotArgs(snapshot)
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, insertSnapshotSQL, args...); err != nil {
		return fmt.Errorf("%w snapshot: %w", ErrFailedToInsert, err)
	}

	return nil
}

// LatestSnapshots implements Service, newest first.
func (s *PostgresStore) LatestSnapshots(ctx context.Context, limit int) ([]models.NetworkSnapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT payload FROM network_snapshots ORDER BY timestamp DESC LIMIT $1`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%w snapshots: %w", ErrFailedToQuery, err)
	}

	return collectJSON[models.NetworkSnapshot](rows, "snapshot")
}

// collectJSON decodes a single JSONB column from every row.
func collectJSON[T any](rows pgx.Rows, what string) ([]T, error) {
	defer rows.Close()

	out := make([]T, 0)

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrFailedToScan, what, err)
		}

		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w %s payload: %w", ErrFailedToScan, what, err)
		}

		out = append(out, v)
	}

	return out, rows.Err()
}

// GetStatus implements Service.
func (s *PostgresStore) GetStatus(ctx context.Context) (*models.SystemStatus, error) {
	var (
		st       models.SystemStatus
		state    string
		lastSync *time.Time
	)

	err := s.pool.QueryRow(ctx, selectStatusSQL, models.SystemStatusID).Scan(
		&st.ID, &state, &lastSync, &st.LastErrorMessage,
		&st.ConsecutiveFailures, &st.LastProcessed, &st.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStatusNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w status: %w", ErrFailedToScan, err)
	}

	st.SyncStatus = models.SyncState(state)

	if lastSync != nil {
		st.LastSyncTimestamp = *lastSync
	}

	return &st, nil
}

// UpsertStatus implements Service.
func (s *PostgresStore) UpsertStatus(ctx context.Context, status *models.SystemStatus) error {
	args, err := buildStatusArgs(status)
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, upsertStatusSQL, args...); err != nil {
		return fmt.Errorf("%w status: %w", ErrFailedToInsert, err)
	}

	return nil
}

// EnsureStatus implements Service. It creates the idle record on first start
// and otherwise returns what is stored.
func (s *PostgresStore) EnsureStatus(ctx context.Context, now time.Time) (*models.SystemStatus, error) {
	st, err := s.GetStatus(ctx)
	if err == nil {
		return st, nil
	}

	if !errors.Is(err, ErrStatusNotFound) {
		return nil, err
	}

	st = models.NewSystemStatus(now)
	if err := s.UpsertStatus(ctx, st); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info().Str("id", st.ID).Msg("initialized sync status record")
	}

	return st, nil
}
