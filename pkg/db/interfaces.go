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
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carverauto/pnoderadar/pkg/models"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/carverauto/pnoderadar/pkg/db Service

// Service is the persistence contract of the sync engine.
type Service interface {
	Close() error

	// Node operations.

	UpsertNode(ctx context.Context, node *models.NodeRecord) error
	GetNode(ctx context.Context, nodeID string) (*models.NodeRecord, error)
	ListNodes(ctx context.Context) ([]models.NodeRecord, error)

	// Time series.

	InsertMetricSample(ctx context.Context, sample *models.MetricSample) error
	GetNodeMetrics(ctx context.Context, nodeID string, limit int) ([]models.MetricSample, error)

	// Events.

	InsertEvent(ctx context.Context, event *models.Event) error
	ListEvents(ctx context.Context, limit int) ([]models.Event, error)
	ListNodeEvents(ctx context.Context, nodeID string, limit int) ([]models.Event, error)

	// Providers.

	UpsertProvider(ctx context.Context, provider *models.Provider) error
	ListProviders(ctx context.Context) ([]models.Provider, error)
	DeleteProvidersExcept(ctx context.Context, keep []string) (int64, error)

	// Snapshots.

	InsertSnapshot(ctx context.Context, snapshot *models.NetworkSnapshot) error
	LatestSnapshots(ctx context.Context, limit int) ([]models.NetworkSnapshot, error)

	// System status.

	GetStatus(ctx context.Context) (*models.SystemStatus, error)
	UpsertStatus(ctx context.Context, status *models.SystemStatus) error
	EnsureStatus(ctx context.Context, now time.Time) (*models.SystemStatus, error)
}

// Pruner deletes metric samples older than a cutoff.
type Pruner interface {
	PruneMetricSamples(ctx context.Context, olderThan time.Time) (int64, error)
}

// pgxPool is the subset of *pgxpool.Pool used by PostgresStore.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Close()
}

const (
	// DefaultListLimit applies when a caller passes a non-positive limit.
	DefaultListLimit = 100
	// MaxListLimit caps list queries.
	MaxListLimit = 1000
)

func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
