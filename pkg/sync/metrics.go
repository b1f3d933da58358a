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

package sync

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/carverauto/pnoderadar/pkg/models"
)

const metricsNamespace = "pnoderadar"

// Metrics defines the interface for collecting sync service metrics
type Metrics interface {
	RecordCycleStart()
	RecordCycleSuccess(processed int, duration time.Duration)
	RecordCycleFailure(duration time.Duration)
	RecordCycleSkipped()
	RecordDiscovery(count int, duration time.Duration)
	RecordEnrichment(attempted, enriched int)
	RecordEvents(detected, stored int)
	RecordSnapshot(snapshot *models.NetworkSnapshot)
	RecordProviders(count int)
}

// NoOpMetrics provides a no-op implementation of the Metrics interface
type NoOpMetrics struct{}

func (NoOpMetrics) RecordCycleStart()                      {}
func (NoOpMetrics) RecordCycleSuccess(int, time.Duration)  {}
func (NoOpMetrics) RecordCycleFailure(time.Duration)       {}
func (NoOpMetrics) RecordCycleSkipped()                    {}
func (NoOpMetrics) RecordDiscovery(int, time.Duration)     {}
func (NoOpMetrics) RecordEnrichment(int, int)              {}
func (NoOpMetrics) RecordEvents(int, int)                  {}
func (NoOpMetrics) RecordSnapshot(*models.NetworkSnapshot) {}
func (NoOpMetrics) RecordProviders(int)                    {}

// PrometheusMetrics exports cycle and network metrics to a Prometheus registry.
type PrometheusMetrics struct {
	cyclesInFlight   prometheus.Gauge
	cycles           *prometheus.CounterVec
	cycleDuration    prometheus.Histogram
	lastProcessed    prometheus.Gauge
	discovered       prometheus.Gauge
	discoverDuration prometheus.Histogram
	statsAttempted   prometheus.Counter
	statsSucceeded   prometheus.Counter
	eventsDetected   prometheus.Counter
	eventsStored     prometheus.Counter
	networkNodes     *prometheus.GaugeVec
	healthScore      prometheus.Gauge
	storageCommitted prometheus.Gauge
	storageUsed      prometheus.Gauge
	providers        prometheus.Gauge
}

// NewPrometheusMetrics registers the sync collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	f := promauto.With(reg)

	return &PrometheusMetrics{
		cyclesInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "sync", Name: "cycles_in_flight",
			Help: "Sync cycles currently running.",
		}),
		cycles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "sync", Name: "cycles_total",
			Help: "Sync cycles by result.",
		}, []string{"result"}),
		cycleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace, Subsystem: "sync", Name: "cycle_duration_seconds",
			Help:    "Wall time of completed sync cycles.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		lastProcessed: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "sync", Name: "last_processed_nodes",
			Help: "Nodes processed by the last successful cycle.",
		}),
		discovered: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "discovery", Name: "roster_size",
			Help: "Nodes returned by the last discovery.",
		}),
		discoverDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace, Subsystem: "discovery", Name: "duration_seconds",
			Help:    "Time spent discovering the roster.",
			Buckets: prometheus.DefBuckets,
		}),
		statsAttempted: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "enrich", Name: "stats_attempts_total",
			Help: "get-stats calls issued.",
		}),
		statsSucceeded: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "enrich", Name: "stats_success_total",
			Help: "get-stats calls that returned stats.",
		}),
		eventsDetected: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "events", Name: "detected_total",
			Help: "Events produced by the state diff.",
		}),
		eventsStored: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Subsystem: "events", Name: "stored_total",
			Help: "Events written to the store.",
		}),
		networkNodes: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "network", Name: "nodes",
			Help: "Nodes in the last snapshot by status.",
		}, []string{"status"}),
		healthScore: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "network", Name: "health_score",
			Help: "Composite network health score (0-100).",
		}),
		storageCommitted: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "network", Name: "storage_committed_bytes",
			Help: "Total committed storage in the last snapshot.",
		}),
		storageUsed: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "network", Name: "storage_used_bytes",
			Help: "Total used storage in the last snapshot.",
		}),
		providers: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Subsystem: "network", Name: "providers",
			Help: "Providers in the last cycle.",
		}),
	}
}

func (m *PrometheusMetrics) RecordCycleStart() {
	m.cyclesInFlight.Inc()
}

func (m *PrometheusMetrics) RecordCycleSuccess(processed int, duration time.Duration) {
	m.cyclesInFlight.Dec()
	m.cycles.WithLabelValues("success").Inc()
	m.cycleDuration.Observe(duration.Seconds())
	m.lastProcessed.Set(float64(processed))
}

func (m *PrometheusMetrics) RecordCycleFailure(duration time.Duration) {
	m.cyclesInFlight.Dec()
	m.cycles.WithLabelValues("error").Inc()
	m.cycleDuration.Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordCycleSkipped() {
	m.cycles.WithLabelValues("skipped").Inc()
}

func (m *PrometheusMetrics) RecordDiscovery(count int, duration time.Duration) {
	m.discovered.Set(float64(count))
	m.discoverDuration.Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordEnrichment(attempted, enriched int) {
	m.statsAttempted.Add(float64(attempted))
	m.statsSucceeded.Add(float64(enriched))
}

func (m *PrometheusMetrics) RecordEvents(detected, stored int) {
	m.eventsDetected.Add(float64(detected))
	m.eventsStored.Add(float64(stored))
}

func (m *PrometheusMetrics) RecordSnapshot(s *models.NetworkSnapshot) {
	if s == nil {
		return
	}

	m.networkNodes.WithLabelValues(string(models.NodeStatusOnline)).Set(float64(s.Nodes.Online))
	m.networkNodes.WithLabelValues(string(models.NodeStatusOffline)).Set(float64(s.Nodes.Offline))
	m.networkNodes.WithLabelValues(string(models.NodeStatusDegraded)).Set(float64(s.Nodes.Degraded))
	m.healthScore.Set(s.Health.Score)
	m.storageCommitted.Set(float64(s.Storage.TotalCommitted))
	m.storageUsed.Set(float64(s.Storage.TotalUsed))
}

func (m *PrometheusMetrics) RecordProviders(count int) {
	m.providers.Set(float64(count))
}
