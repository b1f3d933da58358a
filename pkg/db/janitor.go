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
	"sync"
	"time"

	"github.com/carverauto/pnoderadar/pkg/logger"
)

// Janitor periodically prunes metric samples older than a retention window.
type Janitor struct {
	pruner    Pruner
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	logger    logger.Logger

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewJanitor returns a janitor. A non-positive interval or retention disables pruning.
func NewJanitor(pruner Pruner, interval, retention time.Duration, log logger.Logger) *Janitor {
	return &Janitor{
		pruner:    pruner,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		logger:    log,
		done:      make(chan struct{}),
	}
}

// PruneOnce deletes samples older than now minus the retention window.
func (j *Janitor) PruneOnce(ctx context.Context) (int64, error) {
	cutoff := j.now().Add(-j.retention)

	n, err := j.pruner.PruneMetricSamples(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		j.logger.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("Pruned metric samples")
	}

	return n, nil
}

// Start runs the prune loop in the background until ctx ends or Stop is called.
func (j *Janitor) Start(ctx context.Context) {
	if j.pruner == nil || j.interval <= 0 || j.retention <= 0 {
		j.logger.Debug().Msg("Metric sample pruning disabled")
		return
	}

	j.wg.Add(1)

	go func() {
		defer j.wg.Done()

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-j.done:
				return
			case <-ticker.C:
				if _, err := j.PruneOnce(ctx); err != nil {
					j.logger.Warn().Err(err).Msg("Metric sample pruning failed")
				}
			}
		}
	}()
}

// Stop ends the prune loop and waits for it to exit.
func (j *Janitor) Stop() {
	j.closeOnce.Do(func() { close(j.done) })
	j.wg.Wait()
}
