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

// Package stats provides the small set of descriptive statistics used by the
// network aggregator and provider clustering.
//
// Percentiles use the floor rank on an ascending sort: the value at index
// floor(n*p), clamped to n-1. There is no interpolation, and Median is the same
// rule at p = 0.5, so for even-length series it returns the upper middle value.
package stats

import (
	"math"
	"sort"
)

// Percentile returns the floor-rank percentile of values for p in [0,1].
// An empty series yields 0. The input slice is not modified.
func Percentile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return sorted[rankIndex(n, p)]
}

func rankIndex(n int, p float64) int {
	switch {
	case math.IsNaN(p) || p <= 0:
		return 0
	case p >= 1:
		return n - 1
	}

	idx := int(math.Floor(float64(n) * p))
	if idx > n-1 {
		idx = n - 1
	}

	return idx
}

// Median is Percentile(values, 0.5).
func Median(values []float64) float64 {
	return Percentile(values, 0.5)
}

// Mean returns the arithmetic mean, or 0 for an empty series.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return Sum(values) / float64(len(values))
}

// Sum adds up values.
func Sum(values []float64) float64 {
	var total float64

	for _, v := range values {
		total += v
	}

	return total
}

// Collect maps items to a series, dropping items for which fn reports no value.
// It is how optional metrics (CPU, RAM, latency) are filtered before computing.
func Collect[T any](items []T, fn func(T) (float64, bool)) []float64 {
	out := make([]float64, 0, len(items))

	for _, item := range items {
		if v, ok := fn(item); ok {
			out = append(out, v)
		}
	}

	return out
}

// GroupBy buckets items by key while preserving input order inside each bucket.
// Items for which key reports false are left out.
func GroupBy[T any, K comparable](items []T, key func(T) (K, bool)) map[K][]T {
	groups := make(map[K][]T)

	for _, item := range items {
		k, ok := key(item)
		if !ok {
			continue
		}

		groups[k] = append(groups[k], item)
	}

	return groups
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
