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

package stats

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func series(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}

	return out
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{name: "empty", values: nil, p: 0.95, want: 0},
		{name: "p95 of 1..20", values: series(20), p: 0.95, want: 20},
		{name: "p50 of 1..20 takes upper middle", values: series(20), p: 0.5, want: 11},
		{name: "p50 of odd series", values: []float64{3, 1, 2}, p: 0.5, want: 2},
		{name: "p100 clamps", values: series(5), p: 1, want: 5},
		{name: "p0", values: series(5), p: 0, want: 1},
		{name: "single", values: []float64{42}, p: 0.95, want: 42},
		{name: "unsorted input", values: []float64{9, 1, 5, 3, 7}, p: 0.95, want: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(tt.values, tt.p), 1e-9)
		})
	}
}

func TestPercentileDoesNotMutate(t *testing.T) {
	in := []float64{3, 1, 2}
	_ = Percentile(in, 0.5)

	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestMeanAndSum(t *testing.T) {
	assert.InDelta(t, 0, Mean(nil), 1e-9)
	assert.InDelta(t, 10.5, Mean(series(20)), 1e-9)
	assert.InDelta(t, 210, Sum(series(20)), 1e-9)
}

func TestCollectFiltersMissing(t *testing.T) {
	a, b := 10.0, 30.0
	in := []*float64{&a, nil, &b}

	got := Collect(in, func(v *float64) (float64, bool) {
		if v == nil {
			return 0, false
		}

		return *v, true
	})

	assert.Equal(t, []float64{10, 30}, got)
	assert.InDelta(t, 20, Mean(got), 1e-9)
}

func TestGroupBy(t *testing.T) {
	groups := GroupBy([]string{"a1", "b1", "a2", ""}, func(s string) (byte, bool) {
		if s == "" {
			return 0, false
		}

		return s[0], true
	})

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"a1", "a2"}, groups['a'])
	assert.Equal(t, []string{"b1"}, groups['b'])
}

func TestPercentileProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfN(rapid.Float64Range(-1e6, 1e6), 1, 200).Draw(t, "values")
		p := rapid.Float64Range(0, 1).Draw(t, "p")

		got := Percentile(values, p)

		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)

		if got < sorted[0] || got > sorted[len(sorted)-1] {
			t.Fatalf("percentile %v outside [%v, %v]", got, sorted[0], sorted[len(sorted)-1])
		}

		if Percentile(values, 1) != sorted[len(sorted)-1] {
			t.Fatalf("p100 must be the maximum")
		}

		if m := Mean(values); m < sorted[0]-1e-6 || m > sorted[len(sorted)-1]+1e-6 {
			t.Fatalf("mean %v outside range", m)
		}
	})
}
