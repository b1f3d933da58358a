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

package models

import (
	"encoding/json"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Duration
		wantErr  bool
	}{
		{
			name:     "string duration",
			input:    `"5s"`,
			expected: Duration(5 * time.Second),
		},
		{
			name:     "numeric duration (nanoseconds)",
			input:    `5000000000`,
			expected: Duration(5 * time.Second),
		},
		{
			name:     "complex duration string",
			input:    `"1h30m45s"`,
			expected: Duration(1*time.Hour + 30*time.Minute + 45*time.Second),
		},
		{
			name:    "invalid duration string",
			input:   `"invalid"`,
			wantErr: true,
		},
		{
			name:    "invalid type",
			input:   `true`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}

				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if d != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, d)
			}
		})
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var cfg struct {
		Interval Duration `yaml:"interval"`
	}

	if err := yaml.Unmarshal([]byte("interval: 90s\n"), &cfg); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if time.Duration(cfg.Interval) != 90*time.Second {
		t.Errorf("Expected 90s, got %v", time.Duration(cfg.Interval))
	}
}

func TestStateOfCopiesDiffFields(t *testing.T) {
	cpu := 42.0
	rec := &NodeRecord{
		NodeID:  "node-a",
		Status:  NodeStatusOnline,
		Version: "0.8.0",
		CurrentMetrics: NodeMetrics{
			StorageCommitted:    100,
			StorageUsed:         25,
			StorageUsagePercent: 25,
			PacketsReceived:     7,
			PacketsSent:         9,
			CPUPercent:          &cpu,
		},
	}

	st := StateOf(rec)

	if st.StorageCommitted != 100 || st.StorageUsed != 25 || st.Version != "0.8.0" {
		t.Fatalf("unexpected state %+v", st)
	}

	if st.CPUPercent == nil || *st.CPUPercent != 42 {
		t.Fatalf("expected cpu to be carried over, got %v", st.CPUPercent)
	}

	if st.RAMUsagePercent != nil {
		t.Fatalf("expected unknown ram to stay nil")
	}
}
