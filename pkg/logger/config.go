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

package logger

import (
	"os"
	"strings"
)

// EnvPrefix namespaces the logging variables read by DefaultConfig.
const EnvPrefix = "PNODERADAR_"

// DefaultConfig builds a Config from PNODERADAR_LOG_LEVEL, PNODERADAR_DEBUG,
// PNODERADAR_LOG_OUTPUT and PNODERADAR_LOG_TIME_FORMAT. The unprefixed
// LOG_LEVEL is still honoured so stock container environments keep working.
func DefaultConfig() *Config {
	return &Config{
		Level:      strings.ToLower(lookupEnv("LOG_LEVEL", "info")),
		Debug:      parseBool(lookupEnv("DEBUG", "")),
		Output:     strings.ToLower(lookupEnv("LOG_OUTPUT", "stdout")),
		TimeFormat: lookupEnv("LOG_TIME_FORMAT", ""),
	}
}

func lookupEnv(name, fallback string) string {
	if v := os.Getenv(EnvPrefix + name); v != "" {
		return v
	}

	if name == "LOG_LEVEL" {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}

	return fallback
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
