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

// TLSConfig holds certificate paths; relative paths resolve against CertDir.
type TLSConfig struct {
	CertFile     string `json:"cert_file" yaml:"cert_file"`
	KeyFile      string `json:"key_file" yaml:"key_file"`
	CAFile       string `json:"ca_file" yaml:"ca_file"`
	ClientCAFile string `json:"client_ca_file" yaml:"client_ca_file"`
}

// SecurityConfig holds common mTLS configuration for outbound connections.
type SecurityConfig struct {
	CertDir    string    `json:"cert_dir" yaml:"cert_dir"`
	ServerName string    `json:"server_name,omitempty" yaml:"server_name,omitempty"`
	TLS        TLSConfig `json:"tls" yaml:"tls"`
}

// PostgresConfig describes the Postgres/Timescale cluster used for persistence.
type PostgresConfig struct {
	Host               string            `json:"host" yaml:"host"`
	Port               int               `json:"port" yaml:"port"`
	Database           string            `json:"database" yaml:"database"`
	Username           string            `json:"username" yaml:"username"`
	Password           string            `json:"password" yaml:"password"`
	SSLMode            string            `json:"ssl_mode" yaml:"ssl_mode"`
	ApplicationName    string            `json:"application_name" yaml:"application_name"`
	MaxConnections     int32             `json:"max_connections" yaml:"max_connections"`
	MinConnections     int32             `json:"min_connections" yaml:"min_connections"`
	MaxConnLifetime    Duration          `json:"max_conn_lifetime" yaml:"max_conn_lifetime"`
	HealthCheckPeriod  Duration          `json:"health_check_period" yaml:"health_check_period"`
	StatementTimeout   Duration          `json:"statement_timeout" yaml:"statement_timeout"`
	SampleRetention    Duration          `json:"sample_retention" yaml:"sample_retention"`
	ExtraRuntimeParams map[string]string `json:"extra_runtime_params" yaml:"extra_runtime_params"`
	CertDir            string            `json:"cert_dir" yaml:"cert_dir"`
	TLS                *TLSConfig        `json:"tls,omitempty" yaml:"tls,omitempty"`
}
