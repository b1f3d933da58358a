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
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
)

const (
	defaultPostgresPort = 5432
	sslModeDisable      = "disable"
	sslModeVerifyFull   = "verify-full"
)

// NewPostgresPool dials the configured Postgres/Timescale cluster.
func NewPostgresPool(ctx context.Context, cfg *models.PostgresConfig, log logger.Logger) (*pgxpool.Pool, error) {
	if cfg == nil {
		return nil, ErrPostgresConfigNil
	}

	connURL, err := buildPostgresConnURL(cfg)
	if err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(connURL.String())
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to parse connection string: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}

	if cfg.MinConnections > 0 {
		poolConfig.MinConns = cfg.MinConnections
	}

	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime)
	}

	if cfg.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = time.Duration(cfg.HealthCheckPeriod)
	}

	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = make(map[string]string)
	}

	for k, v := range cfg.ExtraRuntimeParams {
		if k == "" || strings.EqualFold(k, "sslmode") {
			continue
		}

		poolConfig.ConnConfig.RuntimeParams[k] = v
	}

	if cfg.StatementTimeout > 0 {
		ms := time.Duration(cfg.StatementTimeout).Milliseconds()
		poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(ms, 10)
	}

	tlsConfig, err := buildPostgresTLSConfig(cfg)
	if err != nil {
		return nil, err
	}

	if tlsConfig != nil {
		poolConfig.ConnConfig.TLSConfig = tlsConfig
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	if log != nil {
		log.Info().
			Str("host", cfg.Host).
			Int("port", connPort(cfg)).
			Int32("max_conns", poolConfig.MaxConns).
			Msg("connected to postgres")
	}

	return pool, nil
}

func connPort(cfg *models.PostgresConfig) int {
	if cfg.Port == 0 {
		return defaultPostgresPort
	}

	return cfg.Port
}

func buildPostgresConnURL(cfg *models.PostgresConfig) (*url.URL, error) {
	connURL := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", cfg.Host, connPort(cfg)),
		Path:   "/" + cfg.Database,
	}

	if cfg.Username != "" {
		if cfg.Password != "" {
			connURL.User = url.UserPassword(cfg.Username, cfg.Password)
		} else {
			connURL.User = url.User(cfg.Username)
		}
	}

	sslMode, err := resolveSSLMode(cfg)
	if err != nil {
		return nil, err
	}

	query := connURL.Query()
	query.Set("sslmode", sslMode)

	if cfg.ApplicationName != "" {
		query.Set("application_name", cfg.ApplicationName)
	}

	if cfg.TLS != nil {
		if p := resolveCertPath(cfg.CertDir, cfg.TLS.CertFile); p != "" {
			query.Set("sslcert", p)
		}

		if p := resolveCertPath(cfg.CertDir, cfg.TLS.KeyFile); p != "" {
			query.Set("sslkey", p)
		}

		if p := resolveCertPath(cfg.CertDir, cfg.TLS.CAFile); p != "" {
			query.Set("sslrootcert", p)
		}
	}

	connURL.RawQuery = query.Encode()

	return connURL, nil
}

// resolveSSLMode prefers the explicit field, then a sslmode runtime param, then
// a default that depends on whether TLS material is configured.
func resolveSSLMode(cfg *models.PostgresConfig) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.SSLMode))

	if mode == "" {
		for k, v := range cfg.ExtraRuntimeParams {
			if strings.EqualFold(k, "sslmode") {
				mode = strings.ToLower(strings.TrimSpace(v))
				break
			}
		}
	}

	if mode == "" {
		if cfg.TLS != nil {
			return sslModeVerifyFull, nil
		}

		return sslModeDisable, nil
	}

	if mode == sslModeDisable && cfg.TLS != nil {
		return "", ErrPostgresTLSDisabled
	}

	return mode, nil
}

func resolveCertPath(certDir, path string) string {
	if path == "" || filepath.IsAbs(path) || certDir == "" {
		return path
	}

	return filepath.Join(certDir, path)
}

func buildPostgresTLSConfig(cfg *models.PostgresConfig) (*tls.Config, error) {
	if cfg.TLS == nil {
		return nil, nil
	}

	certFile := resolveCertPath(cfg.CertDir, cfg.TLS.CertFile)
	keyFile := resolveCertPath(cfg.CertDir, cfg.TLS.KeyFile)
	caFile := resolveCertPath(cfg.CertDir, cfg.TLS.CAFile)

	if certFile == "" || keyFile == "" || caFile == "" {
		return nil, ErrPostgresLackingTLSFile
	}

	clientCert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("postgres tls: failed to load client keypair: %w", err)
	}

	caBytes, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("postgres tls: failed to read CA file: %w", err)
	}

	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caBytes) {
		return nil, ErrPostgresAppendCACert
	}

	return &tls.Config{
		Certificates: []tls.Certificate{clientCert},
		RootCAs:      caPool,
		MinVersion:   tls.VersionTLS12,
		ServerName:   cfg.Host,
	}, nil
}
