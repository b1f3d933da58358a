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

package natsutil

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/carverauto/pnoderadar/pkg/config"
	"github.com/carverauto/pnoderadar/pkg/models"
)

var (
	// ErrTLSFilesRequired is returned when the security block lacks cert material.
	ErrTLSFilesRequired = errors.New("nats tls requires cert_file, key_file, and ca_file")
	// ErrCAParsingFailed is returned when CA certificate cannot be parsed
	ErrCAParsingFailed = errors.New("failed to parse CA certificate")
)

// TLSConfig builds a tls.Config for connecting to NATS using mTLS. Relative
// paths in sec are resolved against sec.CertDir in place.
func TLSConfig(sec *models.SecurityConfig) (*tls.Config, error) {
	if sec == nil {
		return nil, ErrTLSFilesRequired
	}

	config.NormalizeTLSPaths(&sec.TLS, sec.CertDir)

	if sec.TLS.CertFile == "" || sec.TLS.KeyFile == "" || sec.TLS.CAFile == "" {
		return nil, ErrTLSFilesRequired
	}

	cert, err := tls.LoadX509KeyPair(sec.TLS.CertFile, sec.TLS.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load client certificate: %w", err)
	}

	caCert, err := os.ReadFile(sec.TLS.CAFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}

	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, ErrCAParsingFailed
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      caPool,
		ServerName:   sec.ServerName,
		MinVersion:   tls.VersionTLS13,
	}, nil
}
