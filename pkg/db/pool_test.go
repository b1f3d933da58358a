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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pnoderadar/pkg/models"
)

func TestBuildPostgresConnURL_DefaultsSSLModeDisable(t *testing.T) {
	t.Parallel()

	u, err := buildPostgresConnURL(&models.PostgresConfig{
		Host:            "pg",
		Database:        "pnodes",
		Username:        "sync",
		Password:        "secret",
		ApplicationName: "pnode-sync",
	})
	require.NoError(t, err)

	assert.Equal(t, "pg:5432", u.Host)
	assert.Equal(t, "/pnodes", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "pnode-sync", u.Query().Get("application_name"))

	pw, ok := u.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "secret", pw)
}

func TestBuildPostgresConnURL_TLS(t *testing.T) {
	t.Parallel()

	tlsCfg := &models.TLSConfig{CertFile: "client.crt", KeyFile: "client.key", CAFile: "/abs/ca.crt"}

	u, err := buildPostgresConnURL(&models.PostgresConfig{
		Host:     "pg",
		Port:     6432,
		Database: "pnodes",
		CertDir:  "/etc/pnoderadar/pg",
		TLS:      tlsCfg,
	})
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "verify-full", q.Get("sslmode"))
	assert.Equal(t, "/etc/pnoderadar/pg/client.crt", q.Get("sslcert"))
	assert.Equal(t, "/etc/pnoderadar/pg/client.key", q.Get("sslkey"))
	assert.Equal(t, "/abs/ca.crt", q.Get("sslrootcert"))

	_, err = buildPostgresConnURL(&models.PostgresConfig{Host: "pg", SSLMode: "disable", TLS: tlsCfg})
	require.ErrorIs(t, err, ErrPostgresTLSDisabled)
}

func TestResolveSSLMode_RuntimeParamsFallback(t *testing.T) {
	t.Parallel()

	got, err := resolveSSLMode(&models.PostgresConfig{
		ExtraRuntimeParams: map[string]string{"SSLMode": " Verify-CA "},
	})
	require.NoError(t, err)
	assert.Equal(t, "verify-ca", got)
}

func TestBuildPostgresTLSConfig_RequiresAllFiles(t *testing.T) {
	t.Parallel()

	cfg, err := buildPostgresTLSConfig(&models.PostgresConfig{})
	require.NoError(t, err)
	assert.Nil(t, cfg)

	_, err = buildPostgresTLSConfig(&models.PostgresConfig{TLS: &models.TLSConfig{CertFile: "a"}})
	require.ErrorIs(t, err, ErrPostgresLackingTLSFile)
}
