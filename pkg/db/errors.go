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

import "errors"

var (
	ErrFailedOpenDB   = errors.New("failed to open database")
	ErrFailedToQuery  = errors.New("failed to query")
	ErrFailedToScan   = errors.New("failed to scan")
	ErrFailedToInsert = errors.New("failed to insert")

	ErrNodeNotFound   = errors.New("node not found")
	ErrStatusNotFound = errors.New("system status not found")

	ErrNodeIDRequired     = errors.New("node id is required")
	ErrProviderIDRequired = errors.New("provider id is required")
	ErrEventIDRequired    = errors.New("event id is required")
	ErrNilRecord          = errors.New("record is nil")

	ErrPostgresConfigNil      = errors.New("postgres config is nil")
	ErrPostgresTLSDisabled    = errors.New("postgres tls configured but sslmode is disable")
	ErrPostgresLackingTLSFile = errors.New("postgres tls requires cert_file, key_file, and ca_file")
	ErrPostgresAppendCACert   = errors.New("postgres tls: unable to append CA certificate")
)
