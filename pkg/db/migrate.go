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
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/carverauto/pnoderadar/pkg/logger"
)

const migrationsTable = "pnoderadar_schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies every embedded .up.sql file that has not been recorded
// in the tracking table, in filename order.
func RunMigrations(ctx context.Context, pool pgxPool, log logger.Logger) error {
	if pool == nil {
		return nil
	}

	if _, err := pool.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		version     TEXT PRIMARY KEY,
		applied_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, migrationsTable)); err != nil {
		return fmt.Errorf("migrations: create tracking table: %w", err)
	}

	applied, err := appliedVersions(ctx, pool)
	if err != nil {
		return err
	}

	names, err := pendingMigrations(applied)
	if err != nil {
		return err
	}

	for _, name := range names {
		log.Info().Str("migration", name).Msg("applying migration")

		content, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("migrations: read %s: %w", name, err)
		}

		for idx, stmt := range splitSQLStatements(string(content)) {
			if _, err := pool.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migrations: statement %d in %s failed: %w", idx+1, name, err)
			}
		}

		if _, err := pool.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (version) VALUES ($1)`, migrationsTable),
			extractVersion(name)); err != nil {
			return fmt.Errorf("migrations: record %s: %w", name, err)
		}
	}

	return nil
}

func appliedVersions(ctx context.Context, pool pgxPool) (map[string]struct{}, error) {
	rows, err := pool.Query(ctx, fmt.Sprintf(`SELECT version FROM %s`, migrationsTable))
	if err != nil {
		return nil, fmt.Errorf("migrations: list applied versions: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]struct{})

	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("migrations: scan applied version: %w", err)
		}

		applied[version] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("migrations: iterate applied versions: %w", err)
	}

	return applied, nil
}

func pendingMigrations(applied map[string]struct{}) ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrations: read embedded migrations: %w", err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		if _, ok := applied[extractVersion(entry.Name())]; ok {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)

	return names, nil
}

// splitSQLStatements splits a migration on top-level semicolons. Quoted text
// and -- comments are respected; the schema does not use dollar quoting.
func splitSQLStatements(content string) []string {
	var (
		statements []string
		current    strings.Builder
		inQuote    bool
		inComment  bool
	)

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}

		current.Reset()
	}

	for i := 0; i < len(content); i++ {
		ch := content[i]

		switch {
		case inComment:
			if ch == '\n' {
				inComment = false
				current.WriteByte(ch)
			}
		case !inQuote && ch == '-' && i+1 < len(content) && content[i+1] == '-':
			inComment = true
			i++
		case ch == '\'':
			inQuote = !inQuote
			current.WriteByte(ch)
		case ch == ';' && !inQuote:
			flush()
		default:
			current.WriteByte(ch)
		}
	}

	flush()

	return statements
}

func extractVersion(filename string) string {
	version, _, _ := strings.Cut(filename, "_")

	return version
}
