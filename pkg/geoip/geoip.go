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

// Package geoip resolves node addresses to a country and city using a MaxMind
// GeoLite2/GeoIP2 City database.
package geoip

import (
	"errors"
	"fmt"
	"net"

	"github.com/oschwald/maxminddb-golang"

	"github.com/carverauto/pnoderadar/pkg/logger"
)

var errDatabasePathRequired = errors.New("geoip database path is required")

const defaultLanguage = "en"

// Location is the resolved place of an address. Empty fields mean unknown.
type Location struct {
	Country string
	City    string
}

type cityRecord struct {
	Country struct {
		ISOCode string            `maxminddb:"iso_code"`
		Names   map[string]string `maxminddb:"names"`
	} `maxminddb:"country"`
	City struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"city"`
}

type lookuper interface {
	Lookup(ip net.IP, result any) error
	Close() error
}

// Resolver looks addresses up in an open database. A nil *Resolver is valid
// and resolves nothing.
type Resolver struct {
	db     lookuper
	logger logger.Logger
}

// Open opens the database at path.
func Open(path string, log logger.Logger) (*Resolver, error) {
	if path == "" {
		return nil, errDatabasePathRequired
	}

	db, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database %s: %w", path, err)
	}

	log.Info().Str("path", path).Msg("Opened GeoIP database")

	return &Resolver{db: db, logger: log}, nil
}

// Lookup resolves ip. Unparseable addresses and misses yield an empty Location.
func (r *Resolver) Lookup(ip string) Location {
	if r == nil || r.db == nil {
		return Location{}
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return Location{}
	}

	var rec cityRecord
	if err := r.db.Lookup(parsed, &rec); err != nil {
		r.logger.Debug().Err(err).Str("ip", ip).Msg("GeoIP lookup failed")
		return Location{}
	}

	country := rec.Country.Names[defaultLanguage]
	if country == "" {
		country = rec.Country.ISOCode
	}

	return Location{
		Country: country,
		City:    rec.City.Names[defaultLanguage],
	}
}

// Close releases the database.
func (r *Resolver) Close() error {
	if r == nil || r.db == nil {
		return nil
	}

	return r.db.Close()
}
