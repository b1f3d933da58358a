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

// Package provider groups nodes that share a /24 IPv4 prefix into providers.
package provider

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/carverauto/pnoderadar/pkg/discovery"
	"github.com/carverauto/pnoderadar/pkg/models"
	"github.com/carverauto/pnoderadar/pkg/stats"
)

const (
	idPrefix  = "provider-"
	idHexSize = 16
)

// SubnetOf returns the "a.b.c" prefix of a node's IPv4 address. It prefers
// the parsed IP and falls back to the address field.
func SubnetOf(n *models.NodeRecord) (string, bool) {
	host := n.IP
	if host == "" {
		h, _, err := discovery.SplitAddress(n.Address)
		if err != nil {
			return "", false
		}

		host = h
	}

	ip := net.ParseIP(host).To4()
	if ip == nil {
		return "", false
	}

	octets := strings.Split(ip.String(), ".")

	return strings.Join(octets[:3], "."), true
}

// ID derives the stable provider id of a subnet.
func ID(subnet string) string {
	sum := sha256.Sum256([]byte(subnet))

	return idPrefix + hex.EncodeToString(sum[:])[:idHexSize]
}

// Name is the display name of a subnet's provider.
func Name(subnet string) string {
	return "Provider " + subnet + ".0/24"
}

// ClusterAndAggregate rebuilds every provider from scratch. Nodes without an
// IPv4 address are left out. The result is sorted by provider id.
func ClusterAndAggregate(nodes []models.NodeRecord, now time.Time) []models.Provider {
	groups := stats.GroupBy(nodes, func(n models.NodeRecord) (string, bool) {
		return SubnetOf(&n)
	})

	providers := make([]models.Provider, 0, len(groups))

	for subnet, members := range groups {
		providers = append(providers, build(subnet, members, now))
	}

	sort.Slice(providers, func(i, j int) bool {
		return providers[i].ProviderID < providers[j].ProviderID
	})

	return providers
}

func build(subnet string, members []models.NodeRecord, now time.Time) models.Provider {
	p := models.Provider{
		ProviderID: ID(subnet),
		Name:       Name(subnet),
		Subnet:     subnet,
		NodeIDs:    make([]string, 0, len(members)),
		NodeCount:  len(members),
		UpdatedAt:  now,
	}

	for i := range members {
		m := &members[i]

		p.NodeIDs = append(p.NodeIDs, m.NodeID)

		if m.Status == models.NodeStatusOnline {
			p.ActiveCount++
		}

		p.Metrics.StorageCommitted += m.CurrentMetrics.StorageCommitted
		p.Metrics.StorageUsed += m.CurrentMetrics.StorageUsed
	}

	sort.Strings(p.NodeIDs)

	p.Metrics.MeanUptimeHours = stats.Mean(stats.Collect(members, func(n models.NodeRecord) (float64, bool) {
		return n.UptimeHours(), true
	}))
	p.Metrics.MeanCPUPercent = stats.Mean(stats.Collect(members, func(n models.NodeRecord) (float64, bool) {
		if n.CurrentMetrics.CPUPercent == nil {
			return 0, false
		}

		return *n.CurrentMetrics.CPUPercent, true
	}))

	return p
}
