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

package discovery

import (
	"net"
	"strconv"
	"strings"

	"github.com/carverauto/pnoderadar/pkg/models"
)

// Normalize drops entries without a pubkey and collapses duplicates, keeping
// the entry with the most recent last_seen_timestamp. First-seen order is kept.
func Normalize(raw []models.RawNode) []models.RawNode {
	out := make([]models.RawNode, 0, len(raw))
	index := make(map[string]int, len(raw))

	for i := range raw {
		node := raw[i]

		node.Pubkey = strings.TrimSpace(node.Pubkey)
		if node.Pubkey == "" {
			continue
		}

		if pos, ok := index[node.Pubkey]; ok {
			if node.LastSeenTimestamp > out[pos].LastSeenTimestamp {
				out[pos] = node
			}

			continue
		}

		index[node.Pubkey] = len(out)
		out = append(out, node)
	}

	return out
}

// SplitAddress splits "ip:port" into its parts. A bare host returns port 0.
func SplitAddress(address string) (string, int, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", 0, ErrInvalidAddress
	}

	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		if strings.Contains(err.Error(), "missing port") {
			return strings.Trim(address, "[]"), 0, nil
		}

		return "", 0, ErrInvalidAddress
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return "", 0, ErrInvalidAddress
	}

	return host, port, nil
}

// StatsAddress is the "ip:rpc_port" endpoint used for the get-stats call, or
// "" when the node does not advertise one.
func StatsAddress(node *models.RawNode) string {
	host, _, err := SplitAddress(node.Address)
	if err != nil || host == "" || node.RPCPort <= 0 {
		return ""
	}

	return net.JoinHostPort(host, strconv.Itoa(node.RPCPort))
}
