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

package registry

import (
	"encoding/binary"
	"time"

	"github.com/btcsuite/btcutil/base58"

	"github.com/carverauto/pnoderadar/pkg/models"
)

// Account layout: identity[0:32] status[32] reserved[33] timestamp[34:42] (LE unix seconds).
const (
	statusOffset    = identitySize
	timestampOffset = identitySize + 2
	minAccountSize  = timestampOffset + 8
)

var statusCodes = map[byte]models.NodeStatus{
	0: models.NodeStatusOffline,
	1: models.NodeStatusOnline,
	2: models.NodeStatusDegraded,
}

// ParseAccount decodes raw account data. It returns nil for short data or an
// unknown status code.
func ParseAccount(data []byte) *models.RegistryAccount {
	if len(data) < minAccountSize {
		return nil
	}

	status, ok := statusCodes[data[statusOffset]]
	if !ok {
		return nil
	}

	ts := int64(binary.LittleEndian.Uint64(data[timestampOffset:minAccountSize]))

	return &models.RegistryAccount{
		NodeID:    base58.Encode(data[:identitySize]),
		Status:    status,
		Timestamp: time.Unix(ts, 0).UTC(),
	}
}

// EncodeAccount is the inverse of ParseAccount, used by fixtures and tooling.
func EncodeAccount(identity []byte, status models.NodeStatus, ts time.Time) []byte {
	data := make([]byte, minAccountSize)
	copy(data, identity)

	for code, s := range statusCodes {
		if s == status {
			data[statusOffset] = code
		}
	}

	binary.LittleEndian.PutUint64(data[timestampOffset:], uint64(ts.Unix()))

	return data
}
