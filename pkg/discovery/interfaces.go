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
	"context"

	"github.com/carverauto/pnoderadar/pkg/models"
)

//go:generate mockgen -destination=mock_discovery.go -package=discovery github.com/carverauto/pnoderadar/pkg/discovery RegistryLookup

// RegistryLookup resolves a node id to its on-chain registry record.
// A nil account with a nil error means the node has no usable record.
type RegistryLookup interface {
	Lookup(ctx context.Context, nodeID string) (*models.RegistryAccount, error)
}
