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

package prpc

import (
	"context"
	"net/http"

	"github.com/carverauto/pnoderadar/pkg/models"
)

//go:generate mockgen -destination=mock_prpc.go -package=prpc github.com/carverauto/pnoderadar/pkg/prpc HTTPClient,RosterSource,StatsSource

// HTTPClient is the subset of *http.Client used by the pRPC client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RosterSource lists gossip seeds and fetches the pod roster from one of them.
type RosterSource interface {
	ListSeedEndpoints() []string
	FetchRoster(ctx context.Context, endpoint string) ([]models.RawNode, error)
}

// StatsSource fetches live stats from a single pNode at "ip:rpc_port".
type StatsSource interface {
	FetchLiveStats(ctx context.Context, address string) (*models.StatsPayload, error)
}
