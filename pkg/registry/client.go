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
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
	"github.com/carverauto/pnoderadar/pkg/prpc"
)

const (
	methodGetAccountInfo = "getAccountInfo"
	encodingBase64       = "base64"
	defaultTimeout       = 10 * time.Second
)

var (
	ErrRPCURLRequired = errors.New("registry rpc_url is required")
	ErrUnexpectedData = errors.New("unexpected account data encoding")
)

type accountInfoResult struct {
	Value *struct {
		Data  []string `json:"data"`
		Owner string   `json:"owner"`
	} `json:"value"`
}

// Client fetches registry accounts from a chain JSON-RPC endpoint.
type Client struct {
	rpcURL     string
	programID  string
	timeout    time.Duration
	httpClient prpc.HTTPClient
	logger     logger.Logger
	nextID     atomic.Int64
}

// NewClient builds a registry client from config.
func NewClient(cfg *models.RegistryConfig, httpClient prpc.HTTPClient, log logger.Logger) (*Client, error) {
	if cfg == nil || cfg.RPCURL == "" {
		return nil, ErrRPCURLRequired
	}

	if _, err := decodeKey(cfg.ProgramID); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProgramID, cfg.ProgramID)
	}

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	timeout := time.Duration(cfg.Timeout)
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		rpcURL:     cfg.RPCURL,
		programID:  cfg.ProgramID,
		timeout:    timeout,
		httpClient: httpClient,
		logger:     log,
	}, nil
}

// FetchAccount returns the raw data of an account, or nil when it does not exist.
func (c *Client) FetchAccount(ctx context.Context, address string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(prpc.Request{
		JSONRPC: "2.0",
		Method:  methodGetAccountInfo,
		Params:  []interface{}{address, map[string]string{"encoding": encodingBase64}},
		ID:      c.nextID.Add(1),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get account %s: %w", address, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get account %s: %w: %d", address, prpc.ErrUnexpectedStatus, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var rpcResp prpc.Response
	if err := json.Unmarshal(raw, &rpcResp); err != nil {
		return nil, fmt.Errorf("decode account %s: %w", address, err)
	}

	if rpcResp.Error != nil {
		return nil, fmt.Errorf("get account %s: %w: %s", address, prpc.ErrRPC, rpcResp.Error.Error())
	}

	var result accountInfoResult
	if err := json.Unmarshal(rpcResp.Result, &result); err != nil {
		return nil, fmt.Errorf("decode account %s: %w", address, err)
	}

	if result.Value == nil {
		return nil, nil
	}

	if len(result.Value.Data) != 2 || result.Value.Data[1] != encodingBase64 {
		return nil, ErrUnexpectedData
	}

	return base64.StdEncoding.DecodeString(result.Value.Data[0])
}

// Lookup derives, fetches and parses the registry record of a node. A missing
// or malformed account yields nil without error.
func (c *Client) Lookup(ctx context.Context, nodeID string) (*models.RegistryAccount, error) {
	address, _, err := DeriveAddress(nodeID, c.programID)
	if err != nil {
		return nil, err
	}

	data, err := c.FetchAccount(ctx, address)
	if err != nil {
		return nil, err
	}

	account := ParseAccount(data)
	if account == nil {
		c.logger.Debug().
			Str("node_id", nodeID).
			Str("address", address).
			Int("size", len(data)).
			Msg("Registry account missing or malformed")

		return nil, nil
	}

	account.Address = address

	return account, nil
}
