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

// Package prpc is a JSON-RPC 2.0 client for the pNode RPC interface: roster
// queries against gossip seeds and live stats queries against single nodes.
package prpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
)

const (
	jsonRPCVersion = "2.0"
	rpcPath        = "/rpc"

	MethodPodsWithStats = "get-pods-with-stats"
	MethodStats         = "get-stats"

	// maxResponseBytes caps a single response body.
	maxResponseBytes = 32 << 20
)

var (
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrRPC              = errors.New("rpc error")
	ErrEmptyResult      = errors.New("rpc response has no result")
	ErrEmptyAddress     = errors.New("empty endpoint address")
)

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
	ID      int64       `json:"id"`
}

// Response is a JSON-RPC 2.0 response envelope.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      int64           `json:"id"`
}

// RPCError is the error object of a failed call.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Message)
}

// PodsResponse is the result of get-pods-with-stats.
type PodsResponse struct {
	Pods       []models.RawNode `json:"pods"`
	TotalCount int              `json:"total_count"`
}

// Client talks to pNodes over HTTP. Roster calls go through a per-seed
// circuit breaker; stats calls do not, since every node is called once per cycle.
type Client struct {
	seeds      []string
	httpClient HTTPClient
	logger     logger.Logger
	breakerCfg CircuitBreakerConfig

	mu       sync.Mutex
	breakers map[string]*CircuitBreaker

	nextID atomic.Int64
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c HTTPClient) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithCircuitBreakerConfig overrides the per-seed breaker settings.
func WithCircuitBreakerConfig(cfg CircuitBreakerConfig) Option {
	return func(cl *Client) {
		cl.breakerCfg = cfg
	}
}

// NewClient returns a client for the given seed endpoints ("host:port" or URLs).
func NewClient(seeds []string, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		seeds:      append([]string(nil), seeds...),
		httpClient: &http.Client{},
		logger:     log,
		breakerCfg: DefaultCircuitBreakerConfig(),
		breakers:   make(map[string]*CircuitBreaker),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var (
	_ RosterSource = (*Client)(nil)
	_ StatsSource  = (*Client)(nil)
)

// ListSeedEndpoints returns the configured seeds in priority order.
func (c *Client) ListSeedEndpoints() []string {
	return append([]string(nil), c.seeds...)
}

// FetchRoster calls get-pods-with-stats on a seed.
func (c *Client) FetchRoster(ctx context.Context, endpoint string) ([]models.RawNode, error) {
	var pods PodsResponse

	err := c.breaker(endpoint).Execute(func() error {
		return c.call(ctx, endpoint, MethodPodsWithStats, &pods)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch roster from %s: %w", endpoint, err)
	}

	return pods.Pods, nil
}

// FetchLiveStats calls get-stats on a single node.
func (c *Client) FetchLiveStats(ctx context.Context, address string) (*models.StatsPayload, error) {
	var stats models.StatsPayload

	if err := c.call(ctx, address, MethodStats, &stats); err != nil {
		return nil, fmt.Errorf("fetch stats from %s: %w", address, err)
	}

	return &stats, nil
}

// BreakerState reports the breaker state of a seed, for diagnostics.
func (c *Client) BreakerState(endpoint string) CircuitBreakerState {
	return c.breaker(endpoint).GetState()
}

func (c *Client) breaker(endpoint string) *CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	cb, ok := c.breakers[endpoint]
	if !ok {
		cb = NewCircuitBreaker(endpoint, c.breakerCfg, c.logger)
		c.breakers[endpoint] = cb
	}

	return cb
}

func (c *Client) call(ctx context.Context, endpoint, method string, out interface{}) error {
	url, err := EndpointURL(endpoint)
	if err != nil {
		return err
	}

	body, err := json.Marshal(Request{
		JSONRPC: jsonRPCVersion,
		Method:  method,
		ID:      c.nextID.Add(1),
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var rpcResp Response
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if rpcResp.Error != nil {
		return fmt.Errorf("%w: %s %s", ErrRPC, method, rpcResp.Error.Error())
	}

	if len(rpcResp.Result) == 0 || string(rpcResp.Result) == "null" {
		return ErrEmptyResult
	}

	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}

	return nil
}

// EndpointURL turns "host:port" (or a full URL without path) into the RPC URL.
func EndpointURL(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}

	endpoint = strings.TrimRight(endpoint, "/")

	if strings.HasSuffix(endpoint, rpcPath) {
		return endpoint, nil
	}

	return endpoint + rpcPath, nil
}
