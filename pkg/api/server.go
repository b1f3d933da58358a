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

// Package api provides the admin HTTP API of the pnode-sync service.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carverauto/pnoderadar/pkg/db"
	prHttp "github.com/carverauto/pnoderadar/pkg/http"
	"github.com/carverauto/pnoderadar/pkg/logger"
	pnodesync "github.com/carverauto/pnoderadar/pkg/sync"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 60 * time.Second
	defaultIdleTimeout  = 120 * time.Second
)

// Syncer runs a sync cycle on demand.
type Syncer interface {
	RunSyncCycle(ctx context.Context) pnodesync.CycleResult
}

// Server serves health, metrics, and read-only views of the stored state.
type Server struct {
	router   *mux.Router
	store    db.Service
	syncer   Syncer
	gatherer prometheus.Gatherer
	logger   logger.Logger
	cors     prHttp.CORSConfig
	apiKey   string

	addr       string
	mu         sync.Mutex
	httpServer *http.Server
	serveDone  chan struct{}
}

// NewServer creates the admin server listening on addr.
func NewServer(addr string, store db.Service, syncer Syncer, log logger.Logger, options ...func(*Server)) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		store:    store,
		syncer:   syncer,
		gatherer: prometheus.DefaultGatherer,
		logger:   log,
		addr:     addr,
	}

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

// WithGatherer serves /metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) func(*Server) {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithCORS enables CORS for the given origins.
func WithCORS(origins []string) func(*Server) {
	return func(s *Server) {
		s.cors = prHttp.CORSConfig{AllowedOrigins: origins}
	}
}

// WithAPIKey protects POST endpoints with an API key.
func WithAPIKey(key string) func(*Server) {
	return func(s *Server) {
		s.apiKey = key
	}
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(prHttp.APIKeyMiddlewareWithOptions(prHttp.APIKeyOptions{
		APIKey:          s.apiKey,
		SafeMethods:     []string{http.MethodGet, http.MethodOptions},
		LogUnauthorized: true,
		Logger:          s.logger,
	}))

	api.HandleFunc("/sync", s.handleSync).Methods(http.MethodPost)
	api.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)
	api.HandleFunc("/nodes", s.handleNodes).Methods(http.MethodGet)
	api.HandleFunc("/nodes/{id}", s.handleNode).Methods(http.MethodGet)
	api.HandleFunc("/nodes/{id}/events", s.handleNodeEvents).Methods(http.MethodGet)
	api.HandleFunc("/nodes/{id}/metrics", s.handleNodeMetrics).Methods(http.MethodGet)
	api.HandleFunc("/snapshots/latest", s.handleLatestSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/snapshots", s.handleSnapshots).Methods(http.MethodGet)
	api.HandleFunc("/providers", s.handleProviders).Methods(http.MethodGet)
}

// Handler returns the root handler with the common middleware applied.
func (s *Server) Handler() http.Handler {
	return prHttp.CommonMiddleware(s.router, s.cors, s.logger)
}

// Start implements the lifecycle.Service interface. It binds the listener
// and serves in the background until Stop.
func (s *Server) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	done := make(chan struct{})

	s.mu.Lock()
	s.httpServer = srv
	s.serveDone = done
	s.mu.Unlock()

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("Admin API listening")

	go func() {
		defer close(done)

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("Admin API server failed")
		}
	}()

	return nil
}

// Stop implements the lifecycle.Service interface.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv, done := s.httpServer, s.serveDone
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	<-done

	return nil
}
