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

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/carverauto/pnoderadar/pkg/db"
	pnodesync "github.com/carverauto/pnoderadar/pkg/sync"
)

// SyncResponse is returned by POST /api/sync.
type SyncResponse struct {
	Success   bool   `json:"success"`
	Processed int    `json:"processed"`
	Message   string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) encodeJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) writeAPIError(w http.ResponseWriter, status int, msg string) {
	s.encodeJSONResponse(w, status, errorResponse{Error: msg})
}

// parseLimit reads ?limit=. Missing or non-positive values leave the
// store default in place.
func parseLimit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}

func (*Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}

// handleSync runs a cycle detached from the request so a client that hangs up
// does not cancel discovery and get recorded as a failed sync.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	result := s.syncer.RunSyncCycle(context.WithoutCancel(r.Context()))

	resp := SyncResponse{
		Success:   result.Err == nil,
		Processed: result.Processed,
		Message:   result.Message(),
	}

	switch {
	case result.Err == nil:
		s.encodeJSONResponse(w, http.StatusOK, resp)
	case errors.Is(result.Err, pnodesync.ErrCycleInProgress):
		s.encodeJSONResponse(w, http.StatusConflict, resp)
	default:
		s.encodeJSONResponse(w, http.StatusInternalServerError, resp)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.store.GetStatus(r.Context())
	if errors.Is(err, db.ErrStatusNotFound) {
		s.writeAPIError(w, http.StatusNotFound, "sync has not run yet")
		return
	}

	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load sync status")
		s.writeAPIError(w, http.StatusInternalServerError, "failed to load status")

		return
	}

	s.encodeJSONResponse(w, http.StatusOK, status)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r)
	if !ok {
		s.writeAPIError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	evs, err := s.store.ListEvents(r.Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list events")
		s.writeAPIError(w, http.StatusInternalServerError, "failed to list events")

		return
	}

	s.encodeJSONResponse(w, http.StatusOK, evs)
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.store.ListNodes(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list nodes")
		s.writeAPIError(w, http.StatusInternalServerError, "failed to list nodes")

		return
	}

	s.encodeJSONResponse(w, http.StatusOK, nodes)
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	nodeID := mux.Vars(r)["id"]

	node, err := s.store.GetNode(r.Context(), nodeID)
	if errors.Is(err, db.ErrNodeNotFound) {
		s.writeAPIError(w, http.StatusNotFound, "node not found")
		return
	}

	if err != nil {
		s.logger.Error().Err(err).Str("node_id", nodeID).Msg("Failed to load node")
		s.writeAPIError(w, http.StatusInternalServerError, "failed to load node")

		return
	}

	s.encodeJSONResponse(w, http.StatusOK, node)
}

func (s *Server) handleNodeEvents(w http.ResponseWriter, r *http.Request) {
	nodeID := mux.Vars(r)["id"]

	limit, ok := parseLimit(r)
	if !ok {
		s.writeAPIError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	evs, err := s.store.ListNodeEvents(r.Context(), nodeID, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("node_id", nodeID).Msg("Failed to list node events")
		s.writeAPIError(w, http.StatusInternalServerError, "failed to list events")

		return
	}

	s.encodeJSONResponse(w, http.StatusOK, evs)
}

func (s *Server) handleNodeMetrics(w http.ResponseWriter, r *http.Request) {
	nodeID := mux.Vars(r)["id"]

	limit, ok := parseLimit(r)
	if !ok {
		s.writeAPIError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	samples, err := s.store.GetNodeMetrics(r.Context(), nodeID, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("node_id", nodeID).Msg("Failed to load node metrics")
		s.writeAPIError(w, http.StatusInternalServerError, "failed to load metrics")

		return
	}

	s.encodeJSONResponse(w, http.StatusOK, samples)
}

func (s *Server) handleLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.store.LatestSnapshots(r.Context(), 1)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load snapshot")
		s.writeAPIError(w, http.StatusInternalServerError, "failed to load snapshot")

		return
	}

	if len(snaps) == 0 {
		s.writeAPIError(w, http.StatusNotFound, "no snapshot recorded yet")
		return
	}

	s.encodeJSONResponse(w, http.StatusOK, snaps[0])
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r)
	if !ok {
		s.writeAPIError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	snaps, err := s.store.LatestSnapshots(r.Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list snapshots")
		s.writeAPIError(w, http.StatusInternalServerError, "failed to list snapshots")

		return
	}

	s.encodeJSONResponse(w, http.StatusOK, snaps)
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := s.store.ListProviders(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list providers")
		s.writeAPIError(w, http.StatusInternalServerError, "failed to list providers")

		return
	}

	s.encodeJSONResponse(w, http.StatusOK, providers)
}
