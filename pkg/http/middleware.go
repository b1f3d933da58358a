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

// Package http holds the middleware shared by the admin API.
package http

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"

	"github.com/carverauto/pnoderadar/pkg/logger"
)

// CORSConfig lists the origins allowed to call the admin API from a browser.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// CommonMiddleware logs every request and applies CORS. With no allowed
// origins configured the CORS layer is skipped entirely.
func CommonMiddleware(next http.Handler, corsConfig CORSConfig, log logger.Logger) http.Handler {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Debug().
			Str("remote", r.RemoteAddr).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})

	if len(corsConfig.AllowedOrigins) == 0 {
		return handler
	}

	return cors.New(cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-API-Key"},
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           3600,
	}).Handler(handler)
}

// APIKeyOptions configures APIKeyMiddlewareWithOptions.
type APIKeyOptions struct {
	APIKey string
	// ExcludePaths are path prefixes served without a key.
	ExcludePaths []string
	// SafeMethods, when set, lists methods served without a key.
	SafeMethods     []string
	LogUnauthorized bool
	Logger          logger.Logger
}

// APIKeyMiddlewareWithOptions rejects requests whose X-API-Key header (or
// api_key query parameter) does not match. An empty APIKey disables the check.
func APIKeyMiddlewareWithOptions(opts APIKeyOptions) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if opts.APIKey == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.exempt(r) {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("X-API-Key")
			if key == "" {
				key = r.URL.Query().Get("api_key")
			}

			if subtle.ConstantTimeCompare([]byte(key), []byte(opts.APIKey)) != 1 {
				if opts.LogUnauthorized && opts.Logger != nil {
					opts.Logger.Warn().
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("remote", r.RemoteAddr).
						Msg("Unauthorized API access attempt")
				}

				http.Error(w, "Unauthorized", http.StatusUnauthorized)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (opts *APIKeyOptions) exempt(r *http.Request) bool {
	for _, p := range opts.ExcludePaths {
		if strings.HasPrefix(r.URL.Path, p) {
			return true
		}
	}

	for _, m := range opts.SafeMethods {
		if r.Method == m {
			return true
		}
	}

	return false
}
