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

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/rs/zerolog"

	"github.com/carverauto/pnoderadar/pkg/logger"
	"github.com/carverauto/pnoderadar/pkg/models"
)

var (
	errInvalidConfigSource = errors.New("invalid CONFIG_SOURCE value")
	errInvalidConfigPtr    = errors.New("config must be a non-nil pointer")
)

const (
	configSourceFile = "file"
	configSourceEnv  = "env"

	defaultEnvPrefix = "PNODERADAR_"
)

// ConfigLoader fills dst from some configuration source.
type ConfigLoader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Validator is implemented by configs that apply defaults and check fields.
type Validator interface {
	Validate() error
}

// Config holds the configuration loading dependencies.
type Config struct {
	defaultLoader ConfigLoader
	logger        logger.Logger
}

// NewConfig initializes a new Config instance with a default file loader and logger.
// If logger is nil, creates a basic logger for config loading.
func NewConfig(log logger.Logger) *Config {
	if log == nil {
		log = createBasicLogger()
	}

	return &Config{
		defaultLoader: &FileConfigLoader{},
		logger:        log,
	}
}

// ValidateConfig validates a configuration if it implements Validator.
func ValidateConfig(cfg interface{}) error {
	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}

	return v.Validate()
}

// LoadAndValidate loads a configuration, normalizes SecurityConfig paths if present, and validates it.
func (c *Config) LoadAndValidate(ctx context.Context, path string, cfg interface{}) error {
	if err := c.loadWithSource(ctx, path, cfg); err != nil {
		return err
	}

	if err := c.normalizeSecurityConfig(cfg); err != nil {
		return fmt.Errorf("failed to normalize SecurityConfig: %w", err)
	}

	return ValidateConfig(cfg)
}

func (c *Config) loadWithSource(ctx context.Context, path string, cfg interface{}) error {
	source := strings.ToLower(os.Getenv("CONFIG_SOURCE"))

	var loader ConfigLoader

	switch source {
	case configSourceEnv:
		prefix := os.Getenv("CONFIG_ENV_PREFIX")
		if prefix == "" {
			prefix = defaultEnvPrefix
		}

		loader = NewEnvConfigLoader(c.logger, prefix)
	case configSourceFile, "":
		loader = c.defaultLoader
	default:
		return fmt.Errorf("%w: %s (expected '%s' or '%s')",
			errInvalidConfigSource, source, configSourceFile, configSourceEnv)
	}

	return loader.Load(ctx, path, cfg)
}

// normalizeSecurityConfig resolves TLS paths of top-level *SecurityConfig fields.
func (c *Config) normalizeSecurityConfig(cfg interface{}) error {
	v := reflect.ValueOf(cfg)

	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errInvalidConfigPtr
	}

	v = v.Elem()

	if v.Kind() != reflect.Struct {
		return nil
	}

	secType := reflect.TypeOf((*models.SecurityConfig)(nil))

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Type() != secType || field.IsNil() {
			continue
		}

		sec := field.Interface().(*models.SecurityConfig)
		c.normalizeTLSPaths(&sec.TLS, sec.CertDir)
	}

	return nil
}

// normalizeTLSPaths adjusts TLS file paths based on the certificate directory.
func (c *Config) normalizeTLSPaths(tls *models.TLSConfig, certDir string) {
	if certDir == "" {
		return
	}

	NormalizeTLSPaths(tls, certDir)

	c.logger.Debug().
		Str("cert_file", tls.CertFile).
		Str("ca_file", tls.CAFile).
		Msg("Normalized TLS paths")
}

// NormalizeTLSPaths resolves relative TLS file paths against certDir. An unset
// client CA defaults to the CA file.
func NormalizeTLSPaths(tls *models.TLSConfig, certDir string) {
	if certDir == "" {
		return
	}

	resolve := func(path string) string {
		if path == "" || filepath.IsAbs(path) {
			return path
		}

		return filepath.Join(certDir, path)
	}

	tls.CertFile = resolve(tls.CertFile)
	tls.KeyFile = resolve(tls.KeyFile)
	tls.CAFile = resolve(tls.CAFile)

	if tls.ClientCAFile == "" {
		tls.ClientCAFile = tls.CAFile
	} else {
		tls.ClientCAFile = resolve(tls.ClientCAFile)
	}
}

// basicLogger is used while the real logger configuration is still being loaded.
type basicLogger struct {
	logger zerolog.Logger
}

func createBasicLogger() logger.Logger {
	zlog := zerolog.New(os.Stderr).
		Level(zerolog.WarnLevel).
		With().
		Timestamp().
		Logger()

	return &basicLogger{logger: zlog}
}

func (b *basicLogger) Trace() *zerolog.Event { return b.logger.Trace() }
func (b *basicLogger) Debug() *zerolog.Event { return b.logger.Debug() }
func (b *basicLogger) Info() *zerolog.Event  { return b.logger.Info() }
func (b *basicLogger) Warn() *zerolog.Event  { return b.logger.Warn() }
func (b *basicLogger) Error() *zerolog.Event { return b.logger.Error() }
func (b *basicLogger) Fatal() *zerolog.Event { return b.logger.Fatal() }
func (b *basicLogger) Panic() *zerolog.Event { return b.logger.Panic() }
func (b *basicLogger) With() zerolog.Context { return b.logger.With() }

func (b *basicLogger) WithComponent(component string) zerolog.Logger {
	return b.logger.With().Str("component", component).Logger()
}

func (b *basicLogger) WithFields(fields map[string]interface{}) zerolog.Logger {
	return b.logger.With().Fields(fields).Logger()
}

func (b *basicLogger) SetLevel(level zerolog.Level) {
	b.logger = b.logger.Level(level)
}

func (b *basicLogger) SetDebug(debug bool) {
	if debug {
		b.SetLevel(zerolog.DebugLevel)
	} else {
		b.SetLevel(zerolog.InfoLevel)
	}
}
