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

package lifecycle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/carverauto/pnoderadar/pkg/logger"
)

var errUnknownLogOutput = errors.New("unknown log output")

// LoggerImpl is a logger.Logger backed by its own zerolog instance, so each
// component can carry its own fields without touching the global logger.
type LoggerImpl struct {
	logger zerolog.Logger
}

var _ logger.Logger = (*LoggerImpl)(nil)

// CreateComponentLogger builds the root logger of a binary. A nil config is
// read from the PNODERADAR_* environment.
func CreateComponentLogger(component string, config *logger.Config) (logger.Logger, error) {
	if config == nil {
		config = logger.DefaultConfig()
	}

	w, err := outputFor(config.Output)
	if err != nil {
		return nil, err
	}

	return newComponentLogger(component, config, w)
}

// Named derives a child logger carrying the component field.
func Named(parent logger.Logger, component string) logger.Logger {
	return &LoggerImpl{logger: parent.WithComponent(component)}
}

func newComponentLogger(component string, config *logger.Config, w io.Writer) (*LoggerImpl, error) {
	level, err := levelFor(config)
	if err != nil {
		return nil, err
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	} else {
		zerolog.TimeFieldFormat = time.RFC3339
	}

	zl := zerolog.New(w).Level(level).With().Timestamp().Str("component", component).Logger()

	return &LoggerImpl{logger: zl}, nil
}

func outputFor(output string) (io.Writer, error) {
	switch output {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "discard":
		return io.Discard, nil
	default:
		return nil, fmt.Errorf("%w %q", errUnknownLogOutput, output)
	}
}

// levelFor resolves the configured level. Debug overrides Level.
func levelFor(config *logger.Config) (zerolog.Level, error) {
	if config.Debug {
		return zerolog.DebugLevel, nil
	}

	if config.Level == "" {
		return zerolog.InfoLevel, nil
	}

	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", config.Level, err)
	}

	return level, nil
}

func (l *LoggerImpl) Trace() *zerolog.Event { return l.logger.Trace() }
func (l *LoggerImpl) Debug() *zerolog.Event { return l.logger.Debug() }
func (l *LoggerImpl) Info() *zerolog.Event  { return l.logger.Info() }
func (l *LoggerImpl) Warn() *zerolog.Event  { return l.logger.Warn() }
func (l *LoggerImpl) Error() *zerolog.Event { return l.logger.Error() }
func (l *LoggerImpl) Fatal() *zerolog.Event { return l.logger.Fatal() }
func (l *LoggerImpl) Panic() *zerolog.Event { return l.logger.Panic() }
func (l *LoggerImpl) With() zerolog.Context { return l.logger.With() }

func (l *LoggerImpl) WithComponent(component string) zerolog.Logger {
	return l.logger.With().Str("component", component).Logger()
}

func (l *LoggerImpl) WithFields(fields map[string]interface{}) zerolog.Logger {
	return l.logger.With().Fields(fields).Logger()
}

func (l *LoggerImpl) SetLevel(level zerolog.Level) {
	l.logger = l.logger.Level(level)
}

func (l *LoggerImpl) SetDebug(debug bool) {
	if debug {
		l.SetLevel(zerolog.DebugLevel)
		return
	}

	l.SetLevel(zerolog.InfoLevel)
}
