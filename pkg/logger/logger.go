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

// Package logger provides JSON structured logging using zerolog
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//nolint:gochecknoglobals // package-level logger mirrors zerolog's global
var globalLogger zerolog.Logger

type Config struct {
	Level      string `json:"level" yaml:"level"`
	Debug      bool   `json:"debug" yaml:"debug"`
	Output     string `json:"output" yaml:"output"`
	TimeFormat string `json:"time_format" yaml:"time_format"`
}

func init() {
	globalLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339
}

// Init configures the package-level logger.
func Init(config *Config) error {
	if config == nil {
		config = DefaultConfig()
	}

	level, err := parseLevel(config)
	if err != nil {
		return err
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	globalLogger = zerolog.New(outputFor(config)).
		Level(level).
		With().
		Timestamp().
		Logger()

	log.Logger = globalLogger

	return nil
}

func outputFor(config *Config) io.Writer {
	if config.Output == "stderr" {
		return os.Stderr
	}

	return os.Stdout
}

func parseLevel(config *Config) (zerolog.Level, error) {
	if config.Debug {
		return zerolog.DebugLevel, nil
	}

	if config.Level == "" {
		return zerolog.InfoLevel, nil
	}

	return zerolog.ParseLevel(config.Level)
}

func SetLevel(level zerolog.Level) {
	globalLogger = globalLogger.Level(level)
	log.Logger = globalLogger
}

func SetDebug(debug bool) {
	if debug {
		SetLevel(zerolog.DebugLevel)
	} else {
		SetLevel(zerolog.InfoLevel)
	}
}

func GetLogger() zerolog.Logger {
	return globalLogger
}

func Debug() *zerolog.Event {
	return globalLogger.Debug()
}

func Info() *zerolog.Event {
	return globalLogger.Info()
}

func Warn() *zerolog.Event {
	return globalLogger.Warn()
}

func Error() *zerolog.Event {
	return globalLogger.Error()
}

func Fatal() *zerolog.Event {
	return globalLogger.Fatal()
}

func With() zerolog.Context {
	return globalLogger.With()
}

func WithComponent(component string) zerolog.Logger {
	return globalLogger.With().Str("component", component).Logger()
}
