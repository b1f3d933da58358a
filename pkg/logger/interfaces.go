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

package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the structured logger every pnoderadar component takes. Events
// are zerolog events, so call sites chain fields and finish with Msg.
type Logger interface {
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	Fatal() *zerolog.Event
	Panic() *zerolog.Event
	With() zerolog.Context
	WithComponent(component string) zerolog.Logger
	WithFields(fields map[string]interface{}) zerolog.Logger
	SetLevel(level zerolog.Level)
	SetDebug(debug bool)
}

// NewTestLogger returns a Logger that drops everything.
func NewTestLogger() Logger {
	return adapter{zl: zerolog.New(io.Discard).Level(zerolog.Disabled)}
}

// adapter exposes a fixed zerolog.Logger as a Logger. SetLevel and SetDebug
// are no-ops.
type adapter struct {
	zl zerolog.Logger
}

func (d adapter) Trace() *zerolog.Event { return d.zl.Trace() }
func (d adapter) Debug() *zerolog.Event { return d.zl.Debug() }
func (d adapter) Info() *zerolog.Event  { return d.zl.Info() }
func (d adapter) Warn() *zerolog.Event  { return d.zl.Warn() }
func (d adapter) Error() *zerolog.Event { return d.zl.Error() }
func (d adapter) Fatal() *zerolog.Event { return d.zl.Fatal() }
func (d adapter) Panic() *zerolog.Event { return d.zl.Panic() }
func (d adapter) With() zerolog.Context { return d.zl.With() }

func (d adapter) WithComponent(string) zerolog.Logger { return d.zl }

func (d adapter) WithFields(map[string]interface{}) zerolog.Logger { return d.zl }

func (adapter) SetLevel(zerolog.Level) {}
func (adapter) SetDebug(bool)          {}
