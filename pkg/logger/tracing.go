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
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	otelTrace "go.opentelemetry.io/otel/trace"
)

// GetTracer returns a named tracer from the global provider. Without an SDK
// provider installed the returned tracer is a no-op.
func GetTracer(name string) otelTrace.Tracer {
	return otel.Tracer(name)
}

// WithTraceContext returns a child logger carrying the trace and span ids of the
// span active in ctx. The parent logger is returned when ctx holds no valid span.
func WithTraceContext(ctx context.Context, log Logger) zerolog.Logger {
	sc := otelTrace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return log.With().Logger()
	}

	return log.With().
		Str("trace_id", sc.TraceID().String()).
		Str("span_id", sc.SpanID().String()).
		Logger()
}
