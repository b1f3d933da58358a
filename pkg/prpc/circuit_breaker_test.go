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

package prpc

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pnoderadar/pkg/logger"
)

var errTestError = errors.New("test error")

func TestCircuitBreaker_Transitions(t *testing.T) {
	now := time.Unix(1700000000, 0)

	cb := NewCircuitBreaker("seed", CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
	}, logger.NewTestLogger())
	cb.now = func() time.Time { return now }

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.GetState())

	require.Error(t, cb.Execute(func() error { return errTestError }))
	assert.Equal(t, StateClosed, cb.GetState())

	require.Error(t, cb.Execute(func() error { return errTestError }))
	assert.Equal(t, StateOpen, cb.GetState())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)

	now = now.Add(time.Minute)

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	now := time.Unix(1700000000, 0)

	cb := NewCircuitBreaker("seed", CircuitBreakerConfig{FailureThreshold: 1, Timeout: time.Second}, logger.NewTestLogger())
	cb.now = func() time.Time { return now }

	require.Error(t, cb.Execute(func() error { return errTestError }))
	assert.Equal(t, StateOpen, cb.GetState())

	now = now.Add(2 * time.Second)

	require.Error(t, cb.Execute(func() error { return errTestError }))
	assert.Equal(t, StateOpen, cb.GetState())
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker("seed", CircuitBreakerConfig{FailureThreshold: 2, Timeout: time.Minute}, logger.NewTestLogger())

	require.Error(t, cb.Execute(func() error { return errTestError }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.Error(t, cb.Execute(func() error { return errTestError }))

	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreakerState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", CircuitBreakerState(9).String())
}
