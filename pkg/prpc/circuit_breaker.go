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
	"fmt"
	"sync"
	"time"

	"github.com/carverauto/pnoderadar/pkg/logger"
)

// ErrCircuitOpen is returned when a call is rejected by an open breaker.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerState represents the current state of the circuit breaker
type CircuitBreakerState int

const (
	// StateClosed - calls are allowed
	StateClosed CircuitBreakerState = iota
	// StateOpen - calls are rejected until Timeout elapses
	StateOpen
	// StateHalfOpen - trial calls decide whether to close again
	StateHalfOpen
)

// CircuitBreakerConfig holds configuration for the circuit breaker
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures before opening the circuit
	FailureThreshold int
	// SuccessThreshold is the number of successes needed to close the circuit from half-open
	SuccessThreshold int
	// Timeout is how long to wait before transitioning from open to half-open
	Timeout time.Duration
}

// DefaultCircuitBreakerConfig returns the breaker settings used for seed endpoints.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		Timeout:          2 * time.Minute,
	}
}

// CircuitBreaker guards a single upstream endpoint.
type CircuitBreaker struct {
	config       CircuitBreakerConfig
	state        CircuitBreakerState
	failureCount int
	successCount int
	lastFailTime time.Time
	now          func() time.Time
	mu           sync.Mutex
	logger       logger.Logger
	name         string
}

// NewCircuitBreaker creates a new circuit breaker with the given configuration
func NewCircuitBreaker(name string, config CircuitBreakerConfig, log logger.Logger) *CircuitBreaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = DefaultCircuitBreakerConfig().FailureThreshold
	}

	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 1
	}

	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
		now:    time.Now,
		logger: log,
		name:   name,
	}
}

// Execute runs fn unless the breaker is open.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allowRequest() {
		return fmt.Errorf("%w: %s", ErrCircuitOpen, cb.name)
	}

	err := fn()
	cb.recordResult(err)

	return err
}

func (cb *CircuitBreaker) allowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if cb.now().Sub(cb.lastFailTime) < cb.config.Timeout {
			return false
		}

		cb.state = StateHalfOpen
		cb.successCount = 0

		cb.logger.Info().
			Str("circuit_breaker", cb.name).
			Msg("Circuit breaker transitioning to half-open")

		return true
	default:
		return false
	}
}

func (cb *CircuitBreaker) recordResult(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.onFailure()

		return
	}

	cb.onSuccess()
}

func (cb *CircuitBreaker) onFailure() {
	cb.failureCount++
	cb.lastFailTime = cb.now()

	switch cb.state {
	case StateClosed:
		if cb.failureCount >= cb.config.FailureThreshold {
			cb.state = StateOpen

			cb.logger.Warn().
				Str("circuit_breaker", cb.name).
				Int("failure_count", cb.failureCount).
				Msg("Circuit breaker opened due to failures")
		}
	case StateHalfOpen:
		cb.state = StateOpen

		cb.logger.Warn().
			Str("circuit_breaker", cb.name).
			Msg("Circuit breaker reopened after failed attempt in half-open state")
	case StateOpen:
	}
}

func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case StateHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.config.SuccessThreshold {
			cb.state = StateClosed
			cb.failureCount = 0

			cb.logger.Info().
				Str("circuit_breaker", cb.name).
				Msg("Circuit breaker closed after successful recovery")
		}
	case StateClosed:
		cb.failureCount = 0
	case StateOpen:
	}
}

// GetState returns the current state of the circuit breaker
func (cb *CircuitBreaker) GetState() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// String returns a string representation of the circuit breaker state
func (s CircuitBreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}
