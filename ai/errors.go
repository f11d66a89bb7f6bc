// Copyright 2026 Halcyard Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProvider indicates a transport or auth failure talking to the
	// upstream embedding service.
	ErrProvider = errors.New("embedding provider failure")

	// ErrRateLimited indicates the upstream service rejected the call for
	// rate limiting. Distinct from ErrProvider so callers can decide
	// retry versus abort.
	ErrRateLimited = errors.New("embedding provider rate limited")

	// ErrGeneration indicates the answer generation service failed.
	// Retryable like embedding errors.
	ErrGeneration = errors.New("generation provider failure")
)

// ClassifyEmbedError wraps an upstream embedding error with the matching
// sentinel: ErrRateLimited when the upstream response looks like a 429,
// ErrProvider otherwise.
func ClassifyEmbedError(err error) error {
	if err == nil {
		return nil
	}
	if isRateLimit(err) {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return fmt.Errorf("%w: %v", ErrProvider, err)
}

// ClassifyGenerateError wraps an upstream generation error with the
// matching sentinel, keeping rate limits distinguishable.
func ClassifyGenerateError(err error) error {
	if err == nil {
		return nil
	}
	if isRateLimit(err) {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return fmt.Errorf("%w: %v", ErrGeneration, err)
}

// IsRetryable reports whether a workflow should retry the failed call
// under its backoff budget.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrProvider) ||
		errors.Is(err, ErrGeneration)
}

// isRateLimit sniffs upstream error text for rate-limit signals. The
// OpenAI-compatible clients surface HTTP status in the message rather
// than a typed error.
func isRateLimit(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "rate_limit") ||
		strings.Contains(msg, "too many requests")
}
