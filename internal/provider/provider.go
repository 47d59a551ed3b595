// Package provider implements the LLM provider adapters used for code
// generation.
//
// Each adapter converts a prompt into a single raw-text completion over one
// provider's HTTP API: no retries, no streaming, one request/response per
// call. Timeouts come from the injected http.Client; the orchestrator adds
// none of its own. Adapters may be configured with a client-side rate
// limiter to pace requests against provider quotas.
package provider

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrEmptyCompletion indicates the provider answered 2xx but returned no
// usable completion text.
var ErrEmptyCompletion = errors.New("provider returned an empty completion")

// Adapter is one LLM backend.
type Adapter interface {
	// Name identifies the provider in error messages and progress output.
	Name() string

	// Available reports whether a credential is configured. Unavailable
	// adapters are skipped by the orchestrator without counting as failures.
	Available() bool

	// Complete converts prompt into a single raw-text completion.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generation parameters shared by all adapters, matching the factory's
// low-creativity code generation profile.
const (
	defaultTemperature = 0.2
	defaultMaxTokens   = 8192
)

// defaultClient is used when no http.Client is injected. Generation calls
// are slow; the transport-level timeout is deliberately generous.
var defaultClient = &http.Client{Timeout: 120 * time.Second}

// waitLimiter blocks on the limiter if one is configured.
func waitLimiter(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}
