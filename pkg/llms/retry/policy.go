// Package retry wraps a llms.Model with transparent retries: transient
// failures are retried with exponential backoff and jitter, fatal failures
// propagate immediately. The engine above never sees a retry except as
// latency and, optionally, observed events.
package retry

import (
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/effective-security/agentexec/pkg/llms/llmerrors"
)

// PolicyName identifies a built-in retry policy.
type PolicyName string

const (
	PolicyDefault      PolicyName = "default"
	PolicyDisabled     PolicyName = "disabled"
	PolicyAggressive   PolicyName = "aggressive"
	PolicyConservative PolicyName = "conservative"
)

// Policy fixes the backoff schedule for retryable provider failures.
type Policy struct {
	// Name of the policy, for logs and config.
	Name PolicyName
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps the computed delay, jitter included.
	MaxDelay time.Duration
	// MaxRetries is the number of retries after the first attempt;
	// zero means any failure propagates immediately.
	MaxRetries int
	// JitterFraction scales the delay by a uniform random factor in
	// [1-j, 1+j] to avoid thundering herds.
	JitterFraction float64
}

// DefaultPolicy retries a few times with moderate backoff.
func DefaultPolicy() *Policy {
	return &Policy{
		Name:           PolicyDefault,
		BaseDelay:      500 * time.Millisecond,
		MaxDelay:       30 * time.Second,
		MaxRetries:     3,
		JitterFraction: 0.25,
	}
}

// DisabledPolicy performs no retries: the first failure of any class
// propagates immediately.
func DisabledPolicy() *Policy {
	return &Policy{
		Name: PolicyDisabled,
	}
}

// AggressivePolicy retries more often with a smaller base delay.
func AggressivePolicy() *Policy {
	return &Policy{
		Name:           PolicyAggressive,
		BaseDelay:      200 * time.Millisecond,
		MaxDelay:       60 * time.Second,
		MaxRetries:     6,
		JitterFraction: 0.5,
	}
}

// ConservativePolicy retries fewer times with a larger base delay.
func ConservativePolicy() *Policy {
	return &Policy{
		Name:           PolicyConservative,
		BaseDelay:      2 * time.Second,
		MaxDelay:       60 * time.Second,
		MaxRetries:     2,
		JitterFraction: 0.1,
	}
}

// NamedPolicy returns the built-in policy for the given name,
// or the default policy for an unknown name.
func NamedPolicy(name PolicyName) *Policy {
	switch name {
	case PolicyDisabled:
		return DisabledPolicy()
	case PolicyAggressive:
		return AggressivePolicy()
	case PolicyConservative:
		return ConservativePolicy()
	default:
		return DefaultPolicy()
	}
}

// BackoffDelay computes the delay before retrying the given attempt,
// without jitter. Attempt counting starts at 0 for the first try.
// The result doubles per attempt and is capped at MaxDelay.
func (p *Policy) BackoffDelay(attempt int) time.Duration {
	if p.BaseDelay <= 0 {
		return 0
	}
	delay := p.BaseDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return min(delay, p.MaxDelay)
}

// Jitter scales the delay by a uniform random factor in the policy's jitter
// band, re-capped at MaxDelay.
func (p *Policy) Jitter(delay time.Duration, rnd func() float64) time.Duration {
	if p.JitterFraction <= 0 || delay <= 0 {
		return delay
	}
	if rnd == nil {
		rnd = rand.Float64
	}
	factor := 1 - p.JitterFraction + 2*p.JitterFraction*rnd()
	jittered := time.Duration(float64(delay) * factor)
	if jittered < 0 {
		jittered = delay
	}
	return min(jittered, p.MaxDelay)
}

// Event describes one retry decision, for observability only.
type Event struct {
	// Attempt is the zero-based number of the attempt that failed.
	Attempt int
	// Delay is the wait before the next attempt.
	Delay time.Duration
	// Reason is the classified failure type.
	Reason llmerrors.ErrorType
	// Err is the classified failure.
	Err error
}

// EventFunc observes retry decisions.
type EventFunc func(Event)

// HintExtractor reads a vendor-specific explicit wait hint from response
// headers. The retry algorithm itself stays vendor-neutral.
type HintExtractor interface {
	Extract(header http.Header) (time.Duration, bool)
}

// RetryAfterHint extracts the standard Retry-After header in seconds.
type RetryAfterHint struct{}

// Extract implements HintExtractor.
func (RetryAfterHint) Extract(header http.Header) (time.Duration, bool) {
	d := llmerrors.ParseRetryAfter(header.Get("Retry-After"))
	return d, d > 0
}
