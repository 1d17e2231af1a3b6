package retry

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentexec/pkg/llms"
	"github.com/effective-security/agentexec/pkg/llms/llmerrors"
	"github.com/effective-security/agentexec/pkg/metricskey"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/agentexec", "retry")

// Model decorates a llms.Model with the retry policy. It has the same
// signature as the wrapped model and is fully transparent to callers.
type Model struct {
	inner   llms.Model
	policy  *Policy
	hints   HintExtractor
	onEvent EventFunc
	rnd     func() float64
}

var _ llms.Model = (*Model)(nil)

// Option configures the retrying model.
type Option func(*Model)

// WithHintExtractor injects a vendor-specific rate-limit hint extractor.
func WithHintExtractor(h HintExtractor) Option {
	return func(m *Model) {
		m.hints = h
	}
}

// WithEventFunc sets a callback invoked on every retry decision.
func WithEventFunc(f EventFunc) Option {
	return func(m *Model) {
		m.onEvent = f
	}
}

// WithRandom overrides the jitter randomness source, for tests.
func WithRandom(rnd func() float64) Option {
	return func(m *Model) {
		m.rnd = rnd
	}
}

type observerCtxKey struct{}

// WithEventObserver returns a context that delivers retry events for the
// round trips issued under it, in addition to the model's own EventFunc.
// The model is usually shared and long-lived while the observer is scoped
// to one run, so the observer travels with the call rather than the model.
func WithEventObserver(ctx context.Context, f EventFunc) context.Context {
	return context.WithValue(ctx, observerCtxKey{}, f)
}

func eventObserver(ctx context.Context) EventFunc {
	f, _ := ctx.Value(observerCtxKey{}).(EventFunc)
	return f
}

// NewModel wraps the inner model with the policy. A nil policy means the
// default policy.
func NewModel(inner llms.Model, policy *Policy, opts ...Option) *Model {
	if policy == nil {
		policy = DefaultPolicy()
	}
	m := &Model{
		inner:  inner,
		policy: policy,
		hints:  RetryAfterHint{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetName implements the llms.Model interface.
func (m *Model) GetName() string {
	return m.inner.GetName()
}

// GetProviderType implements the llms.Model interface.
func (m *Model) GetProviderType() llms.ProviderType {
	return m.inner.GetProviderType()
}

// GenerateContent implements the llms.Model interface. Attempt 0 is the
// first try; transient failures are retried up to the policy's maximum,
// fatal failures propagate immediately, and when attempts are exhausted
// the last classified failure is returned.
func (m *Model) GenerateContent(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
	modelName := m.inner.GetName()

	for attempt := 0; ; attempt++ {
		resp, err := m.inner.GenerateContent(ctx, messages, options...)
		if err == nil {
			return resp, nil
		}

		classified := llmerrors.Classify(err)
		if !classified.IsRetryable() {
			return nil, classified
		}
		if attempt >= m.policy.MaxRetries {
			return nil, errors.WithMessagef(classified, "retries exhausted after %d attempts", attempt+1)
		}

		delay := m.policy.Jitter(m.policy.BackoffDelay(attempt), m.rnd)
		if hint := m.retryAfterHint(classified); hint > delay {
			delay = hint
		}

		metricskey.StatsRoundTripsRetried.IncrCounter(1, modelName, classified.Type.String())
		logger.ContextKV(ctx, xlog.WARNING,
			"model", modelName,
			"status", "retrying_round_trip",
			"attempt", attempt,
			"delay", delay.String(),
			"reason", classified.Type.String(),
		)
		ev := Event{
			Attempt: attempt,
			Delay:   delay,
			Reason:  classified.Type,
			Err:     classified,
		}
		if m.onEvent != nil {
			m.onEvent(ev)
		}
		if observer := eventObserver(ctx); observer != nil {
			observer(ev)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "retry wait interrupted")
		}
	}
}

// retryAfterHint returns the provider-supplied wait hint, preferring the
// value already parsed into the classified error over the raw headers.
func (m *Model) retryAfterHint(ce *llmerrors.Error) time.Duration {
	if ce.RetryAfter > 0 {
		return ce.RetryAfter
	}
	if m.hints != nil && ce.Header != nil {
		if d, ok := m.hints.Extract(ce.Header); ok {
			return d
		}
	}
	return 0
}
