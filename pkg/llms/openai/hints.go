package openai

import (
	"net/http"
	"time"

	"github.com/effective-security/agentexec/pkg/llms/retry"
)

// RateLimitHint extracts retry timing from OpenAI rate limit headers.
// The reset headers carry Go style durations such as "1s" or "6m12s".
type RateLimitHint struct{}

var _ retry.HintExtractor = (*RateLimitHint)(nil)

func (RateLimitHint) Extract(header http.Header) (time.Duration, bool) {
	if header == nil {
		return 0, false
	}
	for _, name := range []string{
		"x-ratelimit-reset-requests",
		"x-ratelimit-reset-tokens",
	} {
		if v := header.Get(name); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				return d, true
			}
		}
	}
	return retry.RetryAfterHint{}.Extract(header)
}
