package anthropic

import (
	"net/http"
	"time"

	"github.com/effective-security/agentexec/pkg/llms/retry"
)

// RateLimitHint extracts retry timing from Anthropic rate limit headers.
// The reset headers carry RFC3339 timestamps.
type RateLimitHint struct{}

var _ retry.HintExtractor = (*RateLimitHint)(nil)

func (RateLimitHint) Extract(header http.Header) (time.Duration, bool) {
	if header == nil {
		return 0, false
	}
	for _, name := range []string{
		"anthropic-ratelimit-requests-reset",
		"anthropic-ratelimit-tokens-reset",
	} {
		if v := header.Get(name); v != "" {
			if ts, err := time.Parse(time.RFC3339, v); err == nil {
				if d := time.Until(ts); d > 0 {
					return d, true
				}
			}
		}
	}
	return retry.RetryAfterHint{}.Extract(header)
}
