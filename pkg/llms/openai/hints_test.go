package openai_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/effective-security/agentexec/pkg/llms/openai"
	"github.com/stretchr/testify/assert"
)

func Test_RateLimitHint(t *testing.T) {
	hint := openai.RateLimitHint{}

	t.Run("nil header", func(t *testing.T) {
		_, ok := hint.Extract(nil)
		assert.False(t, ok)
	})

	t.Run("requests reset duration", func(t *testing.T) {
		h := http.Header{}
		h.Set("x-ratelimit-reset-requests", "1s")
		d, ok := hint.Extract(h)
		assert.True(t, ok)
		assert.Equal(t, time.Second, d)
	})

	t.Run("tokens reset duration", func(t *testing.T) {
		h := http.Header{}
		h.Set("x-ratelimit-reset-tokens", "6m12s")
		d, ok := hint.Extract(h)
		assert.True(t, ok)
		assert.Equal(t, 6*time.Minute+12*time.Second, d)
	})

	t.Run("requests preferred over tokens", func(t *testing.T) {
		h := http.Header{}
		h.Set("x-ratelimit-reset-requests", "2s")
		h.Set("x-ratelimit-reset-tokens", "90s")
		d, ok := hint.Extract(h)
		assert.True(t, ok)
		assert.Equal(t, 2*time.Second, d)
	})

	t.Run("falls back to Retry-After", func(t *testing.T) {
		h := http.Header{}
		h.Set("Retry-After", "3")
		d, ok := hint.Extract(h)
		assert.True(t, ok)
		assert.Equal(t, 3*time.Second, d)
	})

	t.Run("unparsable value", func(t *testing.T) {
		h := http.Header{}
		h.Set("x-ratelimit-reset-requests", "whenever")
		_, ok := hint.Extract(h)
		assert.False(t, ok)
	})
}
