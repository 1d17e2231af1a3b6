package llmerrors_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentexec/pkg/llms/llmerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FromStatus(t *testing.T) {
	tcases := []struct {
		status    int
		exp       llmerrors.ErrorType
		retryable bool
	}{
		{http.StatusTooManyRequests, llmerrors.TypeRateLimit, true},
		{http.StatusInternalServerError, llmerrors.TypeServer, true},
		{http.StatusBadGateway, llmerrors.TypeServer, true},
		{http.StatusServiceUnavailable, llmerrors.TypeServer, true},
		{http.StatusUnauthorized, llmerrors.TypeAuth, false},
		{http.StatusForbidden, llmerrors.TypeAuth, false},
		{http.StatusBadRequest, llmerrors.TypeBadRequest, false},
		{http.StatusNotFound, llmerrors.TypeBadRequest, false},
		{0, llmerrors.TypeUnknown, false},
	}
	for _, tc := range tcases {
		t.Run(tc.exp.String(), func(t *testing.T) {
			e := llmerrors.FromStatus(tc.status, http.Header{}, errors.New("upstream"))
			assert.Equal(t, tc.exp, e.Type)
			assert.Equal(t, tc.retryable, e.IsRetryable())
			assert.Equal(t, tc.status, e.StatusCode)
		})
	}
}

func Test_FromStatus_RetryAfter(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "7")
	e := llmerrors.FromStatus(http.StatusTooManyRequests, header, nil)
	assert.Equal(t, 7*time.Second, e.RetryAfter)

	header.Set("Retry-After", "bogus")
	e = llmerrors.FromStatus(http.StatusTooManyRequests, header, nil)
	assert.Equal(t, time.Duration(0), e.RetryAfter)
}

func Test_Classify(t *testing.T) {
	tcases := []struct {
		name string
		err  error
		exp  llmerrors.ErrorType
	}{
		{"rate_limited", errors.New("429: rate limit exceeded"), llmerrors.TypeRateLimit},
		{"quota", errors.New("quota exceeded for this billing period"), llmerrors.TypeRateLimit},
		{"overloaded", errors.New("the server is overloaded"), llmerrors.TypeServer},
		{"timeout", errors.New("request timeout"), llmerrors.TypeServer},
		{"gateway", errors.New("received 502 from upstream"), llmerrors.TypeServer},
		{"auth", errors.New("invalid api key"), llmerrors.TypeAuth},
		{"unknown", errors.New("something odd"), llmerrors.TypeUnknown},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			e := llmerrors.Classify(tc.err)
			require.NotNil(t, e)
			assert.Equal(t, tc.exp, e.Type)
		})
	}
}

func Test_Classify_Passthrough(t *testing.T) {
	orig := llmerrors.New(llmerrors.TypeRateLimit, "slow down")
	wrapped := errors.WithMessage(orig, "call failed")
	assert.Same(t, orig, llmerrors.Classify(wrapped))
	assert.Nil(t, llmerrors.Classify(nil))
}

func Test_Classify_ContextErrors_NotRetryable(t *testing.T) {
	e := llmerrors.Classify(context.Canceled)
	assert.False(t, e.IsRetryable())

	e = llmerrors.Classify(context.DeadlineExceeded)
	assert.False(t, e.IsRetryable())
}

func Test_Is_TypeOf(t *testing.T) {
	err := errors.WithMessage(llmerrors.New(llmerrors.TypeAuth, "denied"), "wrapped")
	assert.True(t, llmerrors.Is(err, llmerrors.TypeAuth))
	assert.False(t, llmerrors.Is(err, llmerrors.TypeServer))
	assert.Equal(t, llmerrors.TypeAuth, llmerrors.TypeOf(err))
	assert.Equal(t, llmerrors.TypeUnknown, llmerrors.TypeOf(errors.New("plain")))
}
