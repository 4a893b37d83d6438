package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	cases := map[string]ErrorType{
		"insufficient_quota":                     ErrorQuota,
		"rate limit exceeded":                    ErrorRate,
		"context too long":                       ErrorContext,
		"timeout":                                ErrorTransient,
		"bad request":                            ErrorPermanent,
		"error 401: unauthorized":                ErrorAuth,
		"service error 503: busy":                ErrorTransient,
		"failed to generate summary":             ErrorPermanent,
		"moderate load, request id 5012":         ErrorPermanent,
		"azure openai error 400: rate of change": ErrorPermanent,
		"azure openai error 429: slow down":      ErrorRate,
		"azure openai error 429: quota exceeded": ErrorQuota,
		"document poll error 502: bad gateway":   ErrorTransient,
		"document analyze error 403: forbidden":  ErrorAuth,
		"read tcp: connection reset by peer":     ErrorTransient,
	}
	for msg, want := range cases {
		assert.Equal(t, want, ClassifyError(errors.New(msg)), msg)
	}
}

func TestClassifyWrappedErrors(t *testing.T) {
	notConfigured := fmt.Errorf("%w: azure openai: %w", ErrUpstreamUnavailable, ErrNotConfigured)
	assert.Equal(t, ErrorConfig, ClassifyError(notConfigured))

	deadline := fmt.Errorf("%w: request failed: %w", ErrUpstreamUnavailable, context.DeadlineExceeded)
	assert.Equal(t, ErrorTransient, ClassifyError(deadline))

	badRequest := fmt.Errorf("%w: azure openai error 400: invalid payload", ErrUpstreamUnavailable)
	assert.Equal(t, ErrorPermanent, ClassifyError(badRequest))

	tooLong := fmt.Errorf("%w: azure openai error 400: {\"error\":{\"code\":\"context_length_exceeded\"}}", ErrUpstreamUnavailable)
	assert.Equal(t, ErrorContext, ClassifyError(tooLong))

	assert.Equal(t, ErrorType(""), ClassifyError(nil))
}
