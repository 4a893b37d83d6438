package providers

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrUpstreamUnavailable wraps every failure talking to an external
	// service: network, auth, quota, bad status or an unusable envelope.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrNotConfigured       = errors.New("credentials not configured")
)

type ErrorType string

const (
	ErrorConfig    ErrorType = "config"
	ErrorAuth      ErrorType = "auth"
	ErrorQuota     ErrorType = "quota"
	ErrorRate      ErrorType = "rate"
	ErrorTransient ErrorType = "transient"
	ErrorPermanent ErrorType = "permanent"
	ErrorContext   ErrorType = "context"
)

// statusPattern matches the "error <code>:" marker the clients put on
// non-2xx responses.
var statusPattern = regexp.MustCompile(`\berror (\d{3}):`)

func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotConfigured):
		return ErrorConfig
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrorTransient
	}
	e := strings.ToLower(strings.TrimPrefix(err.Error(), ErrUpstreamUnavailable.Error()+": "))
	if m := statusPattern.FindStringSubmatch(e); m != nil {
		code, _ := strconv.Atoi(m[1])
		return classifyStatus(code, e)
	}
	switch {
	case strings.Contains(e, "unauthorized"), strings.Contains(e, "access denied"):
		return ErrorAuth
	case strings.Contains(e, "insufficient_quota"), strings.Contains(e, "quota exceeded"):
		return ErrorQuota
	case strings.Contains(e, "rate limit"), strings.Contains(e, "too many requests"):
		return ErrorRate
	case strings.Contains(e, "context_length"), strings.Contains(e, "too long"):
		return ErrorContext
	case strings.Contains(e, "timeout"), strings.Contains(e, "temporarily"), strings.Contains(e, "unavailable"),
		strings.Contains(e, "connection refused"), strings.Contains(e, "connection reset"):
		return ErrorTransient
	default:
		return ErrorPermanent
	}
}

func classifyStatus(code int, body string) ErrorType {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrorAuth
	case code == http.StatusTooManyRequests:
		if strings.Contains(body, "quota") {
			return ErrorQuota
		}
		return ErrorRate
	case code == http.StatusRequestTimeout, code >= 500:
		return ErrorTransient
	case strings.Contains(body, "context_length"):
		return ErrorContext
	default:
		return ErrorPermanent
	}
}
