// Package backoff computes retry delays for transient request failures:
// exponential backoff with full jitter, capped at one minute. The delay for
// attempt n is drawn uniformly from [0, min(60s, 1s·2^n)].
package backoff

import (
	"math/rand/v2"
	"net/http"
	"time"
)

const (
	baseDelay = time.Second
	maxDelay  = time.Minute
)

// Delay returns the sleep duration before retry attempt n (0-based). The
// result is randomized on every call.
func Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	ceiling := maxDelay
	if attempt < 6 {
		ceiling = baseDelay << uint(attempt)
	}
	return time.Duration(rand.Int64N(int64(ceiling) + 1))
}

// Retryable reports whether an HTTP status code indicates a transient
// failure worth retrying: request timeout, rate limiting, or any server
// error.
func Retryable(status int) bool {
	switch {
	case status == http.StatusRequestTimeout:
		return true
	case status == http.StatusTooManyRequests:
		return true
	case status >= 500:
		return true
	default:
		return false
	}
}
