package backoff

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelay_Bounds(t *testing.T) {
	for attempt := 0; attempt < 12; attempt++ {
		ceiling := time.Minute
		if attempt < 6 {
			ceiling = time.Second << uint(attempt)
		}
		for i := 0; i < 50; i++ {
			d := Delay(attempt)
			assert.GreaterOrEqual(t, d, time.Duration(0))
			assert.LessOrEqual(t, d, ceiling, "attempt %d", attempt)
		}
	}
}

func TestDelay_CapsAtOneMinute(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.LessOrEqual(t, Delay(40), time.Minute)
	}
}

func TestDelay_NegativeAttempt(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.LessOrEqual(t, Delay(-1), time.Second)
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(http.StatusRequestTimeout))
	assert.True(t, Retryable(http.StatusTooManyRequests))
	assert.True(t, Retryable(http.StatusInternalServerError))
	assert.True(t, Retryable(http.StatusServiceUnavailable))

	assert.False(t, Retryable(http.StatusOK))
	assert.False(t, Retryable(http.StatusBadRequest))
	assert.False(t, Retryable(http.StatusUnauthorized))
	assert.False(t, Retryable(http.StatusNotFound))
	assert.False(t, Retryable(http.StatusConflict))
}
