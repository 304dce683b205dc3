package utils

import (
	"fmt"
	"time"
)

// RetryConfig holds the parameters for the retry strategy. MaxDelay caps
// the exponential growth; zero means BaseDelay * 16.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Logger      *Logger
}

// Do executes fn with exponential back-off retry logic. The wrapped error
// of the final attempt is returned when every attempt fails.
func (r *RetryConfig) Do(operationName string, fn func() error) error {
	maxDelay := r.MaxDelay
	if maxDelay == 0 {
		maxDelay = r.BaseDelay * 16
	}

	var lastErr error
	delay := r.BaseDelay

	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < r.MaxAttempts {
			r.Logger.Warn("[retry] %s failed (attempt %d/%d): %v — retrying in %v",
				operationName, attempt, r.MaxAttempts, lastErr, delay)
			time.Sleep(delay)
			delay *= 2
			if delay > maxDelay {
				delay = maxDelay
			}
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, r.MaxAttempts, lastErr)
}
