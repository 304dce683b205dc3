package utils

import (
	"errors"
	"testing"
	"time"
)

func TestRetryEventualSuccess(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, Logger: NewLogger()}

	calls := 0
	err := r.Do("flaky op", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times; want 3", calls)
	}
}

func TestRetryExhausted(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, Logger: NewLogger()}

	sentinel := errors.New("still broken")
	calls := 0
	err := r.Do("doomed op", func() error {
		calls++
		return sentinel
	})
	if calls != 2 {
		t.Errorf("fn called %d times; want 2", calls)
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("Do returned %v; want the last attempt's error wrapped", err)
	}
}
