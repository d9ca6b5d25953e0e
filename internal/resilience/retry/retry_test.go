package retry

import (
	"context"
	"errors"
	"net/http"
	"syscall"
	"testing"
	"time"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0,
	}
}

func TestWithBackoff_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("WithBackoff() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWithBackoff_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		if calls < 3 {
			return &HTTPError{StatusCode: http.StatusServiceUnavailable, Message: "unavailable"}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("WithBackoff() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestWithBackoff_ExhaustsAttempts(t *testing.T) {
	calls := 0
	wantErr := &HTTPError{StatusCode: http.StatusBadGateway, Message: "bad gateway"}

	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return wantErr
	})

	if err == nil {
		t.Fatal("WithBackoff() error = nil, want exhaustion error")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("error %v does not wrap the last failure", err)
	}
}

func TestWithBackoff_NonRetryableStopsImmediately(t *testing.T) {
	calls := 0
	permanent := errors.New("invalid api key")

	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return permanent
	})

	if !errors.Is(err, permanent) {
		t.Errorf("error = %v, want the permanent error unwrapped", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWithBackoff_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := fastConfig(5)
	cfg.InitialDelay = 100 * time.Millisecond

	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := WithBackoff(ctx, cfg, func() error {
		calls++
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "boom"}
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 before cancellation", calls)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "context canceled", err: context.Canceled, want: false},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: false},
		{name: "connection refused", err: syscall.ECONNREFUSED, want: true},
		{name: "connection reset", err: syscall.ECONNRESET, want: true},
		{name: "http 500", err: &HTTPError{StatusCode: 500}, want: true},
		{name: "http 503", err: &HTTPError{StatusCode: 503}, want: true},
		{name: "http 429", err: &HTTPError{StatusCode: 429}, want: true},
		{name: "http 408", err: &HTTPError{StatusCode: 408}, want: true},
		{name: "http 400", err: &HTTPError{StatusCode: 400}, want: false},
		{name: "http 404", err: &HTTPError{StatusCode: 404}, want: false},
		{name: "plain error", err: errors.New("parse failure"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestHTTPError_Error(t *testing.T) {
	err := &HTTPError{StatusCode: 503, Message: "service unavailable"}
	if got := err.Error(); got != "HTTP 503: service unavailable" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAddJitter(t *testing.T) {
	base := 100 * time.Millisecond

	if got := addJitter(base, 0); got != base {
		t.Errorf("addJitter with zero fraction = %v, want %v", got, base)
	}

	for i := 0; i < 10; i++ {
		got := addJitter(base, 0.5)
		if got < base || got > base+base/2 {
			t.Errorf("addJitter = %v, want within [%v, %v]", got, base, base+base/2)
		}
	}
}
