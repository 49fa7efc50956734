package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	var transitions []string
	b := NewCircuitBreaker(2, 5*time.Second, 1,
		WithClock(func() time.Time { return now }),
		OnStateChange(func(from, to CircuitState) { transitions = append(transitions, string(from)+">"+string(to)) }),
	)

	if err := b.admit(); err != nil {
		t.Fatalf("expected admit in closed state: %v", err)
	}

	b.settle(false)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.settle(false)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.admit(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected expired open circuit to report half-open, got %s", state)
	}
	if err := b.admit(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.admit(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be refused, got %v", err)
	}

	b.settle(true)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}

	want := []string{"closed>open", "open>half_open", "half_open>closed"}
	if len(transitions) != len(want) {
		t.Fatalf("unexpected transitions %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transition %d: want %s, got %s", i, want[i], transitions[i])
		}
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b := NewCircuitBreaker(1, time.Second, 1, WithClock(func() time.Time { return now }))

	b.settle(false)
	now = now.Add(2 * time.Second)
	if err := b.admit(); err != nil {
		t.Fatalf("expected probe to pass, got %v", err)
	}
	b.settle(false)

	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("failed probe must reopen, got %s", state)
	}
	if !b.openedAt.Equal(now) {
		t.Fatalf("reopen must restart the wait, openedAt=%s", b.openedAt)
	}
}

func TestCircuitBreaker_ExecuteTripsAfterThreshold(t *testing.T) {
	b := NewCircuitBreaker(2, time.Minute, 1)
	boom := errors.New("connection refused")
	calls := 0
	fail := func(context.Context) error {
		calls++
		return boom
	}

	for i := 0; i < 2; i++ {
		if err := b.Execute(context.Background(), fail); !errors.Is(err, boom) {
			t.Fatalf("attempt %d: expected dependency error, got %v", i+1, err)
		}
	}
	if err := b.Execute(context.Background(), fail); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("open breaker must not call through, calls=%d", calls)
	}
}

func TestCircuitBreaker_ExecuteIgnoresCancellation(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)

	err := b.Execute(context.Background(), func(context.Context) error { return context.Canceled })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation to surface, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("cancellation must not trip the breaker, got %s", state)
	}
}

func TestCircuitBreaker_NilPassesThrough(t *testing.T) {
	var b *CircuitBreaker
	called := false
	if err := b.Execute(context.Background(), func(context.Context) error { called = true; return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called || b.State() != CircuitStateClosed {
		t.Fatalf("nil breaker must call through and report closed")
	}
}

func TestFromConfig(t *testing.T) {
	if FromConfig(CircuitBreakerConfig{Enabled: false}) != nil {
		t.Fatalf("disabled config must yield nil breaker")
	}
	b := FromConfig(CircuitBreakerConfig{Enabled: true})
	if b == nil || b.failureThreshold != DefaultCircuitBreakerConfig().FailureThreshold {
		t.Fatalf("enabled config must be filled with defaults, got %+v", b)
	}
}

func TestCircuitBreakerConfig_Validate(t *testing.T) {
	valid := DefaultCircuitBreakerConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("default config must be valid: %v", err)
	}
	if err := (CircuitBreakerConfig{Enabled: false, FailureThreshold: -1}).Validate(); err != nil {
		t.Fatalf("disabled config must be valid: %v", err)
	}

	cases := map[string]CircuitBreakerConfig{
		"threshold": {Enabled: true, FailureThreshold: 0, OpenTimeout: time.Second, HalfOpenMaxReq: 1},
		"timeout":   {Enabled: true, FailureThreshold: 1, OpenTimeout: 0, HalfOpenMaxReq: 1},
		"half-open": {Enabled: true, FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenMaxReq: 0},
	}
	for name, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error for %+v", name, cfg)
		}
	}
}
