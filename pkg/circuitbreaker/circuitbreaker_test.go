package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTestError = errors.New("test error")

func TestCircuitBreaker_ClosedState_Success(t *testing.T) {
	cfg := DefaultConfig()
	cb := New(cfg)

	ctx := context.Background()
	err := cb.Execute(ctx, func() error {
		return nil
	})

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Errorf("Expected state Closed, got: %v", cb.GetState())
	}
}

func TestCircuitBreaker_ClosedState_Failure(t *testing.T) {
	cfg := DefaultConfig()
	cb := New(cfg)

	ctx := context.Background()
	err := cb.Execute(ctx, func() error {
		return errTestError
	})

	if err == nil {
		t.Error("Expected error, got nil")
	}
	if cb.GetState() != StateClosed {
		t.Errorf("Expected state Closed, got: %v", cb.GetState())
	}

	stats := cb.GetStats()
	if stats.FailureCount != 1 {
		t.Errorf("Expected failure count 1, got: %d", stats.FailureCount)
	}
}

func TestCircuitBreaker_OpenState_RejectsRequests(t *testing.T) {
	cfg := Config{
		FailureThreshold:    2,
		SuccessThreshold:    2,
		Timeout:             100 * time.Millisecond,
		MaxRequestsHalfOpen: 3,
	}
	cb := New(cfg)

	ctx := context.Background()

	// Cause failures to open circuit
	for i := 0; i < 2; i++ {
		_ = cb.Execute(ctx, func() error {
			return errTestError
		})
	}

	if cb.GetState() != StateOpen {
		t.Errorf("Expected state Open, got: %v", cb.GetState())
	}

	// Requests should be rejected
	err := cb.Execute(ctx, func() error {
		return nil
	})

	if err == nil {
		t.Error("Expected error (circuit open), got nil")
	}
}

func TestCircuitBreaker_HalfOpenState_TransitionToClosed(t *testing.T) {
	cfg := Config{
		FailureThreshold:    2,
		SuccessThreshold:    2,
		Timeout:             50 * time.Millisecond,
		MaxRequestsHalfOpen: 3,
	}
	cb := New(cfg)

	ctx := context.Background()

	// Open the circuit
	for i := 0; i < 2; i++ {
		_ = cb.Execute(ctx, func() error {
			return errTestError
		})
	}

	if cb.GetState() != StateOpen {
		t.Fatalf("Expected state Open, got: %v", cb.GetState())
	}

	// Wait for timeout to transition to half-open
	time.Sleep(60 * time.Millisecond)

	// Two successes should close the circuit
	for i := 0; i < 2; i++ {
		if err := cb.Execute(ctx, func() error { return nil }); err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}
	}

	if cb.GetState() != StateClosed {
		t.Errorf("Expected state Closed, got: %v", cb.GetState())
	}
}

func TestCircuitBreaker_HalfOpenState_FailureReopens(t *testing.T) {
	cfg := Config{
		FailureThreshold:    2,
		SuccessThreshold:    2,
		Timeout:             50 * time.Millisecond,
		MaxRequestsHalfOpen: 3,
	}
	cb := New(cfg)

	ctx := context.Background()

	// Open the circuit
	for i := 0; i < 2; i++ {
		_ = cb.Execute(ctx, func() error {
			return errTestError
		})
	}

	// Wait for timeout
	time.Sleep(60 * time.Millisecond)

	// Failure in half-open should reopen circuit
	err := cb.Execute(ctx, func() error {
		return errTestError
	})

	if err == nil {
		t.Error("Expected error, got nil")
	}
	if cb.GetState() != StateOpen {
		t.Errorf("Expected state Open, got: %v", cb.GetState())
	}
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cfg := Config{
		FailureThreshold:    2,
		SuccessThreshold:    2,
		Timeout:             100 * time.Millisecond,
		MaxRequestsHalfOpen: 3,
	}
	cb := New(cfg)

	ctx := context.Background()

	// Open the circuit
	for i := 0; i < 2; i++ {
		_ = cb.Execute(ctx, func() error {
			return errTestError
		})
	}

	if cb.GetState() != StateOpen {
		t.Fatalf("Expected state Open, got: %v", cb.GetState())
	}

	cb.Reset()

	if cb.GetState() != StateClosed {
		t.Errorf("Expected state Closed after reset, got: %v", cb.GetState())
	}

	stats := cb.GetStats()
	if stats.FailureCount != 0 {
		t.Errorf("Expected failure count 0 after reset, got: %d", stats.FailureCount)
	}
}
