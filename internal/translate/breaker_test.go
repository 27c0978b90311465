package translate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codeberg.org/snonux/ziggurat/internal/testutil"
)

func TestBreakerProvider_PassesThrough(t *testing.T) {
	mock := &testutil.MockProvider{}
	breaker := NewBreakerProvider(mock)

	translated, err := breaker.Translate(context.Background(), []string{"hello"}, "de")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if translated[0] != "[de] hello" {
		t.Errorf("Expected wrapped provider result, got %q", translated[0])
	}
	if breaker.Name() != "mock" {
		t.Errorf("Expected wrapped provider name, got %q", breaker.Name())
	}
}

func TestBreakerProvider_TripsAfterConsecutiveFailures(t *testing.T) {
	mock := &testutil.MockProvider{Err: errors.New("backend down")}
	breaker := NewBreakerProvider(mock)

	for i := 0; i < 3; i++ {
		if _, err := breaker.Translate(context.Background(), []string{"hello"}, "de"); err == nil {
			t.Fatalf("Expected failure on call %d", i+1)
		}
	}
	if mock.CallCount() != 3 {
		t.Fatalf("Expected 3 provider calls before tripping, got %d", mock.CallCount())
	}

	// Fourth call fails fast without reaching the provider
	_, err := breaker.Translate(context.Background(), []string{"hello"}, "de")
	if err == nil {
		t.Fatal("Expected fail-fast error with an open circuit")
	}
	if !strings.Contains(err.Error(), "circuit open") {
		t.Errorf("Expected circuit-open error, got: %v", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("Expected no further provider calls, got %d", mock.CallCount())
	}
}
