package translate

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerProvider wraps a Provider with a circuit breaker. After a run of
// consecutive failures the breaker opens and further batches fail fast with
// ErrOpenState instead of hammering a dead backend until the quota is gone.
type BreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps provider with a circuit breaker that trips after
// three consecutive failures.
func NewBreakerProvider(provider Provider) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:    provider.Name(),
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}

	return &BreakerProvider{
		provider: provider,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

// Translate executes the wrapped provider call through the breaker
func (b *BreakerProvider) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.provider.Translate(ctx, texts, targetLang)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			return nil, fmt.Errorf("translation backend %s unavailable (circuit open after repeated failures)", b.provider.Name())
		}
		return nil, err
	}
	return result.([]string), nil
}

// Name returns the wrapped provider name
func (b *BreakerProvider) Name() string {
	return b.provider.Name()
}

// IsAvailable checks the wrapped provider
func (b *BreakerProvider) IsAvailable() error {
	return b.provider.IsAvailable()
}
