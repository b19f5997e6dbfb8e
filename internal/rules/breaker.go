package rules

import (
	"resumeradar/internal/analysis"
	"resumeradar/internal/config"
	"resumeradar/internal/errors"

	"github.com/sony/gobreaker/v2"
)

// FeedBreaker guards trend feed fetches. A nil FeedBreaker passes calls straight through
type FeedBreaker struct {
	cb *gobreaker.CircuitBreaker[[]analysis.TrendEntry]
}

// NewFeedBreaker returns nil when the breaker is disabled
func NewFeedBreaker(cfg config.CircuitBreakerConfig, logger *errors.Logger) *FeedBreaker {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        "trend-feed",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
				"failure_threshold", cfg.FailureThreshold)
		},
	}

	return &FeedBreaker{cb: gobreaker.NewCircuitBreaker[[]analysis.TrendEntry](settings)}
}

// Execute runs fn under the breaker
func (b *FeedBreaker) Execute(fn func() ([]analysis.TrendEntry, error)) ([]analysis.TrendEntry, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// GetStats returns circuit breaker statistics
func (b *FeedBreaker) GetStats() map[string]any {
	if b == nil || b.cb == nil {
		return map[string]any{"enabled": false}
	}
	return map[string]any{
		"name":    b.cb.Name(),
		"state":   b.cb.State().String(),
		"counts":  b.cb.Counts(),
		"enabled": true,
	}
}

// IsHealthy reports whether the breaker is closed
func (b *FeedBreaker) IsHealthy() bool {
	if b == nil || b.cb == nil {
		return true
	}
	return b.cb.State() == gobreaker.StateClosed
}
