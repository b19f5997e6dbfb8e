package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"resumeradar/internal/analysis"
	"resumeradar/internal/config"
	"resumeradar/internal/errors"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxFeedBytes caps the trend feed response body
const maxFeedBytes = 1 << 20

// feedDocument is the wire shape served by a trend feed
type feedDocument struct {
	Trends []analysis.TrendEntry `json:"trends"`
}

// FeedClient fetches the remote trend table
type FeedClient struct {
	cfg     config.TrendFeedConfig
	http    *http.Client
	breaker *FeedBreaker
	logger  *errors.Logger
}

// NewFeedClient creates a feed client. A nil httpClient gets an instrumented default
// bounded by cfg.Timeout
func NewFeedClient(cfg config.TrendFeedConfig, httpClient *http.Client, logger *errors.Logger) *FeedClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &FeedClient{
		cfg:     cfg,
		http:    httpClient,
		breaker: NewFeedBreaker(cfg.CircuitBreaker, logger),
		logger:  logger,
	}
}

// Breaker exposes the client's circuit breaker for health reporting
func (c *FeedClient) Breaker() *FeedBreaker {
	return c.breaker
}

// Fetch downloads the trend table, retrying transient failures
func (c *FeedClient) Fetch(ctx context.Context) ([]analysis.TrendEntry, error) {
	return c.breaker.Execute(func() ([]analysis.TrendEntry, error) {
		return c.fetchWithRetry(ctx)
	})
}

func (c *FeedClient) fetchWithRetry(ctx context.Context) ([]analysis.TrendEntry, error) {
	var lastErr error
	delay := c.cfg.RetryDelay

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("Retrying trend feed fetch",
				"attempt", attempt,
				"max_retries", c.cfg.MaxRetries,
				"error", lastErr.Error())

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay = min(delay*2, 30*time.Second)
		}

		entries, err := c.fetchOnce(ctx)
		if err == nil {
			return entries, nil
		}
		lastErr = err

		if !isRetryable(err) {
			c.logger.Debug("Trend feed error is not retryable", "error", err.Error())
			break
		}
	}

	return nil, errors.NewNetworkError(errors.ErrCodeTrendFeedFailed,
		fmt.Sprintf("trend feed %s unavailable", c.cfg.URL), lastErr)
}

// statusError is a non-200 answer from the feed
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("trend feed returned HTTP %d", e.status)
}

func (c *FeedClient) fetchOnce(ctx context.Context) ([]analysis.TrendEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, &permanent{err}
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{status: resp.StatusCode}
	}

	var doc feedDocument
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxFeedBytes)).Decode(&doc); err != nil {
		return nil, &permanent{fmt.Errorf("decode trend feed: %w", err)}
	}
	if len(doc.Trends) == 0 {
		return nil, &permanent{fmt.Errorf("trend feed is empty")}
	}
	return doc.Trends, nil
}

// permanent marks errors that retrying cannot fix
type permanent struct{ err error }

func (p *permanent) Error() string { return p.err.Error() }
func (p *permanent) Unwrap() error { return p.err }

// isRetryable treats transport failures and overload statuses as transient
func isRetryable(err error) bool {
	switch e := err.(type) {
	case *permanent:
		return false
	case *statusError:
		return retryableStatus(e.status)
	}
	return true
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
