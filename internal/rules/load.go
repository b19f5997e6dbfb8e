package rules

import (
	"context"
	"net/http"
	"time"

	"resumeradar/internal/analysis"
	"resumeradar/internal/config"
	"resumeradar/internal/errors"
)

// Trend table origins reported in Source.Trends
const (
	TrendsBuiltin = "builtin"
	TrendsFile    = "file"
	TrendsFeed    = "feed"
)

// Feed fetch outcomes passed to a FetchObserver
const (
	FetchSuccess  = "success"
	FetchFallback = "fallback"
)

// Source records where the loaded tables came from
type Source struct {
	RulesFile string `json:"rulesFile,omitempty"`
	Trends    string `json:"trends"`
	FeedError string `json:"feedError,omitempty"`
}

// FetchObserver is told how each trend feed fetch ended
type FetchObserver func(ctx context.Context, outcome string)

// Loader assembles the Rules value handed to the engine
type Loader struct {
	cfg        config.AnalysisConfig
	logger     *errors.Logger
	httpClient *http.Client
	observe    FetchObserver
	feed       *FeedClient
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithHTTPClient sets the client used for the trend feed
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) { l.httpClient = c }
}

// WithFetchObserver registers a callback for trend feed outcomes
func WithFetchObserver(fn FetchObserver) LoaderOption {
	return func(l *Loader) { l.observe = fn }
}

// NewLoader creates a rules loader
func NewLoader(cfg config.AnalysisConfig, logger *errors.Logger, opts ...LoaderOption) *Loader {
	l := &Loader{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	if cfg.TrendFeed.Enabled {
		l.feed = NewFeedClient(cfg.TrendFeed, l.httpClient, logger)
	}
	return l
}

// FeedBreaker returns the trend feed breaker, nil when no feed is configured
func (l *Loader) FeedBreaker() *FeedBreaker {
	if l.feed == nil {
		return nil
	}
	return l.feed.Breaker()
}

// Load builds the rules: built-in tables, then the rules file, then the trend feed
// A rules file error is fatal. A trend feed error keeps the current trend table
func (l *Loader) Load(ctx context.Context) (analysis.Rules, Source, error) {
	r := analysis.DefaultRules()
	src := Source{Trends: TrendsBuiltin}

	if l.cfg.RulesFile != "" {
		loaded, err := LoadFile(l.cfg.RulesFile, r)
		if err != nil {
			l.logger.LogError(err, "Failed to load rules file", "path", l.cfg.RulesFile)
			return analysis.Rules{}, src, err
		}
		if !sameTrends(loaded.Trends, r.Trends) {
			src.Trends = TrendsFile
		}
		r = loaded
		src.RulesFile = l.cfg.RulesFile
		l.logger.Info("Rules file loaded", "path", l.cfg.RulesFile, "trends", len(r.Trends))
	}

	if l.feed != nil {
		trends, err := l.fetchTrends(ctx, r)
		if err != nil {
			l.logger.Warn("Trend feed unavailable, keeping current trend table",
				"url", l.cfg.TrendFeed.URL,
				"source", src.Trends,
				"error", err.Error())
			src.FeedError = err.Error()
			l.notify(ctx, FetchFallback)
		} else {
			r.Trends = trends
			src.Trends = TrendsFeed
			l.logger.Info("Trend feed loaded", "url", l.cfg.TrendFeed.URL, "trends", len(trends))
			l.notify(ctx, FetchSuccess)
		}
	}

	return r, src, nil
}

// fetchTrends fetches and validates the feed against the rest of r
func (l *Loader) fetchTrends(ctx context.Context, r analysis.Rules) ([]analysis.TrendEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, l.feedBudget())
	defer cancel()

	trends, err := l.feed.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	candidate := r.Clone()
	candidate.Trends = trends
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	return trends, nil
}

// feedBudget bounds the whole fetch including retries
func (l *Loader) feedBudget() time.Duration {
	tf := l.cfg.TrendFeed
	return tf.Timeout*time.Duration(tf.MaxRetries+1) + tf.RetryDelay*time.Duration(1<<tf.MaxRetries)
}

func (l *Loader) notify(ctx context.Context, outcome string) {
	if l.observe != nil {
		l.observe(ctx, outcome)
	}
}

func sameTrends(a, b []analysis.TrendEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
