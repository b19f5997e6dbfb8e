package observability

import (
	"context"
	"fmt"
	"time"

	"resumeradar/internal/analysis"
	"resumeradar/internal/config"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Analysis outcomes recorded on resumeradar_analyses_total
const (
	OutcomeAnalyzed   = "analyzed"
	OutcomeNoAnalysis = "no_analysis"
	OutcomeError      = "error"
)

// Metrics holds the application metrics. A nil *Metrics records nothing
type Metrics struct {
	toggles config.CustomMetricsConfig

	// Analysis metrics
	AnalysisDuration metric.Float64Histogram
	AnalysisCount    metric.Int64Counter
	OverallScore     metric.Int64Histogram
	SuggestionCount  metric.Int64Counter

	// Session metrics
	SuggestionsApplied metric.Int64Counter
	StaleResults       metric.Int64Counter

	// Infrastructure metrics
	TrendFeedFetches metric.Int64Counter
	RateLimitHits    metric.Int64Counter
}

// NewMetrics creates every instrument on meter
func NewMetrics(meter metric.Meter, toggles config.CustomMetricsConfig) (*Metrics, error) {
	m := &Metrics{toggles: toggles}
	var err error

	if m.AnalysisDuration, err = meter.Float64Histogram(
		"resumeradar_analysis_duration_seconds",
		metric.WithDescription("Time spent scoring a resume and generating suggestions"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create analysis duration metric: %w", err)
	}

	if m.AnalysisCount, err = meter.Int64Counter(
		"resumeradar_analyses_total",
		metric.WithDescription("Total number of analysis requests by outcome"),
	); err != nil {
		return nil, fmt.Errorf("failed to create analysis count metric: %w", err)
	}

	if m.OverallScore, err = meter.Int64Histogram(
		"resumeradar_overall_score",
		metric.WithDescription("Distribution of overall resume scores"),
		metric.WithExplicitBucketBoundaries(25, 50, 75, 90, 100),
	); err != nil {
		return nil, fmt.Errorf("failed to create overall score metric: %w", err)
	}

	if m.SuggestionCount, err = meter.Int64Counter(
		"resumeradar_suggestions_total",
		metric.WithDescription("Total number of suggestions generated by type"),
	); err != nil {
		return nil, fmt.Errorf("failed to create suggestion count metric: %w", err)
	}

	if m.SuggestionsApplied, err = meter.Int64Counter(
		"resumeradar_suggestions_applied_total",
		metric.WithDescription("Total number of suggestions marked as applied"),
	); err != nil {
		return nil, fmt.Errorf("failed to create suggestions applied metric: %w", err)
	}

	if m.StaleResults, err = meter.Int64Counter(
		"resumeradar_stale_results_total",
		metric.WithDescription("Analysis results discarded because a newer run was issued"),
	); err != nil {
		return nil, fmt.Errorf("failed to create stale results metric: %w", err)
	}

	if m.TrendFeedFetches, err = meter.Int64Counter(
		"resumeradar_trend_feed_fetches_total",
		metric.WithDescription("Trend feed fetches by outcome"),
	); err != nil {
		return nil, fmt.Errorf("failed to create trend feed metric: %w", err)
	}

	if m.RateLimitHits, err = meter.Int64Counter(
		"resumeradar_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	); err != nil {
		return nil, fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return m, nil
}

// TrackAnalysis runs fn inside a span and records its outcome, duration and scores
func (m *Metrics) TrackAnalysis(ctx context.Context, tracer oteltrace.Tracer, operation string, persona analysis.PersonaID,
	fn func(context.Context) (analysis.Report, error)) (analysis.Report, error) {
	ctx, span := tracer.Start(ctx, "analysis."+operation)
	defer span.End()

	start := time.Now()
	report, err := fn(ctx)
	duration := time.Since(start).Seconds()

	outcome := OutcomeAnalyzed
	switch {
	case err != nil:
		outcome = OutcomeError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case report.Status == analysis.StatusNoAnalysis:
		outcome = OutcomeNoAnalysis
	}

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.String("persona", string(persona)),
		attribute.String("outcome", outcome),
	}
	span.SetAttributes(attrs...)
	if report.Analysis != nil {
		span.SetAttributes(
			attribute.Int("resume.words", report.Analysis.WordCount),
			attribute.Int("score.overall", report.Analysis.Overall.Score),
			attribute.String("score.band", string(report.Analysis.Overall.Band)),
		)
	}
	span.SetAttributes(attribute.Int("suggestions", len(report.Suggestions)))

	if m.analysisEnabled() {
		m.recordAnalysis(ctx, attrs, duration, report)
	}
	return report, err
}

func (m *Metrics) analysisEnabled() bool {
	return m != nil && m.toggles.Analysis.Enabled
}

func (m *Metrics) recordAnalysis(ctx context.Context, attrs []attribute.KeyValue, duration float64, report analysis.Report) {
	m.AnalysisCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	if m.toggles.Analysis.TrackDuration {
		m.AnalysisDuration.Record(ctx, duration, metric.WithAttributes(attrs[:1]...))
	}
	if m.toggles.Analysis.TrackScores && report.Analysis != nil {
		m.OverallScore.Record(ctx, int64(report.Analysis.Overall.Score),
			metric.WithAttributes(attribute.String("band", string(report.Analysis.Overall.Band))))
	}
	for _, s := range report.Suggestions {
		m.SuggestionCount.Add(ctx, 1, metric.WithAttributes(attribute.String("type", string(s.Type))))
	}
}

// RecordSuggestionApplied counts a newly applied suggestion
func (m *Metrics) RecordSuggestionApplied(ctx context.Context, suggestionID string) {
	if m == nil || !m.toggles.Sessions.Enabled {
		return
	}
	m.SuggestionsApplied.Add(ctx, 1, metric.WithAttributes(attribute.String("suggestion_id", suggestionID)))
}

// RecordStaleResult counts a result discarded in favor of a newer run
func (m *Metrics) RecordStaleResult(ctx context.Context, source string) {
	if m == nil || !m.toggles.Sessions.Enabled {
		return
	}
	m.StaleResults.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordTrendFeedFetch counts a trend feed fetch by outcome
func (m *Metrics) RecordTrendFeedFetch(ctx context.Context, outcome string) {
	if m == nil || !m.toggles.Infrastructure.Enabled || !m.toggles.Infrastructure.TrackTrendFeed {
		return
	}
	m.TrendFeedFetches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordRateLimitHit counts a rejected request
func (m *Metrics) RecordRateLimitHit(ctx context.Context, limitedBy string) {
	if m == nil || !m.toggles.Infrastructure.Enabled || !m.toggles.Infrastructure.TrackRateLimits {
		return
	}
	m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attribute.String("limited_by", limitedBy)))
}
