package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resumeradar/internal/analysis"
	"resumeradar/internal/config"
	"resumeradar/internal/errors"
	"resumeradar/internal/observability"
	"resumeradar/internal/rules"
	"resumeradar/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Experience
I worked on backend services using python and docker for several product teams.
Built internal tooling for deployments and maintained the build pipeline.

Education
BSc Computer Science, State University`

func newTestServer(t *testing.T, mutate func(*ServerConfig)) *httptest.Server {
	t.Helper()
	logger := errors.NewLoggerTo(io.Discard, slog.LevelError)

	cfg := ServerConfig{
		Host:           "localhost",
		Port:           "0",
		Version:        "test",
		TLSConfig:      config.TLSConfig{Mode: "disabled"},
		MaxRequestSize: 64 * 1024,
		MaxSessions:    16,
		DefaultPersona: analysis.PersonaFAANG,
		Matcher:        "substring",
	}
	if mutate != nil {
		mutate(&cfg)
	}

	srv, err := NewServer(cfg, Analysis{
		Engine: analysis.NewEngine(analysis.DefaultRules()),
		Source: rules.Source{Trends: rules.TrendsBuiltin},
	}, logger)
	require.NoError(t, err)
	t.Cleanup(srv.cleanupRateLimiter)

	om, err := observability.NewObservabilityManager(config.ObservabilityConfig{Enabled: false}, "test", logger)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler(om))
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any, headers ...string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestReportEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := postJSON(t, ts.URL+"/report", types.AnalyzeRequest{Text: sampleResume, Persona: "startup"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[types.ReportResponse](t, resp)
	assert.Equal(t, analysis.StatusAnalyzed, got.Status)
	assert.Equal(t, analysis.PersonaStartup, got.Persona)
	require.NotNil(t, got.Analysis)
	assert.Len(t, got.Analysis.Categories, 4)
	require.NotEmpty(t, got.Suggestions)
	assert.Equal(t, "metrics", got.Suggestions[0].ID)
	assert.Equal(t, "structure", got.Suggestions[len(got.Suggestions)-1].ID)
	assert.Empty(t, got.SessionID)
}

func TestAnalyzeAndSuggestionsSelectParts(t *testing.T) {
	ts := newTestServer(t, nil)

	scores := decode[types.ReportResponse](t, postJSON(t, ts.URL+"/analyze", types.AnalyzeRequest{Text: sampleResume}))
	assert.NotNil(t, scores.Analysis)
	assert.Empty(t, scores.Suggestions)
	assert.Equal(t, analysis.PersonaFAANG, scores.Persona)

	suggestions := decode[types.ReportResponse](t, postJSON(t, ts.URL+"/suggestions", types.AnalyzeRequest{Text: sampleResume}))
	assert.Nil(t, suggestions.Analysis)
	assert.NotEmpty(t, suggestions.Suggestions)
}

func TestShortTextIsNoAnalysis(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := postJSON(t, ts.URL+"/analyze", types.AnalyzeRequest{Text: "  Jane Doe, engineer  "})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[types.ReportResponse](t, resp)
	assert.Equal(t, analysis.StatusNoAnalysis, got.Status)
	assert.Nil(t, got.Analysis)
	require.NotNil(t, got.NoAnalysis)
	assert.Equal(t, len("Jane Doe, engineer"), got.NoAnalysis.Chars)
	assert.Equal(t, analysis.MinAnalyzableChars, got.NoAnalysis.MinChars)
}

func TestRequestErrors(t *testing.T) {
	ts := newTestServer(t, func(c *ServerConfig) { c.MaxRequestSize = 512 })

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantCode    string
	}{
		{"unknown persona", "application/json", `{"text":"x","persona":"nasa"}`, http.StatusBadRequest, errors.ErrCodeUnknownPersona},
		{"wrong content type", "text/plain", `{"text":"x"}`, http.StatusBadRequest, errors.ErrCodeInvalidRequest},
		{"malformed json", "application/json", `{"text":`, http.StatusBadRequest, errors.ErrCodeInvalidRequest},
		{"body too large", "application/json", `{"text":"` + strings.Repeat("a", 2048) + `"}`, http.StatusRequestEntityTooLarge, errors.ErrCodeRequestTooLarge},
		{"unknown session", "application/json", `{"text":"x","sessionId":"nope"}`, http.StatusNotFound, errors.ErrCodeSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/report", tt.contentType, strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			got := decode[types.ErrorResponse](t, resp)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.NotEmpty(t, got.Error)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/report")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAuthMiddleware(t *testing.T) {
	ts := newTestServer(t, func(c *ServerConfig) { c.APIKeys = []string{"secret-key-123"} })
	body := types.AnalyzeRequest{Text: sampleResume}

	tests := []struct {
		name       string
		headers    []string
		wantStatus int
	}{
		{"missing key", nil, http.StatusUnauthorized},
		{"invalid key", []string{"X-API-Key", "wrong"}, http.StatusUnauthorized},
		{"header key", []string{"X-API-Key", "secret-key-123"}, http.StatusOK},
		{"bearer token", []string{"Authorization", "Bearer secret-key-123"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/analyze", body, tt.headers...)
			resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	// health stays public
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimitMiddleware(t *testing.T) {
	ts := newTestServer(t, func(c *ServerConfig) {
		c.RateLimit = &config.RateLimitConfig{Enabled: true, RequestsPerMin: 1, BurstCapacity: 1, ByIP: true}
	})
	body := types.AnalyzeRequest{Text: sampleResume}

	first := postJSON(t, ts.URL+"/analyze", body)
	first.Body.Close()
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second := postJSON(t, ts.URL+"/analyze", body)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Equal(t, errors.ErrCodeRateLimited, decode[types.ErrorResponse](t, second).Code)

	// another client address gets its own bucket
	third := postJSON(t, ts.URL+"/analyze", body, "X-Forwarded-For", "203.0.113.7")
	third.Body.Close()
	assert.Equal(t, http.StatusOK, third.StatusCode)
}

func TestSessionFlow(t *testing.T) {
	ts := newTestServer(t, nil)

	created := postJSON(t, ts.URL+"/sessions", types.CreateSessionRequest{Persona: "enterprise"})
	require.Equal(t, http.StatusCreated, created.StatusCode)
	sess := decode[types.SessionView](t, created)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, analysis.PersonaEnterprise, sess.Persona)
	assert.Nil(t, sess.Latest)

	// persona falls back to the session's
	report := decode[types.ReportResponse](t, postJSON(t, ts.URL+"/report",
		types.AnalyzeRequest{Text: sampleResume, SessionID: sess.ID}))
	assert.Equal(t, analysis.PersonaEnterprise, report.Persona)
	assert.Equal(t, sess.ID, report.SessionID)
	assert.Equal(t, uint64(1), report.Generation)
	assert.False(t, report.Stale)

	applyURL := ts.URL + "/sessions/" + sess.ID + "/applied"
	applied := decode[types.ApplyResponse](t, postJSON(t, applyURL, types.ApplyRequest{SuggestionID: "metrics"}))
	assert.True(t, applied.Added)
	assert.Equal(t, []string{"metrics"}, applied.Applied)

	again := decode[types.ApplyResponse](t, postJSON(t, applyURL, types.ApplyRequest{SuggestionID: "metrics"}))
	assert.False(t, again.Added)

	unknown := postJSON(t, applyURL, types.ApplyRequest{SuggestionID: "not-a-suggestion"})
	assert.Equal(t, http.StatusConflict, unknown.StatusCode)
	assert.Equal(t, errors.ErrCodeUnknownSuggestion, decode[types.ErrorResponse](t, unknown).Code)

	resp, err := http.Get(ts.URL + "/sessions/" + sess.ID)
	require.NoError(t, err)
	view := decode[types.SessionView](t, resp)
	assert.Equal(t, []string{"metrics"}, view.Applied)
	assert.Equal(t, uint64(1), view.Generation)
	require.NotNil(t, view.Latest)
	assert.Equal(t, analysis.StatusAnalyzed, view.Latest.Status)

	resp, err = http.Get(ts.URL + "/sessions/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSupersededGenerationIsStale(t *testing.T) {
	ts := newTestServer(t, nil)
	sess := decode[types.SessionView](t, postJSON(t, ts.URL+"/sessions", types.CreateSessionRequest{}))
	assert.Equal(t, analysis.PersonaFAANG, sess.Persona)

	newer := decode[types.ReportResponse](t, postJSON(t, ts.URL+"/report",
		types.AnalyzeRequest{Text: sampleResume, SessionID: sess.ID, Generation: 5}))
	assert.False(t, newer.Stale)

	older := decode[types.ReportResponse](t, postJSON(t, ts.URL+"/report",
		types.AnalyzeRequest{Text: sampleResume + "\nProfessional Summary", SessionID: sess.ID, Generation: 3}))
	assert.True(t, older.Stale)
	assert.Equal(t, uint64(3), older.Generation)

	resp, err := http.Get(ts.URL + "/sessions/" + sess.ID)
	require.NoError(t, err)
	view := decode[types.SessionView](t, resp)
	assert.Equal(t, uint64(5), view.Generation)
	require.NotNil(t, view.Latest)
	// the kept report is the generation 5 one, which still lacks a summary
	assert.Equal(t, "structure", view.Latest.Suggestions[len(view.Latest.Suggestions)-1].ID)
}

func TestOutOfRangeGenerationIsRejected(t *testing.T) {
	ts := newTestServer(t, nil)
	sess := decode[types.SessionView](t, postJSON(t, ts.URL+"/sessions", types.CreateSessionRequest{}))

	resp := postJSON(t, ts.URL+"/report",
		types.AnalyzeRequest{Text: sampleResume, SessionID: sess.ID, Generation: math.MaxUint64})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeInvalidRequest, decode[types.ErrorResponse](t, resp).Code)

	// the session keeps accepting server-issued generations
	for want := uint64(1); want <= 3; want++ {
		report := decode[types.ReportResponse](t, postJSON(t, ts.URL+"/report",
			types.AnalyzeRequest{Text: sampleResume, SessionID: sess.ID}))
		assert.Equal(t, want, report.Generation)
		assert.False(t, report.Stale)
	}
}

func TestScoresOnlyRunKeepsSessionSuggestions(t *testing.T) {
	ts := newTestServer(t, nil)
	sess := decode[types.SessionView](t, postJSON(t, ts.URL+"/sessions", types.CreateSessionRequest{}))

	report := decode[types.ReportResponse](t, postJSON(t, ts.URL+"/report",
		types.AnalyzeRequest{Text: sampleResume, SessionID: sess.ID}))
	require.NotEmpty(t, report.Suggestions)

	scores := decode[types.ReportResponse](t, postJSON(t, ts.URL+"/analyze",
		types.AnalyzeRequest{Text: sampleResume, SessionID: sess.ID}))
	assert.NotNil(t, scores.Analysis)
	assert.Equal(t, sess.ID, scores.SessionID)
	assert.Zero(t, scores.Generation)
	assert.False(t, scores.Stale)

	applied := postJSON(t, ts.URL+"/sessions/"+sess.ID+"/applied", types.ApplyRequest{SuggestionID: "metrics"})
	assert.Equal(t, http.StatusOK, applied.StatusCode)
	applied.Body.Close()

	resp, err := http.Get(ts.URL + "/sessions/" + sess.ID)
	require.NoError(t, err)
	view := decode[types.SessionView](t, resp)
	assert.Equal(t, uint64(1), view.Generation)
	require.NotNil(t, view.Latest)
	assert.NotEmpty(t, view.Latest.Suggestions)
}

func TestCreateSessionRejectsUnknownPersona(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := postJSON(t, ts.URL+"/sessions", types.CreateSessionRequest{Persona: "government"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeUnknownPersona, decode[types.ErrorResponse](t, resp).Code)
}

func TestTablesAndStats(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/personas")
	require.NoError(t, err)
	personas := decode[types.PersonaList](t, resp)
	assert.Equal(t, analysis.PersonaFAANG, personas.Default)
	assert.Len(t, personas.Personas, 3)

	resp, err = http.Get(ts.URL + "/trends")
	require.NoError(t, err)
	trends := decode[types.TrendList](t, resp)
	assert.Equal(t, rules.TrendsBuiltin, trends.Source)
	assert.Equal(t, analysis.DefaultTrends(), trends.Trends)

	resp, err = http.Get(ts.URL + "/stats")
	require.NoError(t, err)
	stats := decode[map[string]any](t, resp)
	assert.Equal(t, "resumeradar", stats["service"])
	assert.Equal(t, map[string]any{"enabled": false}, stats["rate_limiting"])
	sessions, ok := stats["sessions"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 16, sessions["max"], 0)
}
