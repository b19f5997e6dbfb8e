package watch

import (
	"context"
	"sync"

	"resumeradar/internal/analysis"
	"resumeradar/internal/errors"
	"resumeradar/internal/session"
)

// AnalyzeFunc produces a report from resume text
type AnalyzeFunc func(ctx context.Context, text string) (analysis.Report, error)

// EmitFunc receives each report that is still current when its run finishes
type EmitFunc func(gen session.Generation, report analysis.Report) error

// StaleFunc is told about runs whose results were discarded
type StaleFunc func(ctx context.Context, gen session.Generation)

// Runner re-analyzes a file on demand. Every run is tagged with a generation and only
// the result of the newest run is emitted; older runs finishing late are dropped
type Runner struct {
	read    func(path string) (string, error)
	analyze AnalyzeFunc
	emit    EmitFunc
	onStale StaleFunc
	logger  *errors.Logger

	latest session.Latest[analysis.Report]
	emitMu sync.Mutex
	wg     sync.WaitGroup
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithStaleHook registers a callback for discarded runs
func WithStaleHook(fn StaleFunc) RunnerOption {
	return func(r *Runner) { r.onStale = fn }
}

// NewRunner creates a runner
func NewRunner(read func(string) (string, error), analyze AnalyzeFunc, emit EmitFunc, logger *errors.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{read: read, analyze: analyze, emit: emit, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Trigger starts a new run for path and returns its generation
func (r *Runner) Trigger(ctx context.Context, path string) session.Generation {
	gen := r.latest.Begin()
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(ctx, path, gen)
	}()
	return gen
}

func (r *Runner) run(ctx context.Context, path string, gen session.Generation) {
	text, err := r.read(path)
	if err != nil {
		r.logger.LogError(err, "Failed to read resume", "file", path, "generation", gen)
		return
	}

	report, err := r.analyze(ctx, text)
	if err != nil {
		r.logger.LogError(err, "Analysis failed", "file", path, "generation", gen)
		return
	}

	// Commit and emit together so an older run can never print after a newer one
	r.emitMu.Lock()
	defer r.emitMu.Unlock()
	if !r.latest.Commit(gen, report) {
		r.logger.Debug("Discarding superseded result", "generation", gen)
		if r.onStale != nil {
			r.onStale(ctx, gen)
		}
		return
	}
	if err := r.emit(gen, report); err != nil {
		r.logger.LogError(err, "Failed to write report", "generation", gen)
	}
}

// Latest returns the last emitted report
func (r *Runner) Latest() (analysis.Report, session.Generation, bool) {
	return r.latest.Load()
}

// Wait blocks until every started run has finished
func (r *Runner) Wait() {
	r.wg.Wait()
}
