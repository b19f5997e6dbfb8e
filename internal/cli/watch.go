package cli

import (
	"context"
	"time"

	"resumeradar/internal/analysis"
	"resumeradar/internal/common"
	"resumeradar/internal/errors"
	"resumeradar/internal/observability"
	"resumeradar/internal/rules"
	"resumeradar/internal/session"
	"resumeradar/internal/watch"

	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var out common.CommandConfig
	cmd := &cobra.Command{
		Use:   "watch <resume-file>",
		Short: "Re-run the report whenever the resume file changes",
		Long: `Watch a resume file and print a fresh report after each edit settles.
A run that is overtaken by a newer edit before it finishes is discarded,
so only the report for the latest saved version is printed.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			return prepareOutput(cfg, &out)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], out)
		},
	}
	addOutputFlags(cmd, &out)
	return cmd
}

func runWatch(cmd *cobra.Command, path string, out common.CommandConfig) error {
	ctx := cmd.Context()
	cfg, logger, err := commandEnv(cmd)
	if err != nil {
		return err
	}
	persona, err := resolvePersona(cmd, cfg)
	if err != nil {
		return err
	}

	om, err := observability.NewObservabilityManager(cfg.Observability, Version, logger)
	if err != nil {
		return err
	}
	defer shutdownObservability(om, logger)
	metrics := om.Metrics()

	engine, _, _, err := buildEngine(ctx, cfg, logger, rules.WithFetchObserver(metrics.RecordTrendFeedFetch))
	if err != nil {
		return err
	}

	files := common.NewFileProcessor(logger, cfg.App.MaxFileSize)
	output := common.NewOutputHandler(logger, out)
	tracer := om.Tracer("resumeradar.watch")

	runner := watch.NewRunner(
		files.ReadFile,
		func(ctx context.Context, text string) (analysis.Report, error) {
			return metrics.TrackAnalysis(ctx, tracer, "watch", persona,
				func(context.Context) (analysis.Report, error) {
					return engine.Report(text, persona, analysis.IncludeAll)
				})
		},
		func(gen session.Generation, report analysis.Report) error {
			logger.Debug("Report updated", "generation", gen, "status", report.Status)
			return output.HandleOutput(report, out)
		},
		logger,
		watch.WithStaleHook(func(ctx context.Context, _ session.Generation) {
			metrics.RecordStaleResult(ctx, "watch")
		}),
	)

	watcher, err := watch.NewFileWatcher(path, cfg.Watch.DebounceDelay, logger)
	if err != nil {
		return err
	}

	runner.Trigger(ctx, path)
	err = watcher.Run(ctx, func(ctx context.Context) {
		runner.Trigger(ctx, path)
	})
	runner.Wait()
	return err
}

func shutdownObservability(om *observability.ObservabilityManager, logger *errors.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := om.Shutdown(ctx); err != nil {
		logger.LogError(err, "Failed to shutdown observability")
	}
}
