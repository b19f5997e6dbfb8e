package cli

import (
	"context"
	"fmt"

	"resumeradar/internal/analysis"
	"resumeradar/internal/common"
	"resumeradar/internal/config"
	"resumeradar/internal/errors"
	"resumeradar/internal/rules"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Define custom private types for context keys
type configKeyType struct{}
type loggerKeyType struct{}

var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "resumeradar",
		Short: "Score resumes and suggest improvements for a target employer",
		Long: `Resumeradar scores a resume on keywords, formatting, sections and length,
weighs the result for a target employer persona (faang, startup or enterprise)
and lists concrete, ordered suggestions for improving it.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("persona", "", "Target persona: faang, startup or enterprise (default from config)")

	root.AddCommand(
		newAnalysisCmd("score", "Score a resume by category", analysis.IncludeScores),
		newAnalysisCmd("suggest", "List improvement suggestions for a resume", analysis.IncludeSuggestions),
		newAnalysisCmd("report", "Score a resume and list suggestions", analysis.IncludeAll),
		newWatchCmd(),
		newPersonasCmd(),
		newTrendsCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line with cfg and logger available to every subcommand
func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	return execute(ctx, cfg, logger, nil)
}

func execute(ctx context.Context, cfg *config.Config, logger *errors.Logger, args []string) error {
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)

	root := newRootCmd()
	if args != nil {
		root.SetArgs(args)
	}
	return root.ExecuteContext(ctx)
}

func getConfigFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg, nil
	}
	return nil, errors.NewInternalError(errors.ErrCodeInvalidConfig, "config not found in context", nil)
}

func getLoggerFromContext(ctx context.Context) (*errors.Logger, error) {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger, nil
	}
	return nil, errors.NewInternalError(errors.ErrCodeInvalidConfig, "logger not found in context", nil)
}

// commandEnv is what every command pulls out of the context
func commandEnv(cmd *cobra.Command) (*config.Config, *errors.Logger, error) {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// resolvePersona returns the --persona flag, falling back to the configured default
func resolvePersona(cmd *cobra.Command, cfg *config.Config) (analysis.PersonaID, error) {
	raw, _ := cmd.Flags().GetString("persona")
	if raw == "" {
		raw = cfg.Analysis.DefaultPersona
	}
	return analysis.ParsePersona(raw)
}

// buildEngine loads the rule tables and builds the engine over them
func buildEngine(ctx context.Context, cfg *config.Config, logger *errors.Logger, opts ...rules.LoaderOption) (*analysis.Engine, rules.Source, *rules.Loader, error) {
	matcher, ok := analysis.MatcherByName(cfg.Analysis.Matcher)
	if !ok {
		return nil, rules.Source{}, nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unknown matcher %q", cfg.Analysis.Matcher), nil)
	}

	loader := rules.NewLoader(cfg.Analysis, logger, opts...)
	r, src, err := loader.Load(ctx)
	if err != nil {
		return nil, src, nil, err
	}
	return analysis.NewEngine(r, analysis.WithMatcher(matcher)), src, loader, nil
}

// addOutputFlags registers --format and -o/--output on cmd
func addOutputFlags(cmd *cobra.Command, out *common.CommandConfig) {
	cmd.Flags().StringVarP(&out.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&out.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

// prepareOutput fills defaults from config and validates the format
func prepareOutput(cfg *config.Config, out *common.CommandConfig) error {
	if out.OutputFormat == "" {
		out.OutputFormat = cfg.App.DefaultFormat
	}
	out.MaxFileSize = cfg.App.MaxFileSize
	out.Color = colorEnabled(cfg.App.Color)
	return common.ValidateOutputFormat(out.OutputFormat, cfg.App.SupportedFormats)
}

// colorEnabled resolves auto, always and never. Auto defers to fatih/color's terminal detection
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return !color.NoColor
	}
}
