package cli

import (
	"context"
	"fmt"

	"resumeradar/internal/analysis"
	"resumeradar/internal/common"

	"github.com/spf13/cobra"
)

// newAnalysisCmd builds score, suggest and report, which differ only in what they include
func newAnalysisCmd(name, short string, include analysis.Include) *cobra.Command {
	var out common.CommandConfig

	cmd := &cobra.Command{
		Use:   name + " <resume-file>",
		Short: short,
		Long: short + `.

Text shorter than 50 characters is not scored; the output then explains
how many characters were found instead of reporting a score.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			return prepareOutput(cfg, &out)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := commandEnv(cmd)
			if err != nil {
				return err
			}
			persona, err := resolvePersona(cmd, cfg)
			if err != nil {
				return err
			}

			engine, _, _, err := buildEngine(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			err = common.RunAnalysisCommand(cmd.Context(), logger, out, args[0],
				func(_ context.Context, text string) (analysis.Report, error) {
					return engine.Report(text, persona, include)
				})
			if err != nil {
				return fmt.Errorf("%s failed: %w", name, err)
			}
			logger.Info("Resume analysis completed", "command", name, "persona", persona)
			return nil
		},
	}
	addOutputFlags(cmd, &out)
	return cmd
}
