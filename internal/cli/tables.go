package cli

import (
	"resumeradar/internal/common"
	"resumeradar/internal/types"

	"github.com/spf13/cobra"
)

func newPersonasCmd() *cobra.Command {
	var out common.CommandConfig
	cmd := &cobra.Command{
		Use:   "personas",
		Short: "List the loaded persona templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := commandEnv(cmd)
			if err != nil {
				return err
			}
			if err := prepareOutput(cfg, &out); err != nil {
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
			list := types.PersonaList{Default: persona, Personas: engine.Rules().Personas}
			return common.NewOutputHandler(logger, out).HandleOutput(list, out)
		},
	}
	addOutputFlags(cmd, &out)
	return cmd
}

func newTrendsCmd() *cobra.Command {
	var out common.CommandConfig
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "List the loaded trending skills",
		Long: `List the trending skills used for trend suggestions, in selection order.
When a trend feed is configured it is fetched first, so this also shows
whether the feed or the local table is in effect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := commandEnv(cmd)
			if err != nil {
				return err
			}
			if err := prepareOutput(cfg, &out); err != nil {
				return err
			}
			engine, src, _, err := buildEngine(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			list := types.TrendList{Source: src.Trends, Trends: engine.Rules().Trends}
			return common.NewOutputHandler(logger, out).HandleOutput(list, out)
		},
	}
	addOutputFlags(cmd, &out)
	return cmd
}
