package common

import (
	"context"
	"fmt"

	"resumeradar/internal/analysis"
	"resumeradar/internal/errors"
)

// AnalysisFunc turns resume text into a report
type AnalysisFunc func(ctx context.Context, text string) (analysis.Report, error)

// RunAnalysisCommand reads one resume file, runs fn on it and writes the formatted report
// A no-analysis report is written like any other; it is not an error
func RunAnalysisCommand(
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	path string,
	fn AnalysisFunc,
) error {
	fileProcessor := NewFileProcessor(logger, cmdConfig.MaxFileSize)
	outputHandler := NewOutputHandler(logger, cmdConfig)

	if err := fileProcessor.ValidateOutputFile(cmdConfig.OutputFile); err != nil {
		return err
	}

	contents, err := fileProcessor.ValidateAndReadFiles(path)
	if err != nil {
		return err
	}

	logger.Info("Starting resume analysis",
		"file", path,
		"resume_chars", len(contents[0]),
		"output_format", cmdConfig.OutputFormat)

	report, err := fn(ctx, contents[0])
	if err != nil {
		return fmt.Errorf("analysis of %s failed: %w", path, err)
	}

	if report.Status == analysis.StatusNoAnalysis {
		logger.Warn("Resume too short to analyze", "file", path, "chars", report.NoAnalysis.Chars)
	}

	return outputHandler.HandleOutput(report, cmdConfig)
}
