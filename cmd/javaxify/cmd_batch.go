package main

import (
	"fmt"

	ws "javaxify/internal/workspace"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchDirection string

// batchCmd converts every file under a directory
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Convert every script (or class) under a directory",
	Long: `Walks dir and converts every matching file concurrently, bounded by
the configured worker count. A failing file does not stop the run.

Example:
  javaxify batch src --direction to-script`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	direction, err := ws.ParseDirection(batchDirection)
	if err != nil {
		return err
	}

	report, err := space.Batch(cmd.Context(), args[0], direction)
	if report != nil {
		logger.Info("batch finished",
			zap.String("run_id", report.RunID),
			zap.String("direction", string(report.Direction)),
			zap.Int("succeeded", report.Succeeded),
			zap.Int("failed", report.Failed),
			zap.Duration("duration", report.Duration))
		if len(report.Results) > 0 || err == nil {
			notifier(cmd).Report(report)
		}
	}
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", errReported, report.Failed, len(report.Results))
	}
	return nil
}
