package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	ws "javaxify/internal/workspace"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// watchCmd regenerates classes as scripts change
var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Regenerate classes whenever scripts under dir change",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	n := notifier(cmd)
	w, err := ws.NewWatcher(space, args[0], n.Result)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return fmt.Errorf("failed to watch %s: %w", args[0], err)
	}
	logger.Info("watching", zap.String("dir", args[0]), zap.Duration("debounce", cfg.GetWatchDebounce()))
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", args[0])

	<-ctx.Done()
	w.Stop()

	stats := w.GetStats()
	logger.Info("watch stopped",
		zap.Int("conversions", stats.Conversions),
		zap.Int("errors", stats.Errors))
	return nil
}
