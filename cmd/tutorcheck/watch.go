package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/tutorcheck"
	"github.com/aretw0/tutorcheck/pkg/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [pipeline]",
	Short: "Re-run a pipeline whenever tutorial files change",
	Long: `Runs the pipeline once, then again after every burst of changes to the
watched directories. Defaults to the validate pipeline. Stop with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := tutorcheck.PipelineValidate
		if len(args) == 1 {
			name = args[0]
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p, err := openPlatform(nil)
		if err != nil {
			fatal("Failed to load configuration", err)
		}
		pl, err := p.Pipeline(name)
		if err != nil {
			fatal("Failed to build pipeline", err)
		}

		pl.Run(ctx)
		fmt.Printf("👀 Watching %s (Ctrl+C to stop)\n", p.Root)

		w := watch.New(p.Root, p.Config.Watch, slog.Default(), func(ctx context.Context) {
			summary := pl.Run(ctx)
			slog.Info("pipeline re-run", "pipeline", name, "exit_code", summary.ExitCode())
		})
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fatal("Watcher stopped", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
