package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	rootDir    string
	configPath string
	noCommit   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tutorcheck",
	Short: "CI checks and auto-fixes for a design patterns tutorial",
	Long: `tutorcheck validates the layout, notebooks, YAML and sample modules of a
design patterns tutorial. Each subcommand is one CI job and exits nonzero
when its checks fail.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", "", "Tutorial root (default: nearest .tutorcheck.yaml or .git above the working directory)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <root>/.tutorcheck.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noCommit, "no-commit", false, "Never commit or push applied fixes")
}
