package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/tutorcheck"
	"github.com/aretw0/tutorcheck/pkg/config"
	"github.com/spf13/cobra"
)

var pipelineHelp = map[string]struct{ short, long string }{
	tutorcheck.PipelineFix: {
		"Check the checkout and auto-fix formatting",
		`Checks directories, syntax, formatting, imports, notebooks and repository
functionality. Formatting drift is fixed in place and, unless --no-commit is
set, committed and pushed. Exits 1 when anything failed or was fixed.`,
	},
	tutorcheck.PipelineValidate:   {"Validate the full tutorial structure", ""},
	tutorcheck.PipelineNotebooks:  {"Test notebook structure and clear outputs", ""},
	tutorcheck.PipelineOutputs:    {"Fail when any notebook still has outputs", ""},
	tutorcheck.PipelineClear:      {"Clear outputs from every notebook", ""},
	tutorcheck.PipelineEnsureDirs: {"Create the directories the tutorial needs", ""},
	tutorcheck.PipelineSmoke:      {"Run the sample module functional checks", ""},
	tutorcheck.PipelineDoctor:     {"Print an environment report for CI debugging (always exits 0)", ""},
}

func pipelineCommand(name string) *cobra.Command {
	help := pipelineHelp[name]
	return &cobra.Command{
		Use:   name,
		Short: help.short,
		Long:  help.long,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(runPipeline(cmd.Context(), name, nil))
		},
	}
}

var yamlCmd = &cobra.Command{
	Use:   "yaml [files...]",
	Short: "Check YAML files for syntax errors",
	Long: `Parses every configured YAML file, or the files given as arguments,
and reports each one that does not parse.`,
	Run: func(cmd *cobra.Command, args []string) {
		var configure func(*config.Config)
		if len(args) > 0 {
			configure = func(cfg *config.Config) { cfg.YAML.Files = args }
		}
		os.Exit(runPipeline(cmd.Context(), tutorcheck.PipelineYAML, configure))
	},
}

// runPipeline runs one pipeline and returns its exit code.
func runPipeline(ctx context.Context, name string, configure func(*config.Config)) int {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := openPlatform(configure)
	if err != nil {
		fatal("Failed to load configuration", err)
	}
	pl, err := p.Pipeline(name)
	if err != nil {
		fatal("Failed to build pipeline", err)
	}
	return pl.Run(ctx).ExitCode()
}

func init() {
	for _, name := range tutorcheck.Pipelines() {
		if name == tutorcheck.PipelineYAML {
			rootCmd.AddCommand(yamlCmd)
			continue
		}
		rootCmd.AddCommand(pipelineCommand(name))
	}
}
