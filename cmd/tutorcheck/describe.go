package main

import (
	"encoding/json"
	"os"

	"github.com/aretw0/tutorcheck/pkg/pipeline"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe [pipeline]",
	Short: "Print the steps of each pipeline as JSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := openPlatform(nil)
		if err != nil {
			fatal("Failed to load configuration", err)
		}

		pipelines := p.Pipelines()
		if len(args) == 1 {
			pl, err := p.Pipeline(args[0])
			if err != nil {
				fatal("Unknown pipeline", err)
			}
			pipelines = []*pipeline.Pipeline{pl}
		}

		states := make([]any, 0, len(pipelines))
		for _, pl := range pipelines {
			states = append(states, pl.State())
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(states); err != nil {
			fatal("Failed to encode", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
