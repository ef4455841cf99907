package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/tutorcheck"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tutorcheck",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tutorcheck version %s\n", strings.TrimSpace(tutorcheck.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
