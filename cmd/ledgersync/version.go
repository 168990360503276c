package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", orNA(buildVersion))
			fmt.Fprintf(out, "Build date: %s\n", orNA(buildDate))
			fmt.Fprintf(out, "Build commit: %s\n", orNA(buildCommit))
		},
	}
}
