package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the repolens version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version of the repolens binary.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "repolens %s\n", Version)
	},
}
