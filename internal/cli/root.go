// Package cli wires the planner command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "planner" command and registers all
// subcommands.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "planner",
		Short:         "Planning session engine for software projects",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(version),
		newRecommendCmd(),
		newDocsCmd(),
		newNextStepsCmd(),
	)

	return root
}
