package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apkgraph/pkg/buildinfo"
)

// versionCommand prints build information. The root's --version flag names
// the package version to resolve, so build info lives in a subcommand.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			return err
		},
	}
}
