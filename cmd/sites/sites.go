// Package sites implements the command-line interface for managing the
// site registry.
package sites

import (
	"github.com/spf13/cobra"
)

// Command returns the sites command with its subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "Manage the searchable site registry",
		Long:  `Manage the registry of shopping sites available for search.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewSeedCommand())
	cmd.AddCommand(NewListCommand())

	return cmd
}
