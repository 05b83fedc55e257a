// Package cmd implements the command-line interface for the shopping
// search service.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/shopsearch/cmd/cleanup"
	"github.com/jonesrussell/shopsearch/cmd/httpd"
	"github.com/jonesrussell/shopsearch/cmd/sites"
	"github.com/jonesrussell/shopsearch/internal/config"
)

// rootCmd represents the root command for the shopsearch CLI.
var rootCmd = &cobra.Command{
	Use:   "shopsearch",
	Short: "A natural-language shopping search service",
	Long:  `A shopping search service that fans natural-language queries out to shopping sites and serves the aggregated results.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("shopsearch version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(sites.Command())
	rootCmd.AddCommand(cleanup.Command())
}
