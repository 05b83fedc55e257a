package sites

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/shopsearch/cmd/common"
	"github.com/jonesrussell/shopsearch/internal/database"
	"github.com/jonesrussell/shopsearch/internal/domain"
)

// renderTable formats and displays the sites in a table format.
func renderTable(sites []domain.Site) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Name", "Base URL", "Search Path", "Active"})

	for _, site := range sites {
		t.AppendRow(table.Row{
			site.Name,
			site.BaseURL,
			site.SearchPath,
			site.Active,
		})
	}

	t.Render()
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered sites",
		Long:  `List all shopping sites registered in the system.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}

			db, err := database.NewPostgresConnection(deps.Config.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			repo := database.NewSiteRepository(db)

			sites, err := repo.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list sites: %w", err)
			}

			if len(sites) == 0 {
				deps.Logger.Info("No sites registered")
				return nil
			}

			renderTable(sites)
			return nil
		},
	}
}
