package sites

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/shopsearch/cmd/common"
	"github.com/jonesrussell/shopsearch/internal/database"
	"github.com/jonesrussell/shopsearch/internal/domain"
)

// defaultSites are the shopping sites seeded on first install.
var defaultSites = []domain.Site{
	{Name: "meesho", BaseURL: "https://www.meesho.com", SearchPath: "/search?q=", Active: true},
	{Name: "nykaa", BaseURL: "https://www.nykaa.com", SearchPath: "/search/result/?q=", Active: true},
	{Name: "myntra", BaseURL: "https://www.myntra.com", SearchPath: "/search?q=", Active: true},
	{Name: "fabindia", BaseURL: "https://www.fabindia.com", SearchPath: "/search?q=", Active: true},
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the default shopping sites",
		Long:  `Insert the default shopping sites into the registry. Existing sites are left untouched.`,
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

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if schemaErr := database.EnsureSchema(ctx, db); schemaErr != nil {
				return fmt.Errorf("failed to ensure schema: %w", schemaErr)
			}

			repo := database.NewSiteRepository(db)

			created := 0
			for _, site := range defaultSites {
				wasCreated, seedErr := repo.Seed(ctx, site)
				if seedErr != nil {
					return fmt.Errorf("failed to seed sites: %w", seedErr)
				}
				if wasCreated {
					deps.Logger.Info("seeded site", "name", site.Name)
					created++
				}
			}

			deps.Logger.Info("site seeding finished",
				"created", created,
				"existing", len(defaultSites)-created,
			)
			return nil
		},
	}
}
