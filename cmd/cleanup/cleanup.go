// Package cleanup implements the one-shot expiry sweep command.
package cleanup

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/shopsearch/cmd/common"
	"github.com/jonesrussell/shopsearch/internal/database"
	"github.com/jonesrussell/shopsearch/internal/search"
)

// Command returns the cleanup command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired search jobs",
		Long:  `Run one expiry sweep: delete all expired search jobs and their products.`,
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

			searchRepo := database.NewSearchRepository(db)
			svc := search.New(
				searchRepo,
				database.NewProductRepository(db, deps.Logger),
				database.NewSiteRepository(db),
				nil,
				nil,
				deps.Logger,
			)

			deleted, err := svc.CleanupExpired(cmd.Context())
			if err != nil {
				return fmt.Errorf("cleanup failed: %w", err)
			}

			deps.Logger.Info("cleanup finished", "deleted", deleted)
			return nil
		},
	}
}
