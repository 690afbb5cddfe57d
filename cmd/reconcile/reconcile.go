// Package reconcile implements the catalogue reconciliation command.
package reconcile

import (
	"fmt"

	"github.com/mhalden/closet/internal/config"
	"github.com/mhalden/closet/internal/repository/sqlite"
	"github.com/mhalden/closet/internal/service"
	"github.com/spf13/cobra"
)

// Command creates the reconcile command.
func Command() *cobra.Command {
	var (
		dir   string
		apply bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Register images on disk that are missing from the catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.ImagesDir
			}

			db, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			if err := db.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}

			importer := service.NewImportService(db.Images())
			res, err := importer.Reconcile(cmd.Context(), dir, apply)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scanned %d files, %d missing from the catalogue\n", res.Scanned, res.Candidates)
			if apply {
				fmt.Fprintf(out, "added %d images\n", res.Added)
			} else if res.Candidates > 0 {
				fmt.Fprintln(out, "run again with --apply to add them")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory to scan")
	cmd.Flags().BoolVar(&apply, "apply", false, "insert missing images instead of only reporting them")

	return cmd
}
