package main

import (
	"fmt"

	"tasktracker/internal/config"
	"tasktracker/internal/db"
	"tasktracker/internal/migrations"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "List or apply the PostgreSQL schema migrations",
		Long: `Without --apply, prints the embedded migration files in order.
With --apply, runs them against DATABASE_URL. The files are idempotent.
The SQLite store migrates itself on open and needs no step here.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !apply {
				all, err := migrations.All()
				if err != nil {
					return err
				}
				for _, m := range all {
					fmt.Fprintln(out, m.Name)
				}
				return nil
			}

			cfg, err := config.Read()
			if err != nil {
				return err
			}
			if cfg.StoreDriver != config.DriverPostgres {
				fmt.Fprintln(out, "sqlite store migrates on open; nothing to apply")
				return nil
			}

			ctx := cmd.Context()
			pool, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			return db.Migrate(ctx, pool, func(name string) {
				fmt.Fprintf(out, "applied %s\n", name)
			})
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "Apply the migrations")
	return cmd
}
