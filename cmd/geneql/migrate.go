package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dangerclosesec/geneql/store"
	"github.com/dangerclosesec/geneql/store/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var (
		dbConnString string
		seedFile     string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Initialize the PostgreSQL schema",
		Long:  `Create the entities and relations tables if needed and optionally load a JSON seed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("db", dbConnString); err != nil {
				return err
			}

			db, err := postgres.Open(dbConnString)
			if err != nil {
				return err
			}
			defer db.Close()

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			applied, err := postgres.NewMigrator(db, logger).InitializeSchema(cmd.Context())
			if err != nil {
				return err
			}
			if applied {
				fmt.Fprintf(cmd.OutOrStdout(), "Schema initialized at version %d\n", postgres.SchemaVersion)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Schema already up to date")
			}

			if seedFile == "" {
				return nil
			}

			f, err := os.Open(seedFile)
			if err != nil {
				return fmt.Errorf("failed to open seed file: %w", err)
			}
			defer f.Close()

			seed, err := store.DecodeSeed(f)
			if err != nil {
				return err
			}

			s, err := postgres.New(cmd.Context(), dbConnString)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Apply(cmd.Context(), seed); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seed %s applied\n", seedFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dbConnString, "db", "d", os.Getenv("DATABASE_URL"), "Database connection string")
	cmd.Flags().StringVarP(&seedFile, "seed", "s", "", "JSON seed file to load after migrating")
	return cmd
}
