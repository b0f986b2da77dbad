package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/database"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDB(cmd.Context(), func(_ *config.Config, db *sql.DB) error {
				if err := database.Migrate(cmd.Context(), db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Schema applied")
				return nil
			})
		},
	}
}

func newSeedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the social platform reference rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDB(cmd.Context(), func(_ *config.Config, db *sql.DB) error {
				if err := database.SeedPlatforms(cmd.Context(), db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Platforms seeded")
				return nil
			})
		},
	}
}
