package cmd

import (
	"context"
	"fmt"

	"github.com/Rutuja-Parab/policyzen/db/migrations"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "apply the database schema",
		Long:  `Apply the embedded schema under db/migrations, or the SQL files in --dir when given.`,
	}
	migrateDir string
)

func init() {
	migrateCmd.Flags().StringVarP(&migrateDir, "dir", "d", "", "read migrations from this directory instead of the embedded copy")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, lg, err := setup()
	if err != nil {
		return err
	}

	db, err := initDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	dir := "."
	if migrateDir != "" {
		dir = migrateDir
	} else {
		goose.SetBaseFS(migrations.FS)
	}
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose: %w", err)
	}

	if err := goose.UpContext(ctx, db.DB, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	lg.Info("migrate: schema up to date")
	return nil
}
