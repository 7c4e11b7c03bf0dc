package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/financeflow/internal"
	"github.com/frahmantamala/financeflow/internal/persistence"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run db migration files under db/migrations directory",
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "db/migrations", "sql migrations directory")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	db, dialect, err := openMigrationDB(cfg.Storage)
	if err != nil {
		log.Fatalf("goose: failed to open DB: %v\n", err)
	}
	defer db.Close()

	if err := goose.SetDialect(dialect); err != nil {
		log.Fatalf("goose: failed to set dialect: %v", err)
	}
	goose.SetTableName("schema_migrations")

	command := "up"
	if migrateRollback {
		command = "down"
	}

	if err := goose.RunContext(ctx, command, db, migrateDir); err != nil {
		log.Fatalf("goose %s: %v", command, err)
	}

	return nil
}

func openMigrationDB(cfg internal.StorageConfig) (*sql.DB, string, error) {
	switch cfg.Driver {
	case "", "sqlite":
		db, err := sql.Open("sqlite3", cfg.Source)
		return db, "sqlite3", err
	case "postgres":
		gdb, err := persistence.Open(cfg)
		if err != nil {
			return nil, "", err
		}
		db, err := gdb.DB()
		return db, "postgres", err
	default:
		return nil, "", fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
