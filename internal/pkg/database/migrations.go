package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
)

var migrationFiles = []string{
	"000001_create_categories_table.up.sql",
	"000002_create_products_table.up.sql",
	"000003_create_reviews_table.up.sql",
	"000004_add_catalog_indexes.up.sql",
}

// RunMigrations applies the schema migrations from dir in order.
// Each file runs in its own transaction; statements are idempotent
// (CREATE ... IF NOT EXISTS) so reruns are safe.
func RunMigrations(db *sqlx.DB, dir string) error {
	for _, name := range migrationFiles {
		path := filepath.Join(dir, name)

		sql, err := os.ReadFile(path)
		if err != nil {
			absPath, _ := filepath.Abs(path)
			return fmt.Errorf("failed to read migration %s (absolute: %s): %w", path, absPath, err)
		}

		if err := executeMigration(db, string(sql)); err != nil {
			return fmt.Errorf("migration %s failed: %w", path, err)
		}
	}

	return nil
}

func executeMigration(db *sqlx.DB, sql string) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(sql); err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
