package sync

import (
	"database/sql"
	"fmt"
	"log"
)

func checkAndSkipMigration(db *sql.DB, migrationName string) (bool, error) {
	var migrationExists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = $1)", migrationName).Scan(&migrationExists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	if migrationExists {
		log.Printf("Migration '%s' already completed. Skipping.", migrationName)
		return true, nil
	}
	return false, nil
}

func executeAndMarkMigration(db *sql.DB, query string, migrationName string) error {
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to execute migration '%s': %w", migrationName, err)
	}
	if _, err := db.Exec("INSERT INTO migrations.migrations (name, time) VALUES ($1, current_timestamp)", migrationName); err != nil {
		return fmt.Errorf("failed to mark migration '%s' as complete: %w", migrationName, err)
	}
	return nil
}

type CreateMigrationsSchema struct{}

func (m *CreateMigrationsSchema) UpMigration(db *sql.DB) error {
	query := `
	CREATE SCHEMA IF NOT EXISTS migrations;
	CREATE TABLE IF NOT EXISTS migrations.migrations (
		name VARCHAR(255) PRIMARY KEY,
		time TIMESTAMP NOT NULL
	);`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations schema: %w", err)
	}
	return nil
}

type CreateSyncSchema struct{}

func (m *CreateSyncSchema) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, "sync.schema"); err != nil {
		return err
	} else if ok {
		return nil
	}
	if err := executeAndMarkMigration(db, `CREATE SCHEMA IF NOT EXISTS sync;`, "sync.schema"); err != nil {
		return err
	}
	log.Println("Migration 'sync.schema' completed successfully.")
	return nil
}

type CreateCategoryMappingsTable struct{}

func (m *CreateCategoryMappingsTable) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, "sync.category_mappings"); err != nil {
		return err
	} else if ok {
		return nil
	}
	query := `
	CREATE TABLE IF NOT EXISTS sync.category_mappings (
		supplier_category_id INT PRIMARY KEY,
		collection_id VARCHAR(255) NOT NULL,
		business_name VARCHAR(255) NOT NULL
	);`
	if err := executeAndMarkMigration(db, query, "sync.category_mappings"); err != nil {
		return err
	}
	log.Println("Migration 'sync.category_mappings' completed successfully.")
	return nil
}

type CreateSyncRunsTable struct{}

func (m *CreateSyncRunsTable) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, "sync.runs"); err != nil {
		return err
	} else if ok {
		return nil
	}
	query := `
	CREATE TABLE IF NOT EXISTS sync.runs (
		run_id UUID NOT NULL,
		category VARCHAR(255) NOT NULL,
		created INT NOT NULL DEFAULT 0,
		updated INT NOT NULL DEFAULT 0,
		images_uploaded INT NOT NULL DEFAULT 0,
		errors INT NOT NULL DEFAULT 0,
		recreate_gaps INT NOT NULL DEFAULT 0,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL,
		PRIMARY KEY (run_id, category)
	);`
	if err := executeAndMarkMigration(db, query, "sync.runs"); err != nil {
		return err
	}
	log.Println("Migration 'sync.runs' completed successfully.")
	return nil
}
