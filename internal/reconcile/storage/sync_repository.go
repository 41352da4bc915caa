package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"catalogsync_api/internal/reconcile/business/models"
)

// SyncRepository persists category mappings and per-run statistics in the
// sync schema.
type SyncRepository struct {
	db *sql.DB
}

func NewSyncRepository(db *sql.DB) *SyncRepository {
	return &SyncRepository{db: db}
}

// LoadCategoryMappings reads the static supplier-category -> collection table
// once per run.
func (r *SyncRepository) LoadCategoryMappings() (map[int]models.CategoryMapping, error) {
	query := `SELECT supplier_category_id, collection_id, business_name FROM sync.category_mappings`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying category mappings: %w", err)
	}
	defer rows.Close()

	mappings := make(map[int]models.CategoryMapping)
	for rows.Next() {
		var m models.CategoryMapping
		if err := rows.Scan(&m.SupplierCategoryID, &m.CollectionID, &m.BusinessName); err != nil {
			return nil, fmt.Errorf("scanning category mapping: %w", err)
		}
		mappings[m.SupplierCategoryID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading category mappings: %w", err)
	}
	return mappings, nil
}

// SaveRunStats writes one row per category for the finished run.
func (r *SyncRepository) SaveRunStats(runID uuid.UUID, startedAt, finishedAt time.Time, stats *models.SyncStats) error {
	query := `
		INSERT INTO sync.runs (run_id, category, created, updated, images_uploaded, errors, recreate_gaps, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for category, cs := range stats.Categories() {
		_, err := r.db.Exec(query,
			runID, category, cs.Created, cs.Updated, cs.ImagesUploaded, cs.Errors,
			stats.RecreateGaps, startedAt, finishedAt)
		if err != nil {
			return fmt.Errorf("saving run stats for category %s: %w", category, err)
		}
	}
	return nil
}
