package app

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"catalogsync_api/config"
	"catalogsync_api/internal/reconcile/business/models"
	"catalogsync_api/internal/reconcile/business/services/engine"
	"catalogsync_api/internal/reconcile/business/services/format"
	"catalogsync_api/internal/reconcile/business/services/match"
	"catalogsync_api/internal/reconcile/business/services/media"
	"catalogsync_api/internal/reconcile/storage"
	storefront "catalogsync_api/internal/storefront/business/services"
	supplier "catalogsync_api/internal/supplier/business/services"
	supplierget "catalogsync_api/internal/supplier/business/services/get"
	"catalogsync_api/metrics"
	syncmigrations "catalogsync_api/migrations/sync"
	"catalogsync_api/pkg/business/service"
	"catalogsync_api/pkg/dbconnect"
	"catalogsync_api/pkg/dbconnect/migration"
	"catalogsync_api/pkg/logger"
	"catalogsync_api/pkg/remote"
)

// SyncServer wires one reconciliation pass: supplier catalog in, storefront
// mutations out, stats persisted at the end.
type SyncServer struct {
	dbconnect.Database
	cfg    config.AppConfig
	log    logger.Logger
	writer io.Writer
}

func NewSyncServer(connector dbconnect.Database, cfg config.AppConfig, writer io.Writer) *SyncServer {
	_log := logger.NewLogger(writer, "[SyncServer]")
	return &SyncServer{Database: connector, cfg: cfg, log: _log, writer: writer}
}

// Run executes a single reconciliation pass and returns the collected stats.
// Only the initial supplier catalog fetch may abort the whole run.
func (s *SyncServer) Run(ctx context.Context) (*models.SyncStats, error) {
	db, err := s.Connect()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	migrationApply := []migration.MigrationInterface{
		&syncmigrations.CreateMigrationsSchema{},
		&syncmigrations.CreateSyncSchema{},
		&syncmigrations.CreateCategoryMappingsTable{},
		&syncmigrations.CreateSyncRunsTable{},
	}
	for _, _migration := range migrationApply {
		if err := _migration.UpMigration(db); err != nil {
			return nil, err
		}
	}
	s.log.Log("sync migrations applied successfully")

	go s.serveMetrics()

	repository := storage.NewSyncRepository(db)
	mappings, err := repository.LoadCategoryMappings()
	if err != nil {
		return nil, err
	}
	if len(mappings) == 0 && len(s.cfg.CategoryMappings) > 0 {
		mappings = make(map[int]models.CategoryMapping, len(s.cfg.CategoryMappings))
		for _, entry := range s.cfg.CategoryMappings {
			mappings[entry.SupplierCategoryID] = models.CategoryMapping{
				SupplierCategoryID: entry.SupplierCategoryID,
				CollectionID:       entry.CollectionID,
				BusinessName:       entry.BusinessName,
			}
		}
		s.log.Log("category_mappings table empty, using %d mappings from config", len(mappings))
	}
	s.log.Log("loaded %d category mappings", len(mappings))

	vals := s.cfg.Sync
	executor := remote.NewExecutor(remote.Config{
		RequestsPerMinute: vals.RequestsPerMinute,
		MaxRetries:        vals.MaxRetries,
		RetryInterval:     time.Duration(vals.RetryIntervalMs) * time.Millisecond,
	}, s.writer)

	catalog := supplierget.NewCatalogEngine(
		executor,
		supplier.NewBearerAuth(s.cfg.Supplier.Token),
		s.cfg.Supplier.BaseURL,
		vals.PageSize,
		s.writer,
	)
	hero := supplierget.NewHeroImageEngine(executor, s.cfg.Supplier.SiteURL, s.writer)
	client := storefront.NewClient(
		executor,
		storefront.NewAccessTokenAuth(s.cfg.Storefront.AccessToken),
		s.cfg.Storefront.Domain,
		s.cfg.Storefront.ApiVersion,
		s.writer,
	)

	stats := models.NewSyncStats()
	formatter := format.NewVariantNameFormatter(vals)
	matcher := match.NewProductMatcher(client, vals.PageSize, s.writer)
	mediaSync := media.NewSynchronizer(client, hero, stats, vals.VisibilityRetries, s.writer)
	reconciler := engine.NewReconcileEngine(
		client, matcher, mediaSync, formatter, service.NewTextService(), stats, s.writer)

	startedAt := time.Now()
	runID := uuid.New()
	s.log.Log("run %s: fetching supplier catalog", runID)

	products, err := catalog.FetchAll(ctx)
	if err != nil {
		// без каталога делать нечего
		return nil, err
	}

	// strictly sequential: at most one in-flight mutation per storefront
	// product by construction
	for i := range products {
		if err := ctx.Err(); err != nil {
			s.log.Log("run %s aborted after %d/%d products", runID, i, len(products))
			break
		}
		product := &products[i]

		category, ok := product.PrimaryCategory()
		if !ok {
			s.log.Log("product %q has no category, skipping", product.Name)
			continue
		}
		mapping, ok := mappings[category.ID]
		if !ok {
			s.log.Log("no mapping for supplier category %d (%s), skipping %q", category.ID, category.Name, product.Name)
			continue
		}

		action, err := reconciler.ReconcileProduct(ctx, product, mapping)
		if err != nil {
			s.log.Log("product %q (%s): %s", product.Name, action, err)
			continue
		}
		if action != models.ActionSkip {
			s.log.Log("product %q: %s", product.Name, action)
		}
	}

	if err := repository.SaveRunStats(runID, startedAt, time.Now(), stats); err != nil {
		s.log.Log("saving run stats failed: %s", err)
	}
	s.log.Log("run %s finished in %s\n%s", runID, time.Since(startedAt).Round(time.Second), stats)
	return stats, nil
}

func (s *SyncServer) serveMetrics() {
	http.Handle("/metrics", metrics.MetricsHandler())
	if err := http.ListenAndServe(":2112", nil); err != nil {
		s.log.Log("metrics endpoint stopped: %s", err)
	}
}
