package get

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"catalogsync_api/internal/supplier/business/models/dto/response"
	"catalogsync_api/internal/supplier/business/services"
	"catalogsync_api/pkg/logger"
	"catalogsync_api/pkg/remote"
)

// CatalogEngine -- сервис по работе с каталогом поставщика.
type CatalogEngine struct {
	exec *remote.Executor
	services.AuthEngine
	baseURL  string
	pageSize int
	log      logger.Logger
}

func NewCatalogEngine(exec *remote.Executor, auth services.AuthEngine, baseURL string, pageSize int, writer io.Writer) *CatalogEngine {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &CatalogEngine{
		exec:       exec,
		AuthEngine: auth,
		baseURL:    baseURL,
		pageSize:   pageSize,
		log:        logger.NewLogger(writer, "[SupplierCatalog]"),
	}
}

func (e *CatalogEngine) ListProducts(ctx context.Context, page int) ([]response.Product, error) {
	url := fmt.Sprintf("%s/products?page=%d&pageSize=%d", e.baseURL, page, e.pageSize)

	_, body, err := e.exec.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		e.SetApiKey(req)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing supplier products page %d: %w", page, err)
	}

	var catalogPage response.CatalogPage
	if err := json.Unmarshal(body, &catalogPage); err != nil {
		return nil, fmt.Errorf("decoding supplier products page %d: %w", page, err)
	}
	return catalogPage.Products, nil
}

// FetchAll pages through the catalog until an empty page is returned. This is
// the only call allowed to abort an entire run: without a catalog nothing can
// proceed.
func (e *CatalogEngine) FetchAll(ctx context.Context) ([]response.Product, error) {
	var all []response.Product
	for page := 1; ; page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		products, err := e.ListProducts(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			break
		}
		all = append(all, products...)
		e.log.Log("fetched page %d (%d products)", page, len(products))
	}
	e.log.Log("supplier catalog fetched: %d products", len(all))
	return all, nil
}
