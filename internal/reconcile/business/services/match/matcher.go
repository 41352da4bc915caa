// Package match locates the storefront counterpart of a supplier product.
package match

import (
	"context"
	"fmt"
	"io"

	"catalogsync_api/internal/reconcile/business/services"
	sfresponse "catalogsync_api/internal/storefront/business/models/dto/response"
	"catalogsync_api/pkg/logger"
)

// ProductMatcher searches the storefront catalog by SKU. Titles are not
// stable join keys across the two systems; the SKU is. The scan is linear in
// the catalog size, paid once per supplier product, which is acceptable off
// the latency-sensitive path.
type ProductMatcher struct {
	pager    services.ProductPager
	pageSize int
	log      logger.Logger
}

func NewProductMatcher(pager services.ProductPager, pageSize int, writer io.Writer) *ProductMatcher {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &ProductMatcher{
		pager:    pager,
		pageSize: pageSize,
		log:      logger.NewLogger(writer, "[Matcher]"),
	}
}

// FindBySku returns the storefront product owning sku, with full variant and
// image detail. Not finding one is not an error; it drives the CREATE path.
func (m *ProductMatcher) FindBySku(ctx context.Context, sku string) (*sfresponse.Product, bool, error) {
	if sku == "" {
		return nil, false, nil
	}

	cursor := ""
	for {
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		default:
		}

		page, err := m.pager.ListProducts(ctx, cursor, m.pageSize)
		if err != nil {
			return nil, false, fmt.Errorf("scanning storefront catalog for sku %s: %w", sku, err)
		}
		for i := range page.Products {
			if _, ok := page.Products[i].VariantBySku(sku); ok {
				return &page.Products[i], true, nil
			}
		}
		if !page.HasNextPage || page.NextCursor == "" {
			return nil, false, nil
		}
		cursor = page.NextCursor
	}
}
