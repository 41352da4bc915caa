package services

import (
	"context"

	"github.com/shopspring/decimal"

	sfrequest "catalogsync_api/internal/storefront/business/models/dto/request"
	sfresponse "catalogsync_api/internal/storefront/business/models/dto/response"
	supplierresponse "catalogsync_api/internal/supplier/business/models/dto/response"
)

// ProductPager is the storefront listing surface the entity matcher scans.
type ProductPager interface {
	ListProducts(ctx context.Context, cursor string, limit int) (*sfresponse.ProductPage, error)
}

// ProductWriter covers the mutations issued by the reconciliation engine.
type ProductWriter interface {
	CreateProduct(ctx context.Context, spec *sfrequest.ProductCreate) (*sfresponse.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	UpdateProductFields(ctx context.Context, productID string, patch *sfrequest.ProductPatch) error
	SetVariantPrice(ctx context.Context, variantID string, price decimal.Decimal) error
	SetVariantQuantity(ctx context.Context, variantID string, quantity int, locationID string) error
	SetVariantLabel(ctx context.Context, variantID, label string) error
	SetVariantBarcode(ctx context.Context, variantID string, barcode *string) error
	AddProductToCollection(ctx context.Context, productID, collectionID string) error
}

// MediaAPI covers the media surface used by the synchronizer.
type MediaAPI interface {
	GetProduct(ctx context.Context, productID string) (*sfresponse.Product, error)
	CreateStagedUpload(ctx context.Context, filename, mimeType string) (*sfresponse.StagedUploadTarget, error)
	AttachMedia(ctx context.Context, productID, sourceURL string) (*sfresponse.Image, error)
	AwaitImageVisible(ctx context.Context, productID, imageID string, attempts int) error
	SetImageOrder(ctx context.Context, productID string, imageIDs []string) error
	AssignVariantImage(ctx context.Context, variantID, mediaID string) error
}

// StorefrontAPI is the full client surface; the real storefront client
// implements it.
type StorefrontAPI interface {
	ProductPager
	ProductWriter
	MediaAPI
}

// HeroFetcher recovers the supplier's primary image reference for a product
// page slug.
type HeroFetcher interface {
	FetchHeroImage(ctx context.Context, slug string) (string, error)
}

// Matcher finds the storefront counterpart of a supplier SKU.
type Matcher interface {
	FindBySku(ctx context.Context, sku string) (*sfresponse.Product, bool, error)
}

// MediaSyncer reconciles the image set of one product.
type MediaSyncer interface {
	Sync(ctx context.Context, supplierProduct *supplierresponse.Product, storefrontProduct *sfresponse.Product, category string) error
}
