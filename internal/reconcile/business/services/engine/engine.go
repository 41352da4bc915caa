// Package engine decides, per supplier product, between CREATE,
// UPDATE-in-place and delete-then-RECREATE, and executes the chosen path.
package engine

import (
	"context"
	"fmt"
	"io"

	"catalogsync_api/internal/reconcile/business/models"
	"catalogsync_api/internal/reconcile/business/services"
	"catalogsync_api/internal/reconcile/business/services/format"
	sfrequest "catalogsync_api/internal/storefront/business/models/dto/request"
	sfresponse "catalogsync_api/internal/storefront/business/models/dto/response"
	supplierresponse "catalogsync_api/internal/supplier/business/models/dto/response"
	"catalogsync_api/pkg/business/service"
	"catalogsync_api/pkg/logger"
)

const (
	maxTitleLength = 255
	maxDescLength  = 5000
)

type ReconcileEngine struct {
	writer    services.ProductWriter
	matcher   services.Matcher
	media     services.MediaSyncer
	formatter *format.VariantNameFormatter
	text      service.ITextService
	stats     *models.SyncStats
	log       logger.Logger
}

func NewReconcileEngine(
	writer services.ProductWriter,
	matcher services.Matcher,
	media services.MediaSyncer,
	formatter *format.VariantNameFormatter,
	textService service.ITextService,
	stats *models.SyncStats,
	logWriter io.Writer,
) *ReconcileEngine {
	return &ReconcileEngine{
		writer:    writer,
		matcher:   matcher,
		media:     media,
		formatter: formatter,
		text:      textService,
		stats:     stats,
		log:       logger.NewLogger(logWriter, "[Reconcile]"),
	}
}

// ReconcileProduct runs one supplier product through the decision table and
// executes the result. Per-item failures are counted and returned, but the
// caller is expected to carry on with the next product.
func (e *ReconcileEngine) ReconcileProduct(ctx context.Context, sp *supplierresponse.Product, mapping models.CategoryMapping) (models.Action, error) {
	category := mapping.BusinessName
	variants := sp.MatchableVariants()
	if len(variants) == 0 {
		e.log.Log("product %q has no variants with SKU, skipping", sp.Name)
		return models.ActionSkip, nil
	}

	existing, found, err := e.matcher.FindBySku(ctx, sp.PrimarySku())
	if err != nil {
		e.stats.AddError(category)
		return models.ActionSkip, err
	}

	action := e.decide(sp, variants, existing, found)
	switch action {
	case models.ActionCreate:
		if _, err := e.create(ctx, sp, variants, mapping); err != nil {
			e.stats.AddError(category)
			e.log.Log("create for sku %s rejected: %s", sp.PrimarySku(), err)
			return action, err
		}
		e.stats.AddCreated(category)

	case models.ActionUpdate:
		e.update(ctx, sp, variants, existing, category)
		e.stats.AddUpdated(category)

	case models.ActionRecreate:
		if err := e.writer.DeleteProduct(ctx, existing.ID); err != nil {
			e.stats.AddError(category)
			return action, fmt.Errorf("deleting product %s: %w", existing.ID, err)
		}
		if _, err := e.create(ctx, sp, variants, mapping); err != nil {
			// the product is now absent until the next run; surfaced, never
			// silently repaired
			e.stats.AddRecreateGap(category)
			e.log.Log("RECREATE GAP: sku %s deleted but create failed: %s", sp.PrimarySku(), err)
			return action, err
		}
		e.stats.AddCreated(category)
	}
	return action, nil
}

// decide implements the reconciliation decision table.
func (e *ReconcileEngine) decide(sp *supplierresponse.Product, variants []supplierresponse.Variant, existing *sfresponse.Product, found bool) models.Action {
	if !found {
		return models.ActionCreate
	}
	if len(existing.Variants) != len(variants) {
		return models.ActionRecreate
	}
	if len(variants) == 1 {
		// the platform cannot add or drop an option dimension in place
		// without risking orphaned variants
		shouldHaveLabel := e.formatter.Format(variants[0].Attributes, sp.CategoryNames()) != ""
		hasLabel := existing.HasLabelOption() || existing.Variants[0].Label() != ""
		if shouldHaveLabel != hasLabel {
			return models.ActionRecreate
		}
	}
	for _, v := range variants {
		if _, ok := existing.VariantBySku(v.Sku); !ok {
			return models.ActionRecreate
		}
	}
	return models.ActionUpdate
}

func (e *ReconcileEngine) create(ctx context.Context, sp *supplierresponse.Product, variants []supplierresponse.Variant, mapping models.CategoryMapping) (*sfresponse.Product, error) {
	spec := e.buildProductSpec(sp, variants)
	created, err := e.writer.CreateProduct(ctx, spec)
	if err != nil {
		return nil, err
	}

	if mapping.CollectionID != "" {
		if err := e.writer.AddProductToCollection(ctx, created.ID, mapping.CollectionID); err != nil {
			e.log.Log("adding product %s to collection %s failed: %s", created.ID, mapping.CollectionID, err)
			e.stats.AddError(mapping.BusinessName)
		}
	}

	if err := e.media.Sync(ctx, sp, created, mapping.BusinessName); err != nil {
		return created, err
	}
	return created, nil
}

// update patches price, quantity, barcode and label per variant; no
// structural change, and an individual variant failure never blocks the rest.
func (e *ReconcileEngine) update(ctx context.Context, sp *supplierresponse.Product, variants []supplierresponse.Variant, existing *sfresponse.Product, category string) {
	if title := e.text.ClearAndReduce(sp.Name, maxTitleLength); title != "" && title != existing.Title {
		patch := &sfrequest.ProductPatch{Title: &title}
		if sp.Description != nil {
			description := e.text.ClearAndReduce(*sp.Description, maxDescLength)
			patch.Description = &description
		}
		if err := e.writer.UpdateProductFields(ctx, existing.ID, patch); err != nil {
			e.log.Log("title update for %s failed: %s", existing.ID, err)
			e.stats.AddError(category)
		}
	}

	labels := e.formatter.FormatAll(variants, sp.CategoryNames())
	for i, v := range variants {
		sfVariant, ok := existing.VariantBySku(v.Sku)
		if !ok {
			continue
		}
		if !sfVariant.Price.Equal(v.Price) {
			if err := e.writer.SetVariantPrice(ctx, sfVariant.ID, v.Price); err != nil {
				e.log.Log("price update for %s failed: %s", v.Sku, err)
				e.stats.AddError(category)
			}
		}
		if sfVariant.InventoryQuantity != v.Quantity {
			if err := e.writer.SetVariantQuantity(ctx, sfVariant.ID, v.Quantity, sfVariant.InventoryLocationID); err != nil {
				e.log.Log("quantity update for %s failed: %s", v.Sku, err)
				e.stats.AddError(category)
			}
		}
		if v.Barcode != nil {
			if err := e.writer.SetVariantBarcode(ctx, sfVariant.ID, v.Barcode); err != nil {
				e.log.Log("barcode update for %s failed: %s", v.Sku, err)
				e.stats.AddError(category)
			}
		}
		if labels[i] != "" && labels[i] != sfVariant.Label() {
			if err := e.writer.SetVariantLabel(ctx, sfVariant.ID, labels[i]); err != nil {
				e.log.Log("label update for %s failed: %s", v.Sku, err)
				e.stats.AddError(category)
			}
		}
	}

	if err := e.media.Sync(ctx, sp, existing, category); err != nil {
		e.log.Log("media sync for %s failed: %s", existing.ID, err)
	}
}

func (e *ReconcileEngine) buildProductSpec(sp *supplierresponse.Product, variants []supplierresponse.Variant) *sfrequest.ProductCreate {
	labels := e.formatter.FormatAll(variants, sp.CategoryNames())
	needsOption := len(variants) > 1 || labels[0] != ""

	spec := &sfrequest.ProductCreate{
		Title:  e.text.ClearAndReduce(sp.Name, maxTitleLength),
		Vendor: sp.Manufacturer,
	}
	if sp.Description != nil {
		spec.Description = e.text.ClearAndReduce(*sp.Description, maxDescLength)
	}
	if needsOption {
		spec.Option = &sfrequest.OptionSpec{
			Name:   e.formatter.OptionName(),
			Values: labels,
		}
	}

	spec.Variants = make([]sfrequest.VariantCreate, len(variants))
	for i, v := range variants {
		vc := sfrequest.VariantCreate{
			Sku:      v.Sku,
			Price:    v.Price,
			Quantity: v.Quantity,
			Barcode:  v.Barcode,
		}
		if needsOption {
			vc.OptionValue = labels[i]
		}
		spec.Variants[i] = vc
	}
	return spec
}
