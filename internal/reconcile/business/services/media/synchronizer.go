// Package media ensures every supplier image exists on the storefront exactly
// once, bound to the right variant, in the documented display order.
package media

import (
	"context"
	"io"
	"path"
	"strings"

	"catalogsync_api/internal/reconcile/business/models"
	"catalogsync_api/internal/reconcile/business/services"
	"catalogsync_api/internal/reconcile/business/services/imagekey"
	sfresponse "catalogsync_api/internal/storefront/business/models/dto/response"
	supplierresponse "catalogsync_api/internal/supplier/business/models/dto/response"
	"catalogsync_api/pkg/logger"
)

type Synchronizer struct {
	api               services.MediaAPI
	hero              services.HeroFetcher
	stats             *models.SyncStats
	visibilityRetries int
	log               logger.Logger
}

func NewSynchronizer(api services.MediaAPI, hero services.HeroFetcher, stats *models.SyncStats, visibilityRetries int, writer io.Writer) *Synchronizer {
	return &Synchronizer{
		api:               api,
		hero:              hero,
		stats:             stats,
		visibilityRetries: visibilityRetries,
		log:               logger.NewLogger(writer, "[MediaSync]"),
	}
}

// Sync reconciles the image set of one product. An individual image failure
// is logged and that image skipped; it never aborts the rest of the media
// sync. The final display order is hero, then unassigned, then
// variant-bound, each group keeping the supplier-provided relative order.
func (s *Synchronizer) Sync(ctx context.Context, sp *supplierresponse.Product, sf *sfresponse.Product, category string) error {
	if sf == nil {
		return nil
	}

	// existing storefront images by canonical key; first occurrence wins
	keyToID := make(map[string]string, len(sf.Images))
	for _, img := range sf.Images {
		key, ok := imagekey.Resolve(img.Src)
		if !ok {
			continue
		}
		if _, exists := keyToID[key]; !exists {
			keyToID[key] = img.ID
		}
	}

	// upload what is missing; the dedup step runs before every upload, which
	// is what keeps the executor's duplicate risk acceptable
	supplierKeys := make([]string, 0, len(sp.Images))
	seen := make(map[string]bool, len(sp.Images))
	for _, ref := range sp.Images {
		key, ok := imagekey.Resolve(ref)
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		supplierKeys = append(supplierKeys, key)

		if _, exists := keyToID[key]; exists {
			continue
		}
		imageID, err := s.upload(ctx, sf.ID, ref)
		if err != nil {
			s.log.Log("image %s skipped: %s", ref, err)
			s.stats.AddError(category)
			continue
		}
		keyToID[key] = imageID
		s.stats.AddImageUploaded(category)
	}

	heroKey := s.heroKey(ctx, sp)

	if ids := s.displayOrder(sp, supplierKeys, heroKey, keyToID); len(ids) > 0 {
		if err := s.api.SetImageOrder(ctx, sf.ID, ids); err != nil {
			s.log.Log("set image order for %s failed: %s", sf.ID, err)
			s.stats.AddError(category)
		}
	}

	s.assignVariantImages(ctx, sp, sf, keyToID, category)
	return ctx.Err()
}

// upload runs the platform's staged-upload protocol and attaches the result.
func (s *Synchronizer) upload(ctx context.Context, productID, ref string) (string, error) {
	filename := ref
	if i := strings.IndexAny(filename, "?#"); i >= 0 {
		filename = filename[:i]
	}
	if i := strings.LastIndex(filename, "/"); i >= 0 {
		filename = filename[i+1:]
	}
	target, err := s.api.CreateStagedUpload(ctx, filename, mimeTypeFor(filename))
	if err != nil {
		return "", err
	}
	source := target.ResourceURL
	if source == "" {
		source = ref
	}
	img, err := s.api.AttachMedia(ctx, productID, source)
	if err != nil {
		return "", err
	}
	if err := s.api.AwaitImageVisible(ctx, productID, img.ID, s.visibilityRetries); err != nil {
		// attachment succeeded; visibility lag only affects ordering
		s.log.Log("image %s attached but not yet visible: %s", img.ID, err)
	}
	return img.ID, nil
}

// heroKey resolves the supplier's primary image, recovered by page scrape
// since the catalog API does not flag one.
func (s *Synchronizer) heroKey(ctx context.Context, sp *supplierresponse.Product) string {
	if s.hero == nil || sp.Slug == nil || *sp.Slug == "" {
		return ""
	}
	ref, err := s.hero.FetchHeroImage(ctx, *sp.Slug)
	if err != nil {
		s.log.Log("hero image for %s: %s", *sp.Slug, err)
		return ""
	}
	key, ok := imagekey.Resolve(ref)
	if !ok {
		return ""
	}
	return key
}

// displayOrder partitions known images into hero / unassigned / variant-bound.
func (s *Synchronizer) displayOrder(sp *supplierresponse.Product, supplierKeys []string, heroKey string, keyToID map[string]string) []string {
	variantKeys := make(map[string]bool)
	for _, v := range sp.Variants {
		if v.Image == nil {
			continue
		}
		if key, ok := imagekey.Resolve(*v.Image); ok {
			variantKeys[key] = true
		}
	}

	var ids []string
	if heroKey != "" {
		if id, ok := keyToID[heroKey]; ok {
			ids = append(ids, id)
		} else {
			heroKey = ""
		}
	}
	for _, key := range supplierKeys {
		if key == heroKey || variantKeys[key] {
			continue
		}
		if id, ok := keyToID[key]; ok {
			ids = append(ids, id)
		}
	}
	for _, key := range supplierKeys {
		if key == heroKey || !variantKeys[key] {
			continue
		}
		if id, ok := keyToID[key]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// assignVariantImages binds images to variants, bulk-keyed by the storefront
// variant ID resolved from SKU.
func (s *Synchronizer) assignVariantImages(ctx context.Context, sp *supplierresponse.Product, sf *sfresponse.Product, keyToID map[string]string, category string) {
	for _, v := range sp.MatchableVariants() {
		if v.Image == nil {
			continue
		}
		key, ok := imagekey.Resolve(*v.Image)
		if !ok {
			continue
		}
		imageID, ok := keyToID[key]
		if !ok {
			continue
		}
		sfVariant, ok := sf.VariantBySku(v.Sku)
		if !ok {
			continue
		}
		if err := s.api.AssignVariantImage(ctx, sfVariant.ID, imageID); err != nil {
			s.log.Log("assigning image %s to variant %s failed: %s", imageID, v.Sku, err)
			s.stats.AddError(category)
		}
	}
}

func mimeTypeFor(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
