package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"catalogsync_api/internal/reconcile/business/models"
	sfresponse "catalogsync_api/internal/storefront/business/models/dto/response"
	supplierresponse "catalogsync_api/internal/supplier/business/models/dto/response"
)

type fakeMediaAPI struct {
	product *sfresponse.Product

	uploads     []string
	attached    []string
	order       []string
	assignments map[string]string

	failAttach map[string]bool
	nextID     int
}

func newFakeMediaAPI(product *sfresponse.Product) *fakeMediaAPI {
	return &fakeMediaAPI{
		product:     product,
		assignments: make(map[string]string),
		failAttach:  make(map[string]bool),
	}
}

func (f *fakeMediaAPI) GetProduct(ctx context.Context, productID string) (*sfresponse.Product, error) {
	return f.product, nil
}

func (f *fakeMediaAPI) CreateStagedUpload(ctx context.Context, filename, mimeType string) (*sfresponse.StagedUploadTarget, error) {
	f.uploads = append(f.uploads, filename)
	return &sfresponse.StagedUploadTarget{ResourceURL: "https://staged.example/" + filename}, nil
}

func (f *fakeMediaAPI) AttachMedia(ctx context.Context, productID, sourceURL string) (*sfresponse.Image, error) {
	if f.failAttach[sourceURL] {
		return nil, errors.New("attach rejected")
	}
	f.nextID++
	img := sfresponse.Image{ID: fmt.Sprintf("img-%d", f.nextID), Src: sourceURL}
	f.attached = append(f.attached, sourceURL)
	f.product.Images = append(f.product.Images, img)
	return &img, nil
}

func (f *fakeMediaAPI) AwaitImageVisible(ctx context.Context, productID, imageID string, attempts int) error {
	return nil
}

func (f *fakeMediaAPI) SetImageOrder(ctx context.Context, productID string, imageIDs []string) error {
	f.order = imageIDs
	return nil
}

func (f *fakeMediaAPI) AssignVariantImage(ctx context.Context, variantID, mediaID string) error {
	f.assignments[variantID] = mediaID
	return nil
}

type fakeHero struct {
	ref string
}

func (f *fakeHero) FetchHeroImage(ctx context.Context, slug string) (string, error) {
	return f.ref, nil
}

func strptr(s string) *string { return &s }

func TestSyncOrderIsHeroThenUnassignedThenVariantBound(t *testing.T) {
	slug := "bodysuit"
	sp := &supplierresponse.Product{
		Name: "Bodysuit",
		Slug: &slug,
		// supplier order deliberately scrambled: assigned, unassigned,
		// hero, unassigned
		Images: []string{"a1.jpg", "u1.jpg", "h.jpg", "u2.jpg"},
		Variants: []supplierresponse.Variant{
			{Sku: "S1", Image: strptr("a1.jpg")},
		},
	}
	sf := &sfresponse.Product{
		ID:       "p1",
		Variants: []sfresponse.Variant{{ID: "v1", Sku: "S1"}},
	}
	api := newFakeMediaAPI(sf)
	stats := models.NewSyncStats()
	s := NewSynchronizer(api, &fakeHero{ref: "https://supplier.example/h.jpg"}, stats, 1, io.Discard)

	if err := s.Sync(context.Background(), sp, sf, "cat"); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	// uploads happen in supplier order: a1, u1, h, u2
	wantOrder := []string{"img-3", "img-2", "img-4", "img-1"} // h, u1, u2, a1
	if len(api.order) != len(wantOrder) {
		t.Fatalf("order = %v, want %v", api.order, wantOrder)
	}
	for i := range wantOrder {
		if api.order[i] != wantOrder[i] {
			t.Fatalf("order = %v, want %v", api.order, wantOrder)
		}
	}
	if got := api.assignments["v1"]; got != "img-1" {
		t.Fatalf("variant assignment = %q, want img-1", got)
	}
	if stats.Category("cat").ImagesUploaded != 4 {
		t.Fatalf("images uploaded = %d, want 4", stats.Category("cat").ImagesUploaded)
	}
}

func TestSyncSecondRunUploadsNothing(t *testing.T) {
	sp := &supplierresponse.Product{
		Name:   "Bodysuit",
		Images: []string{"front.jpg", "back.jpg"},
	}
	sf := &sfresponse.Product{ID: "p1"}
	api := newFakeMediaAPI(sf)
	stats := models.NewSyncStats()
	s := NewSynchronizer(api, nil, stats, 1, io.Discard)

	if err := s.Sync(context.Background(), sp, sf, "cat"); err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	if len(api.attached) != 2 {
		t.Fatalf("first run attached %d, want 2", len(api.attached))
	}

	// the storefront decorates stored filenames with its asset id; the
	// second run must still recognize them
	for i := range sf.Images {
		sf.Images[i].Src = fmt.Sprintf("https://cdn.storefront.example/%s_0bc619b2-4f01-4c9e-8a2f-3b9d2c1e7a4%d.jpg",
			[]string{"front", "back"}[i], i)
	}
	api.attached = nil
	if err := s.Sync(context.Background(), sp, sf, "cat"); err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if len(api.attached) != 0 {
		t.Fatalf("second run attached %d images, want 0", len(api.attached))
	}
}

func TestSyncSkipsFailedImageAndContinues(t *testing.T) {
	sp := &supplierresponse.Product{
		Name:   "Bodysuit",
		Images: []string{"bad.jpg", "good.jpg"},
	}
	sf := &sfresponse.Product{ID: "p1"}
	api := newFakeMediaAPI(sf)
	api.failAttach["https://staged.example/bad.jpg"] = true
	stats := models.NewSyncStats()
	s := NewSynchronizer(api, nil, stats, 1, io.Discard)

	if err := s.Sync(context.Background(), sp, sf, "cat"); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(api.attached) != 1 {
		t.Fatalf("attached = %v, want only the good image", api.attached)
	}
	cs := stats.Category("cat")
	if cs.ImagesUploaded != 1 || cs.Errors != 1 {
		t.Fatalf("stats = %+v, want 1 upload / 1 error", cs)
	}
}
