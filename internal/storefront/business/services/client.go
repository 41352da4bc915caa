package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"catalogsync_api/internal/storefront/business/models/dto/request"
	"catalogsync_api/internal/storefront/business/models/dto/response"
	"catalogsync_api/pkg/logger"
	"catalogsync_api/pkg/remote"
)

// Client wraps every storefront catalog operation. All calls go through the
// remote executor; none of the methods retry on their own.
type Client struct {
	exec *remote.Executor
	AuthEngine
	baseURL string
	log     logger.Logger
}

func NewClient(exec *remote.Executor, auth AuthEngine, domain, apiVersion string, writer io.Writer) *Client {
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimSuffix(domain, "/")
	return &Client{
		exec:       exec,
		AuthEngine: auth,
		baseURL:    fmt.Sprintf("https://%s/admin/api/%s", domain, apiVersion),
		log:        logger.NewLogger(writer, "[StorefrontClient]"),
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, body request.Model, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = body.ToBytes()
		if err != nil {
			return fmt.Errorf("marshaling %s %s: %w", method, path, err)
		}
	}

	_, respBody, err := c.exec.Do(ctx, func() (*http.Request, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequest(method, c.baseURL+path, reader)
		if err != nil {
			return nil, err
		}
		c.SetApiKey(req)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

// ListProducts returns one page of the storefront catalog. Pagination uses an
// opaque cursor; an empty cursor starts from the beginning.
func (c *Client) ListProducts(ctx context.Context, cursor string, limit int) (*response.ProductPage, error) {
	path := fmt.Sprintf("/products?limit=%d", limit)
	if cursor != "" {
		path += "&cursor=" + url.QueryEscape(cursor)
	}
	var page response.ProductPage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*response.Product, error) {
	var product response.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+url.PathEscape(productID), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, spec *request.ProductCreate) (*response.Product, error) {
	var product response.Product
	if err := c.doJSON(ctx, http.MethodPost, "/products", spec, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/products/"+url.PathEscape(productID), nil, nil)
}

func (c *Client) UpdateProductFields(ctx context.Context, productID string, patch *request.ProductPatch) error {
	return c.doJSON(ctx, http.MethodPatch, "/products/"+url.PathEscape(productID), patch, nil)
}

func (c *Client) SetVariantPrice(ctx context.Context, variantID string, price decimal.Decimal) error {
	return c.doJSON(ctx, http.MethodPut, "/variants/"+url.PathEscape(variantID)+"/price",
		&request.VariantPricePatch{Price: price}, nil)
}

func (c *Client) SetVariantQuantity(ctx context.Context, variantID string, quantity int, locationID string) error {
	return c.doJSON(ctx, http.MethodPut, "/variants/"+url.PathEscape(variantID)+"/quantity",
		&request.VariantQuantityPatch{Quantity: quantity, LocationID: locationID}, nil)
}

func (c *Client) SetVariantLabel(ctx context.Context, variantID, label string) error {
	return c.doJSON(ctx, http.MethodPut, "/variants/"+url.PathEscape(variantID)+"/label",
		&request.VariantLabelPatch{Label: label}, nil)
}

func (c *Client) SetVariantBarcode(ctx context.Context, variantID string, barcode *string) error {
	return c.doJSON(ctx, http.MethodPut, "/variants/"+url.PathEscape(variantID)+"/barcode",
		&request.VariantBarcodePatch{Barcode: barcode}, nil)
}

func (c *Client) CreateStagedUpload(ctx context.Context, filename, mimeType string) (*response.StagedUploadTarget, error) {
	var target response.StagedUploadTarget
	err := c.doJSON(ctx, http.MethodPost, "/staged-uploads",
		&request.StagedUploadRequest{Filename: filename, MimeType: mimeType}, &target)
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (c *Client) AttachMedia(ctx context.Context, productID, sourceURL string) (*response.Image, error) {
	var resp response.AttachMediaResponse
	err := c.doJSON(ctx, http.MethodPost, "/products/"+url.PathEscape(productID)+"/media",
		&request.AttachMediaRequest{SourceURL: sourceURL}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Image, nil
}

func (c *Client) SetImageOrder(ctx context.Context, productID string, imageIDs []string) error {
	return c.doJSON(ctx, http.MethodPut, "/products/"+url.PathEscape(productID)+"/media-order",
		&request.ImageOrderRequest{ImageIDs: imageIDs}, nil)
}

func (c *Client) AssignVariantImage(ctx context.Context, variantID, mediaID string) error {
	return c.doJSON(ctx, http.MethodPut, "/variants/"+url.PathEscape(variantID)+"/image",
		&request.VariantImageRequest{MediaID: mediaID}, nil)
}

func (c *Client) AddProductToCollection(ctx context.Context, productID, collectionID string) error {
	return c.doJSON(ctx, http.MethodPost, "/collections/"+url.PathEscape(collectionID)+"/products",
		&request.CollectionAddRequest{ProductID: productID}, nil)
}

// AwaitImageVisible polls the product until the just-attached image shows up.
// Attachment has an observed eventual-consistency lag.
func (c *Client) AwaitImageVisible(ctx context.Context, productID, imageID string, attempts int) error {
	return c.exec.AwaitVisibility(ctx, attempts, func(ctx context.Context) (bool, error) {
		product, err := c.GetProduct(ctx, productID)
		if err != nil {
			return false, err
		}
		return product.HasImage(imageID), nil
	})
}
