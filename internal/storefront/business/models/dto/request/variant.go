package request

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type VariantPricePatch struct {
	Price decimal.Decimal `json:"price"`
}

func (r *VariantPricePatch) ToBytes() ([]byte, error) {
	return json.Marshal(r)
}

type VariantQuantityPatch struct {
	Quantity   int    `json:"quantity"`
	LocationID string `json:"locationId,omitempty"`
}

func (r *VariantQuantityPatch) ToBytes() ([]byte, error) {
	return json.Marshal(r)
}

type VariantLabelPatch struct {
	Label string `json:"label"`
}

func (r *VariantLabelPatch) ToBytes() ([]byte, error) {
	return json.Marshal(r)
}

// Barcode is a pointer: nil leaves the stored barcode alone, empty clears it.
type VariantBarcodePatch struct {
	Barcode *string `json:"barcode"`
}

func (r *VariantBarcodePatch) ToBytes() ([]byte, error) {
	return json.Marshal(r)
}
