package request

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ProductCreate is the full payload for createProduct. Option is nil for
// single-variant products without a distinguishing attribute.
type ProductCreate struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Vendor      string          `json:"vendor,omitempty"`
	Option      *OptionSpec     `json:"option,omitempty"`
	Variants    []VariantCreate `json:"variants"`
}

type OptionSpec struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type VariantCreate struct {
	Sku         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Barcode     *string         `json:"barcode,omitempty"`
	OptionValue string          `json:"optionValue,omitempty"`
}

func (r *ProductCreate) ToBytes() ([]byte, error) {
	return json.Marshal(r)
}

// ProductPatch carries the updateProductFields payload. Pointer fields are
// omitted entirely when unset, so the remote can tell "leave alone" from
// "clear".
type ProductPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Vendor      *string `json:"vendor,omitempty"`
}

func (r *ProductPatch) ToBytes() ([]byte, error) {
	return json.Marshal(r)
}
