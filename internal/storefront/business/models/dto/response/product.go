package response

import (
	"github.com/shopspring/decimal"
)

// Product as stored by the storefront platform. The ID is opaque and
// platform-assigned; it is lost on the delete+recreate repair path.
type Product struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Variants []Variant          `json:"variants"`
	Images   []Image            `json:"images"`
	Options  []OptionDefinition `json:"options"`
}

type Variant struct {
	ID                  string           `json:"id"`
	Sku                 string           `json:"sku"`
	Price               decimal.Decimal  `json:"price"`
	InventoryQuantity   int              `json:"inventoryQuantity"`
	InventoryLocationID string           `json:"inventoryLocationId"`
	SelectedOptions     []SelectedOption `json:"selectedOptions"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Image struct {
	ID       string `json:"id"`
	Src      string `json:"src"`
	Position int    `json:"position"`
}

type OptionDefinition struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type ProductPage struct {
	Products    []Product `json:"products"`
	HasNextPage bool      `json:"hasNextPage"`
	NextCursor  string    `json:"nextCursor"`
}

// Label is the variant-distinguishing option value; at most one option exists
// in this domain.
func (v *Variant) Label() string {
	if len(v.SelectedOptions) == 0 {
		return ""
	}
	return v.SelectedOptions[0].Value
}

// HasLabelOption reports whether the product carries a variant-distinguishing
// option dropdown at all.
func (p *Product) HasLabelOption() bool {
	return len(p.Options) > 0
}

func (p *Product) VariantBySku(sku string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Sku == sku {
			return v, true
		}
	}
	return Variant{}, false
}

func (p *Product) HasImage(imageID string) bool {
	for _, img := range p.Images {
		if img.ID == imageID {
			return true
		}
	}
	return false
}
