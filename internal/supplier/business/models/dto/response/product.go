package response

import (
	"github.com/shopspring/decimal"
)

// Product is one supplier catalog entry. Fetched fresh each run, immutable
// for the duration of the run. Optional feed fields are pointers so that
// "absent" and "null" stay distinguishable from "empty".
type Product struct {
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	Manufacturer string     `json:"manufacturer"`
	Slug         *string    `json:"slug"`
	Categories   []Category `json:"categories"`
	Variants     []Variant  `json:"variants"`
	Images       []string   `json:"images"`
}

type Category struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ParentID *int   `json:"parentId"`
}

type Variant struct {
	Sku        string          `json:"sku"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Barcode    *string         `json:"barcode"`
	Model      *string         `json:"model"`
	Attributes []Attribute     `json:"attributes"`
	Image      *string         `json:"image"`
}

type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type CatalogPage struct {
	Products []Product `json:"products"`
}

// MatchableVariants drops variants without a SKU; they cannot participate in
// reconciliation.
func (p *Product) MatchableVariants() []Variant {
	var out []Variant
	for _, v := range p.Variants {
		if v.Sku != "" {
			out = append(out, v)
		}
	}
	return out
}

// PrimarySku is the join key to the storefront: the SKU of the first
// matchable variant.
func (p *Product) PrimarySku() string {
	for _, v := range p.Variants {
		if v.Sku != "" {
			return v.Sku
		}
	}
	return ""
}

func (p *Product) CategoryNames() []string {
	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return names
}

// PrimaryCategory is the first category ref, used for the mapping lookup.
func (p *Product) PrimaryCategory() (Category, bool) {
	if len(p.Categories) == 0 {
		return Category{}, false
	}
	return p.Categories[0], true
}
